package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-backend/internal/auth"
	"studio-backend/internal/config"
	"studio-backend/internal/handlers"
	httprouter "studio-backend/internal/http"
	"studio-backend/internal/middleware"
	"studio-backend/internal/models"
	"studio-backend/internal/services"
)

type memEntryStore struct {
	entries []*models.ServiceEntry
}

func (m *memEntryStore) FindOutstanding(ctx context.Context, ownerID int, channelName string) ([]*models.ServiceEntry, error) {
	var out []*models.ServiceEntry
	for _, e := range m.entries {
		if e.OwnerID == ownerID && strings.EqualFold(e.ChannelName, channelName) && e.Outstanding() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEntryStore) FindAllForChannel(ctx context.Context, ownerID int, channelName string) ([]*models.ServiceEntry, error) {
	var out []*models.ServiceEntry
	for _, e := range m.entries {
		if e.OwnerID == ownerID && strings.EqualFold(e.ChannelName, channelName) && e.Price != 0 {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEntryStore) Save(ctx context.Context, e *models.ServiceEntry) error {
	for i, existing := range m.entries {
		if existing.ID == e.ID {
			m.entries[i] = e
			return nil
		}
	}
	return errors.New("entry not found")
}

type memLedger struct {
	records []*models.PaymentRecord
}

func (m *memLedger) Append(ctx context.Context, rec *models.PaymentRecord) error {
	rec.ID = len(m.records) + 1
	m.records = append(m.records, rec)
	return nil
}

func (m *memLedger) Query(ctx context.Context, ownerID int, channelName string) ([]*models.PaymentRecord, error) {
	var out []*models.PaymentRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		rec := m.records[i]
		if rec.OwnerID != ownerID {
			continue
		}
		if channelName != "" && !strings.EqualFold(rec.ChannelName, channelName) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (m *memLedger) Get(ctx context.Context, ownerID, id int) (*models.PaymentRecord, error) {
	for _, rec := range m.records {
		if rec.ID == id && rec.OwnerID == ownerID {
			return rec, nil
		}
	}
	return nil, errors.New("no rows")
}

type testEnv struct {
	handler http.Handler
	token   string
	store   *memEntryStore
	ledger  *memLedger
}

func newTestEnv(t *testing.T, entries []*models.ServiceEntry) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "studio-backend-test"

	jwtManager := auth.NewJWTManager(cfg)
	token, err := jwtManager.GenerateToken(&models.User{ID: 1, Email: "owner@studio.test"})
	require.NoError(t, err)

	store := &memEntryStore{entries: entries}
	ledger := &memLedger{}
	inTx := services.TxRunner(func(ctx context.Context, fn func(services.EntryStore, services.Ledger) error) error {
		return fn(store, ledger)
	})

	paymentService := services.NewPaymentService(inTx, store, ledger)
	paymentHandler := handlers.NewPaymentHandler(paymentService, services.NewReceiptService())
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	router := httprouter.NewRouter(
		&handlers.AuthHandler{},
		&handlers.EntryHandler{},
		paymentHandler,
		&handlers.HealthHandler{},
		authMiddleware,
	)

	return &testEnv{handler: router, token: token, store: store, ledger: ledger}
}

func (env *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+env.token)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	return rec
}

func seedEntries() []*models.ServiceEntry {
	return []*models.ServiceEntry{
		{
			ID: 1, OwnerID: 1, ChannelName: "Acme Media", ClientName: "Ravi",
			Price: 500, AmountDue: 500, PaymentStatus: models.StatusUnpaid,
			ServiceDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: 2, OwnerID: 1, ChannelName: "Acme Media", ClientName: "Ravi",
			Price: 300, AmountDue: 300, PaymentStatus: models.StatusUnpaid,
			ServiceDate: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestPayEndpoint(t *testing.T) {
	env := newTestEnv(t, seedEntries())

	rec := env.do(http.MethodPost, "/payment/pay", models.PayRequest{
		ChannelName: "Acme Media",
		Amount:      600,
		Method:      models.MethodUPI,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.PaymentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 600.0, result.AppliedAmount)
	assert.Equal(t, 200.0, result.UpdatedSummary.Due)
	require.Len(t, env.ledger.records, 1)
	assert.Equal(t, models.MethodUPI, env.ledger.records[0].Method)
	assert.Equal(t, "owner@studio.test", env.ledger.records[0].PaidBy)
}

func TestPayEndpointUnknownChannel(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodPost, "/payment/pay", models.PayRequest{
		ChannelName: "Ghost",
		Amount:      100,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, env.ledger.records)
}

func TestPayEndpointBadAmount(t *testing.T) {
	env := newTestEnv(t, seedEntries())

	rec := env.do(http.MethodPost, "/payment/pay", models.PayRequest{
		ChannelName: "Acme Media",
		Amount:      -10,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPayEndpointRequiresAuth(t *testing.T) {
	env := newTestEnv(t, seedEntries())

	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(models.PayRequest{ChannelName: "Acme Media", Amount: 100})
	req := httptest.NewRequest(http.MethodPost, "/payment/pay", &buf)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPayEndpointRejectsExpiredToken(t *testing.T) {
	env := newTestEnv(t, seedEntries())

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = -1
	cfg.JWT.Issuer = "studio-backend-test"
	expired, err := auth.NewJWTManager(cfg).GenerateToken(&models.User{ID: 1, Email: "owner@studio.test"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/payment/pay", strings.NewReader("{}"))
	req.Header.Set("Authorization", "Bearer "+expired)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["auto_logout"])
}

func TestPayAllEndpoint(t *testing.T) {
	env := newTestEnv(t, seedEntries())

	rec := env.do(http.MethodPost, "/payment/pay-all", models.PayAllRequest{
		ChannelName: "acme media",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.PaymentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 800.0, result.AppliedAmount)
	assert.Equal(t, 0.0, result.UpdatedSummary.Due)
	for _, e := range env.store.entries {
		assert.Equal(t, models.StatusPaid, e.PaymentStatus)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	env := newTestEnv(t, seedEntries())

	rec := env.do(http.MethodPost, "/payment/pay", models.PayRequest{ChannelName: "Acme Media", Amount: 100})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/payment/history?channel_name=acme+media", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var records []*models.PaymentRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, 100.0, records[0].AmountPaid)
}

func TestHistoryEndpointEmpty(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodGet, "/payment/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestReceiptEndpoint(t *testing.T) {
	env := newTestEnv(t, seedEntries())

	rec := env.do(http.MethodPost, "/payment/pay", models.PayRequest{ChannelName: "Acme Media", Amount: 250})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/payment/receipt/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestReceiptEndpointNotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodGet, "/payment/receipt/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

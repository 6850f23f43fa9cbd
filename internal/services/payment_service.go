package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studio-backend/internal/metrics"
	"studio-backend/internal/models"
	"studio-backend/internal/repositories"
	"studio-backend/internal/timeutil"
)

// EntryStore is the entry persistence contract the allocator consumes.
type EntryStore interface {
	// FindOutstanding returns unpaid/partial entries for the channel,
	// case-insensitive, ordered by ascending service date.
	FindOutstanding(ctx context.Context, ownerID int, channelName string) ([]*models.ServiceEntry, error)
	// FindAllForChannel returns every nonzero-price entry for the channel.
	FindAllForChannel(ctx context.Context, ownerID int, channelName string) ([]*models.ServiceEntry, error)
	// Save persists one entry's payment state by id.
	Save(ctx context.Context, e *models.ServiceEntry) error
}

// Ledger is the append-only payment history contract.
type Ledger interface {
	Append(ctx context.Context, rec *models.PaymentRecord) error
	Query(ctx context.Context, ownerID int, channelName string) ([]*models.PaymentRecord, error)
	Get(ctx context.Context, ownerID, id int) (*models.PaymentRecord, error)
}

// TxRunner executes fn with transaction-scoped stores. The production runner
// wraps fn in one serializable Postgres transaction so that the
// read-select-mutate-write-append sequence of an allocation cannot interleave
// with a concurrent payment for the same channel.
type TxRunner func(ctx context.Context, fn func(entries EntryStore, ledger Ledger) error) error

// NewPgTxRunner builds the pgx-backed TxRunner. No automatic retries: a
// serialization failure surfaces to the caller like any other error.
func NewPgTxRunner(pool *pgxpool.Pool, entries *repositories.EntryRepository, ledger *repositories.LedgerRepository) TxRunner {
	return func(ctx context.Context, fn func(EntryStore, Ledger) error) error {
		tx, err := pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
		if err != nil {
			return fmt.Errorf("failed to begin payment transaction: %w", err)
		}
		defer tx.Rollback(ctx)

		if err := fn(entries.WithTx(tx), ledger.WithTx(tx)); err != nil {
			return err
		}
		return tx.Commit(ctx)
	}
}

// PaymentService distributes incoming payments across a channel's outstanding
// entries and records each event in the ledger.
type PaymentService struct {
	InTx    TxRunner
	Entries EntryStore
	Ledger  Ledger
}

func NewPaymentService(inTx TxRunner, entries EntryStore, ledger Ledger) *PaymentService {
	return &PaymentService{InTx: inTx, Entries: entries, Ledger: ledger}
}

// Allocate applies amount to the channel's outstanding entries oldest first.
// Each entry is settled in full before the next receives anything; the last
// touched entry may end up partial. Amount beyond the channel's total
// outstanding due is discarded, not credited forward or refunded
// (excess-discard policy); the ledger records only the absorbed amount.
func (s *PaymentService) Allocate(ctx context.Context, ownerID int, paidBy string, req *models.PayRequest) (*models.PaymentResult, error) {
	if req.ChannelName == "" {
		return nil, fmt.Errorf("channel name is required: %w", ErrInvalidInput)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be a positive number: %w", ErrInvalidInput)
	}
	method, err := normalizeMethod(req.Method)
	if err != nil {
		return nil, err
	}

	var result *models.PaymentResult
	err = s.InTx(ctx, func(entries EntryStore, ledger Ledger) error {
		outstanding, err := entries.FindOutstanding(ctx, ownerID, req.ChannelName)
		if err != nil {
			return err
		}
		if len(outstanding) == 0 {
			return fmt.Errorf("no outstanding entries found for channel %q: %w", req.ChannelName, ErrNotFound)
		}

		now := timeutil.Now()
		applied, touched := applyPayment(outstanding, req.Amount, now)

		for _, e := range touched {
			if err := entries.Save(ctx, e); err != nil {
				return err
			}
		}

		all, err := entries.FindAllForChannel(ctx, ownerID, req.ChannelName)
		if err != nil {
			return err
		}
		summary := models.Summarize(req.ChannelName, all)

		rec := &models.PaymentRecord{
			OwnerID:     ownerID,
			ChannelName: req.ChannelName,
			ClientName:  outstanding[0].ClientName,
			AmountPaid:  applied,
			AmountDue:   summary.Due,
			Method:      method,
			PaidBy:      paidBy,
			PaymentDate: now,
		}
		if err := ledger.Append(ctx, rec); err != nil {
			return err
		}

		result = &models.PaymentResult{
			Message:        "Payment recorded.",
			AppliedAmount:  applied,
			UpdatedEntries: all,
			UpdatedSummary: summary,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsRecordedTotal.WithLabelValues(method, "pay").Inc()
	metrics.PaymentAmountApplied.WithLabelValues(method).Add(result.AppliedAmount)
	return result, nil
}

// SettleAll force-clears every outstanding entry for the channel regardless
// of the amounts involved. This is an administrative clear, not a cash
// reconciliation: every entry becomes fully paid unconditionally and the
// ledger records the total that was cleared.
func (s *PaymentService) SettleAll(ctx context.Context, ownerID int, paidBy string, req *models.PayAllRequest) (*models.PaymentResult, error) {
	if req.ChannelName == "" {
		return nil, fmt.Errorf("channel name is required: %w", ErrInvalidInput)
	}
	method, err := normalizeMethod(req.Method)
	if err != nil {
		return nil, err
	}

	var result *models.PaymentResult
	err = s.InTx(ctx, func(entries EntryStore, ledger Ledger) error {
		outstanding, err := entries.FindOutstanding(ctx, ownerID, req.ChannelName)
		if err != nil {
			return err
		}
		if len(outstanding) == 0 {
			return fmt.Errorf("no outstanding entries found for channel %q: %w", req.ChannelName, ErrNotFound)
		}

		now := timeutil.Now()
		var totalCleared float64
		for _, e := range outstanding {
			remaining := e.RemainingDue()
			e.AmountPaid = e.Price
			e.AmountDue = 0
			e.PaymentStatus = models.StatusPaid
			paidAt := now
			e.PaymentDate = &paidAt
			totalCleared += remaining

			if err := entries.Save(ctx, e); err != nil {
				return err
			}
		}

		all, err := entries.FindAllForChannel(ctx, ownerID, req.ChannelName)
		if err != nil {
			return err
		}
		summary := models.Summarize(req.ChannelName, all)

		rec := &models.PaymentRecord{
			OwnerID:     ownerID,
			ChannelName: req.ChannelName,
			ClientName:  outstanding[0].ClientName,
			AmountPaid:  totalCleared,
			AmountDue:   0,
			Method:      method,
			PaidBy:      paidBy,
			PaymentDate: now,
		}
		if err := ledger.Append(ctx, rec); err != nil {
			return err
		}

		result = &models.PaymentResult{
			Message:        "All dues cleared.",
			AppliedAmount:  totalCleared,
			UpdatedEntries: all,
			UpdatedSummary: summary,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsRecordedTotal.WithLabelValues(method, "pay-all").Inc()
	metrics.PaymentAmountApplied.WithLabelValues(method).Add(result.AppliedAmount)
	return result, nil
}

// History returns the owner's payment records, newest first, optionally
// filtered by channel.
func (s *PaymentService) History(ctx context.Context, ownerID int, channelName string) ([]*models.PaymentRecord, error) {
	return s.Ledger.Query(ctx, ownerID, channelName)
}

// GetRecord returns one payment record for receipt rendering.
func (s *PaymentService) GetRecord(ctx context.Context, ownerID, id int) (*models.PaymentRecord, error) {
	rec, err := s.Ledger.Get(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("payment record %d: %w", id, ErrNotFound)
	}
	return rec, nil
}

// applyPayment walks the outstanding entries in order, settling each in full
// until the remaining payment can only cover part of an entry, which becomes
// partial and ends the walk. Returns the amount absorbed and the entries that
// were mutated. Entries with zero remaining due (zero-price rows still marked
// outstanding) are settled by the full-payment branch at no cost.
func applyPayment(outstanding []*models.ServiceEntry, amount float64, now time.Time) (float64, []*models.ServiceEntry) {
	remaining := amount
	var applied float64
	var touched []*models.ServiceEntry

	for _, e := range outstanding {
		due := e.RemainingDue()

		if remaining >= due {
			e.AmountPaid += due
			e.AmountDue = 0
			e.PaymentStatus = models.StatusPaid
			applied += due
			remaining -= due
		} else {
			e.AmountPaid += remaining
			e.AmountDue = due - remaining
			e.PaymentStatus = models.StatusPartial
			applied += remaining
			remaining = 0
		}

		paidAt := now
		e.PaymentDate = &paidAt
		touched = append(touched, e)

		if remaining <= 0 {
			break
		}
	}

	return applied, touched
}

func normalizeMethod(method string) (string, error) {
	if method == "" {
		return models.MethodCash, nil
	}
	if !models.ValidMethod(method) {
		return "", fmt.Errorf("unknown payment method %q: %w", method, ErrInvalidInput)
	}
	return method, nil
}

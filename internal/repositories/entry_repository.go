package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"studio-backend/internal/models"
)

type EntryRepository struct {
	DB Querier
}

func NewEntryRepository(db Querier) *EntryRepository {
	return &EntryRepository{DB: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *EntryRepository) WithTx(tx pgx.Tx) *EntryRepository {
	return &EntryRepository{DB: tx}
}

const entryColumns = `id, user_id, channel_name, COALESCE(client_name, '') as client_name,
	COALESCE(title, '') as title, service_type, COALESCE(sub_type, '') as sub_type,
	price, amount_paid, amount_due, payment_status, service_date, payment_date,
	created_at, updated_at`

func scanEntry(row pgx.Row) (*models.ServiceEntry, error) {
	var e models.ServiceEntry
	err := row.Scan(&e.ID, &e.OwnerID, &e.ChannelName, &e.ClientName, &e.Title,
		&e.ServiceType, &e.SubType, &e.Price, &e.AmountPaid, &e.AmountDue,
		&e.PaymentStatus, &e.ServiceDate, &e.PaymentDate, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EntryRepository) collect(rows pgx.Rows) ([]*models.ServiceEntry, error) {
	defer rows.Close()

	var entries []*models.ServiceEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// FindOutstanding returns the owner's unpaid and partially paid entries for a
// channel, matched case-insensitively, oldest service date first. Selection is
// purely status-based: zero-price entries are included when still marked
// outstanding.
func (r *EntryRepository) FindOutstanding(ctx context.Context, ownerID int, channelName string) ([]*models.ServiceEntry, error) {
	rows, err := r.DB.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM service_entries
		WHERE user_id = $1
		  AND LOWER(channel_name) = LOWER($2)
		  AND payment_status IN ($3, $4)
		ORDER BY service_date ASC, id ASC
	`, entryColumns), ownerID, channelName, models.StatusUnpaid, models.StatusPartial)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// FindAllForChannel returns every entry for the channel with a nonzero price,
// any payment status. This is the summary population.
func (r *EntryRepository) FindAllForChannel(ctx context.Context, ownerID int, channelName string) ([]*models.ServiceEntry, error) {
	rows, err := r.DB.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM service_entries
		WHERE user_id = $1
		  AND LOWER(channel_name) = LOWER($2)
		  AND price <> 0
		ORDER BY service_date ASC, id ASC
	`, entryColumns), ownerID, channelName)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// Save writes the entry's mutable payment state back by id. Idempotent per
// entry: repeating the same save leaves the row unchanged.
func (r *EntryRepository) Save(ctx context.Context, e *models.ServiceEntry) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE service_entries
		SET amount_paid = $1, amount_due = $2, payment_status = $3,
		    payment_date = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5 AND user_id = $6
	`, e.AmountPaid, e.AmountDue, e.PaymentStatus, e.PaymentDate, e.ID, e.OwnerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %d not found for owner %d", e.ID, e.OwnerID)
	}
	return nil
}

func (r *EntryRepository) Create(ctx context.Context, e *models.ServiceEntry) error {
	return r.DB.QueryRow(ctx, `
		INSERT INTO service_entries(user_id, channel_name, client_name, title,
			service_type, sub_type, price, amount_paid, amount_due,
			payment_status, service_date)
		VALUES($1, $2, $3, $4, $5, $6, $7, 0, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, e.OwnerID, e.ChannelName, e.ClientName, e.Title, e.ServiceType, e.SubType,
		e.Price, e.PaymentStatus, e.ServiceDate,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EntryRepository) Get(ctx context.Context, ownerID, id int) (*models.ServiceEntry, error) {
	row := r.DB.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM service_entries WHERE id = $1 AND user_id = $2
	`, entryColumns), id, ownerID)

	e, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return e, err
}

func (r *EntryRepository) List(ctx context.Context, ownerID int) ([]*models.ServiceEntry, error) {
	rows, err := r.DB.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM service_entries WHERE user_id = $1
		ORDER BY service_date DESC, id DESC
	`, entryColumns), ownerID)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// Update rewrites an entry's descriptive fields. A price change re-derives
// amount_due from the already-paid amount; payment state is otherwise left to
// the allocator. Direct edits here bypass the ledger.
func (r *EntryRepository) Update(ctx context.Context, e *models.ServiceEntry) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE service_entries
		SET channel_name = $1, client_name = $2, title = $3, service_type = $4,
		    sub_type = $5, price = $6, amount_due = $6 - amount_paid,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $7 AND user_id = $8
	`, e.ChannelName, e.ClientName, e.Title, e.ServiceType, e.SubType, e.Price,
		e.ID, e.OwnerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *EntryRepository) Delete(ctx context.Context, ownerID, id int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM service_entries WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

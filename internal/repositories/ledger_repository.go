package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"studio-backend/internal/models"
)

// LedgerRepository persists payment history records. The table is append-only:
// there is no update or delete path, by design.
type LedgerRepository struct {
	DB Querier
}

func NewLedgerRepository(db Querier) *LedgerRepository {
	return &LedgerRepository{DB: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *LedgerRepository) WithTx(tx pgx.Tx) *LedgerRepository {
	return &LedgerRepository{DB: tx}
}

// Append inserts one payment record.
func (r *LedgerRepository) Append(ctx context.Context, rec *models.PaymentRecord) error {
	err := r.DB.QueryRow(ctx, `
		INSERT INTO payment_history(user_id, channel_name, client_name,
			amount_paid, amount_due, method, paid_by, payment_date)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, rec.OwnerID, rec.ChannelName, rec.ClientName, rec.AmountPaid,
		rec.AmountDue, rec.Method, rec.PaidBy, rec.PaymentDate,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append payment record: %w", err)
	}
	return nil
}

// Query returns the owner's payment records, newest first. channelName is an
// optional case-insensitive filter; empty matches all channels.
func (r *LedgerRepository) Query(ctx context.Context, ownerID int, channelName string) ([]*models.PaymentRecord, error) {
	query := `
		SELECT id, user_id, channel_name, COALESCE(client_name, '') as client_name,
		       amount_paid, amount_due, method, COALESCE(paid_by, '') as paid_by,
		       payment_date, created_at
		FROM payment_history
		WHERE user_id = $1`
	args := []any{ownerID}

	if channelName != "" {
		query += ` AND LOWER(channel_name) = LOWER($2)`
		args = append(args, channelName)
	}
	query += ` ORDER BY payment_date DESC, id DESC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.PaymentRecord
	for rows.Next() {
		var rec models.PaymentRecord
		err := rows.Scan(&rec.ID, &rec.OwnerID, &rec.ChannelName, &rec.ClientName,
			&rec.AmountPaid, &rec.AmountDue, &rec.Method, &rec.PaidBy,
			&rec.PaymentDate, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// Get returns one of the owner's payment records by id.
func (r *LedgerRepository) Get(ctx context.Context, ownerID, id int) (*models.PaymentRecord, error) {
	var rec models.PaymentRecord
	err := r.DB.QueryRow(ctx, `
		SELECT id, user_id, channel_name, COALESCE(client_name, '') as client_name,
		       amount_paid, amount_due, method, COALESCE(paid_by, '') as paid_by,
		       payment_date, created_at
		FROM payment_history
		WHERE id = $1 AND user_id = $2
	`, id, ownerID).Scan(&rec.ID, &rec.OwnerID, &rec.ChannelName, &rec.ClientName,
		&rec.AmountPaid, &rec.AmountDue, &rec.Method, &rec.PaidBy,
		&rec.PaymentDate, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

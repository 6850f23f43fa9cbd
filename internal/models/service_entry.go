package models

import "time"

// Payment status values for a service entry. A paid entry has no remaining
// due, a partial entry has absorbed some payment but not the full price.
const (
	StatusUnpaid  = "unpaid"
	StatusPartial = "partial"
	StatusPaid    = "paid"
)

// Service categories offered per order.
const (
	ServiceVideo  = "video"
	ServicePoster = "poster"
	ServiceAudio  = "audio"
)

// ServiceEntry is one billable service order for a client on a channel.
// Monetary state (amount_paid, amount_due, payment_status) is mutated only
// by the payment allocator once settlement begins; direct edits through the
// forms API bypass the ledger.
type ServiceEntry struct {
	ID            int        `json:"id"`
	OwnerID       int        `json:"user_id"`
	ChannelName   string     `json:"channel_name"`
	ClientName    string     `json:"client_name"`
	Title         string     `json:"title"`
	ServiceType   string     `json:"service_type"` // video, poster or audio
	SubType       string     `json:"sub_type"`     // e.g. long-form, thumbnail, voice-over
	Price         float64    `json:"price"`
	AmountPaid    float64    `json:"amount_paid"`
	AmountDue     float64    `json:"amount_due"`
	PaymentStatus string     `json:"payment_status"`
	ServiceDate   time.Time  `json:"service_date"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// RemainingDue returns how much of the agreed price is still owed.
func (e *ServiceEntry) RemainingDue() float64 {
	return e.Price - e.AmountPaid
}

// Outstanding reports whether the entry still carries debt.
func (e *ServiceEntry) Outstanding() bool {
	return e.PaymentStatus == StatusUnpaid || e.PaymentStatus == StatusPartial
}

// CreateEntryRequest represents the request body for creating a service entry
type CreateEntryRequest struct {
	ChannelName string  `json:"channel_name"`
	ClientName  string  `json:"client_name"`
	Title       string  `json:"title"`
	ServiceType string  `json:"service_type"`
	SubType     string  `json:"sub_type"`
	Price       float64 `json:"price"`
	ServiceDate string  `json:"service_date"` // YYYY-MM-DD, defaults to today
}

// UpdateEntryRequest represents the request body for updating a service entry
type UpdateEntryRequest struct {
	ChannelName string  `json:"channel_name"`
	ClientName  string  `json:"client_name"`
	Title       string  `json:"title"`
	ServiceType string  `json:"service_type"`
	SubType     string  `json:"sub_type"`
	Price       float64 `json:"price"`
}

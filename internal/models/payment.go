package models

import "time"

// Accepted payment methods.
const (
	MethodCash   = "cash"
	MethodOnline = "online"
	MethodUPI    = "upi"
	MethodBank   = "bank"
)

// ValidMethod reports whether m is one of the accepted payment methods.
func ValidMethod(m string) bool {
	switch m {
	case MethodCash, MethodOnline, MethodUPI, MethodBank:
		return true
	}
	return false
}

// PaymentRecord is one immutable row in the payment history ledger. A record
// describes a single payment event against a channel; it carries no foreign
// key to individual entries because one payment may settle several of them.
type PaymentRecord struct {
	ID          int       `json:"id"`
	OwnerID     int       `json:"user_id"`
	ChannelName string    `json:"channel_name"`
	ClientName  string    `json:"client_name"`
	AmountPaid  float64   `json:"amount_paid"`
	AmountDue   float64   `json:"amount_due"` // channel's total due after this event
	Method      string    `json:"method"`
	PaidBy      string    `json:"paid_by"`
	PaymentDate time.Time `json:"payment_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChannelSummary is the derived money position of one channel. It is computed
// fresh on every request over the channel's nonzero-price entries and never
// persisted.
type ChannelSummary struct {
	ChannelName string  `json:"channel_name"`
	Total       float64 `json:"total"`
	Paid        float64 `json:"paid"`
	Due         float64 `json:"due"`
}

// PayRequest represents the request body for a partial/full payment
type PayRequest struct {
	ChannelName string  `json:"channel_name"`
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"` // defaults to cash
}

// PayAllRequest represents the request body for clearing all channel dues
type PayAllRequest struct {
	ChannelName string `json:"channel_name"`
	Method      string `json:"method"` // defaults to cash
}

// PaymentResult is the response payload for pay and pay-all
type PaymentResult struct {
	Message        string          `json:"message"`
	AppliedAmount  float64         `json:"applied_amount"`
	UpdatedEntries []*ServiceEntry `json:"updated_entries"`
	UpdatedSummary ChannelSummary  `json:"updated_summary"`
}

// Summarize computes the channel summary over the given entries. Callers pass
// the channel's nonzero-price entries; zero-price entries are excluded from
// totals even though they may still be selected by the outstanding-entry
// query. The two filters are intentionally independent.
func Summarize(channelName string, entries []*ServiceEntry) ChannelSummary {
	s := ChannelSummary{ChannelName: channelName}
	for _, e := range entries {
		if e.Price == 0 {
			continue
		}
		s.Total += e.Price
		s.Paid += e.AmountPaid
	}
	s.Due = s.Total - s.Paid
	return s
}

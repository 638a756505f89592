package models

import "time"

// Donation payment states and types.
const (
	DonationStatusPending   = "pending"
	DonationStatusCompleted = "completed"
	DonationStatusFailed    = "failed"

	DonationTypeOneTime = "one_time"
	DonationTypeMonthly = "monthly"
)

// Donation is a supporter contribution. Rows are immutable once created;
// payment providers flip status out-of-band.
type Donation struct {
	ID              string    `db:"id" json:"id"`
	Amount          int64     `db:"amount" json:"amount"`
	Currency        string    `db:"currency" json:"currency"`
	Name            string    `db:"name" json:"name"`
	Message         *string   `db:"message" json:"message,omitempty"`
	DonationType    string    `db:"donation_type" json:"donation_type"`
	Anonymous       bool      `db:"anonymous" json:"anonymous"`
	PaymentProvider string    `db:"payment_provider" json:"payment_provider"`
	Status          string    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// DonationTotals aggregates completed donations only.
type DonationTotals struct {
	TotalAmount int64 `db:"total_amount" json:"total_amount"`
	Count       int   `db:"count" json:"count"`
}

// DonationFilter narrows admin donation listings.
type DonationFilter struct {
	Status   string
	Page     int
	PageSize int
}

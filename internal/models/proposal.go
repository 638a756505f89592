package models

import "time"

// Proposal submission lifecycle states.
const (
	ProposalStatusPending     = "pending"
	ProposalStatusUnderReview = "under_review"
	ProposalStatusApproved    = "approved"
	ProposalStatusRejected    = "rejected"
)

// ProposalSubmission is a project proposal sent in through the public site.
// ReviewedBy and ReviewedAt are stamped server-side when an admin moves the
// status; they are never client-supplied.
type ProposalSubmission struct {
	ID           string     `db:"id" json:"id"`
	Title        string     `db:"title" json:"title"`
	Description  string     `db:"description" json:"description"`
	University   string     `db:"university" json:"university"`
	ContactEmail string     `db:"contact_email" json:"contact_email"`
	Status       string     `db:"status" json:"status"`
	ReviewNotes  *string    `db:"review_notes" json:"review_notes,omitempty"`
	ReviewedBy   *string    `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// ProposalTemplate is a downloadable proposal document. DownloadCount only
// ever grows, via a store-side atomic increment.
type ProposalTemplate struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Filename      string    `db:"filename" json:"filename"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	DownloadCount int       `db:"download_count" json:"download_count"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ProposalFilter narrows admin proposal listings.
type ProposalFilter struct {
	Status string
}

package entity

import (
	"strings"
	"time"
)

// Order statuses an admin can assign. Every new order starts out pending.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// KnownStatus reports whether s is one of the three order statuses,
// ignoring case.
func KnownStatus(s string) bool {
	switch strings.ToLower(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Order represents a customer-submitted item held in the in-memory store.
type Order struct {
	ID           int64
	Name         string
	UDID         string
	ImageURL     string
	Status       string
	DownloadLink *string
	CreatedAt    time.Time
}

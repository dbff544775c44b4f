package models

import (
	"time"

	"github.com/google/uuid"
)

type HangoutStatus string

const (
	HangoutStatusPending  HangoutStatus = "pending"
	HangoutStatusAccepted HangoutStatus = "accepted"
	HangoutStatusDeclined HangoutStatus = "declined"
)

// Terminal reports whether no further transitions are allowed.
func (s HangoutStatus) Terminal() bool {
	return s == HangoutStatusAccepted || s == HangoutStatusDeclined
}

// Hangout is a sender-initiated, recipient-decided invitation. The sender
// has no mutation rights after creation; only the recipient moves the
// status out of pending.
type Hangout struct {
	ID          uuid.UUID     `json:"id"`
	SenderID    uuid.UUID     `json:"sender_id"`
	RecipientID uuid.UUID     `json:"recipient_id"`
	InterestID  *uuid.UUID    `json:"interest_id,omitempty"`
	ScheduledAt time.Time     `json:"scheduled_at"`
	Location    *string       `json:"location,omitempty"`
	Message     *string       `json:"message,omitempty"`
	Description *string       `json:"description,omitempty"`
	Status      HangoutStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// HangoutWithRelations carries the joined display fields list queries
// resolve in a single statement instead of per-row lookups.
type HangoutWithRelations struct {
	Hangout
	SenderUsername    string  `json:"sender_username"`
	RecipientUsername string  `json:"recipient_username"`
	InterestTitle     *string `json:"interest_title,omitempty"`
}

type ProposeHangoutParams struct {
	RecipientID uuid.UUID
	InterestID  *uuid.UUID
	ScheduledAt time.Time
	Location    *string
	Message     *string
	Description *string
}

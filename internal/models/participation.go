package models

import (
	"time"
)

type ParticipationStatus string

const (
	ParticipationRegistered ParticipationStatus = "registered"
	ParticipationWaitlisted ParticipationStatus = "waitlisted"
	ParticipationCancelled  ParticipationStatus = "cancelled"
	ParticipationCheckedIn  ParticipationStatus = "checked_in"
)

// Participation links one user to one event. The server guarantees at
// most one non-cancelled participation per (user, event) pair.
type Participation struct {
	ID          uint                `json:"id"`
	EventID     uint                `json:"event_id"`
	User        User                `json:"user"`
	Status      ParticipationStatus `json:"status"`
	Notes       string              `json:"notes,omitempty"`
	CheckInCode string              `json:"check_in_code,omitempty"`
	Event       *Event              `json:"event,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type JoinEventRequest struct {
	Notes string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

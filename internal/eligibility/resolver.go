// Package eligibility decides which participation state the UI should
// render for an event and which actions are available in it. It is pure
// display logic: capacity and waitlist promotion are enforced server-side,
// this package only interprets what the server reported.
package eligibility

import (
	"time"

	"github.com/sefazor/gatherly-gateway/internal/models"
)

type State string

const (
	StateCancelled    State = "cancelled"
	StateExpired      State = "expired"
	StateGuest        State = "guest_must_authenticate"
	StateIneligible   State = "role_ineligible"
	StateRegistered   State = "registered"
	StateWaitlisted   State = "waitlisted"
	StateOfferWait    State = "offer_waitlist"
	StateOfferRegular State = "offer_registration"
)

type Action string

const (
	ActionLogin        Action = "login"
	ActionSignup       Action = "signup"
	ActionUnsubscribe  Action = "unsubscribe"
	ActionJoinWaitlist Action = "join_waitlist"
	ActionRegister     Action = "register"
)

// Resolution is attached to event detail responses so the UI renders a
// single badge and button set without re-deriving anything.
type Resolution struct {
	State   State    `json:"state"`
	Actions []Action `json:"actions,omitempty"`
}

// Resolve picks exactly one state for (event, user) at the given time.
// Conditions are checked in strict priority order; the first match wins.
// Cancellation overrides everything, including an existing registration,
// and expiry overrides registration display as well.
func Resolve(event models.Event, user *models.User, now time.Time) Resolution {
	if event.Status == models.EventCancelled {
		return Resolution{State: StateCancelled}
	}

	if !now.Before(event.Date) {
		return Resolution{State: StateExpired}
	}

	if user == nil {
		return Resolution{
			State:   StateGuest,
			Actions: []Action{ActionLogin, ActionSignup},
		}
	}

	if user.Role != models.RoleParticipant {
		return Resolution{State: StateIneligible}
	}

	if status, ok := participationStatus(event, user.ID); ok {
		switch status {
		case models.ParticipationWaitlisted:
			return Resolution{
				State:   StateWaitlisted,
				Actions: []Action{ActionUnsubscribe},
			}
		default:
			// registered and checked_in both hold a seat.
			return Resolution{
				State:   StateRegistered,
				Actions: []Action{ActionUnsubscribe},
			}
		}
	}

	if event.AvailableSpots <= 0 || event.IsFull {
		return Resolution{
			State:   StateOfferWait,
			Actions: []Action{ActionJoinWaitlist},
		}
	}

	return Resolution{
		State:   StateOfferRegular,
		Actions: []Action{ActionRegister},
	}
}

// participationStatus finds the user's live participation. The embedded
// list is the source of truth when present; the event's convenience
// flags are only a fallback for list payloads that omit it.
func participationStatus(event models.Event, userID uint) (models.ParticipationStatus, bool) {
	for _, p := range event.Participations {
		if p.User.ID != userID {
			continue
		}
		if p.Status == models.ParticipationCancelled {
			continue
		}
		return p.Status, true
	}

	if len(event.Participations) > 0 {
		// The list was embedded and the user is not in it; do not let a
		// stale convenience flag contradict it.
		return "", false
	}

	if event.IsParticipating != nil && *event.IsParticipating {
		status := models.ParticipationStatus(event.ParticipationStatus)
		if status == "" {
			status = models.ParticipationRegistered
		}
		if status == models.ParticipationCancelled {
			return "", false
		}
		return status, true
	}

	return "", false
}

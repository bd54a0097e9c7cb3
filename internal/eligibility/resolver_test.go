package eligibility

import (
	"reflect"
	"testing"
	"time"

	"github.com/sefazor/gatherly-gateway/internal/models"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func publishedEvent(spots int) models.Event {
	return models.Event{
		ID:             1,
		Title:          "Go Meetup",
		Status:         models.EventPublished,
		Date:           now.Add(7 * 24 * time.Hour),
		Capacity:       10,
		AvailableSpots: spots,
		IsFull:         spots == 0,
	}
}

func participant(id uint) *models.User {
	return &models.User{ID: id, Role: models.RoleParticipant}
}

func withParticipation(e models.Event, userID uint, status models.ParticipationStatus) models.Event {
	e.Participations = append(e.Participations, models.Participation{
		ID:      99,
		EventID: e.ID,
		User:    models.User{ID: userID, Role: models.RoleParticipant},
		Status:  status,
	})
	return e
}

func TestResolvePriorityOrder(t *testing.T) {
	boolPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name        string
		event       models.Event
		user        *models.User
		wantState   State
		wantActions []Action
	}{
		{
			name: "cancelled overrides everything",
			event: func() models.Event {
				e := withParticipation(publishedEvent(0), 7, models.ParticipationRegistered)
				e.Status = models.EventCancelled
				e.Date = now.Add(-time.Hour)
				return e
			}(),
			user:      participant(7),
			wantState: StateCancelled,
		},
		{
			name: "expired overrides existing registration",
			event: func() models.Event {
				e := withParticipation(publishedEvent(3), 7, models.ParticipationRegistered)
				e.Date = now.Add(-24 * time.Hour)
				return e
			}(),
			user:      participant(7),
			wantState: StateExpired,
		},
		{
			name:        "guest sees authentication prompt",
			event:       publishedEvent(5),
			user:        nil,
			wantState:   StateGuest,
			wantActions: []Action{ActionLogin, ActionSignup},
		},
		{
			name:      "organizer is ineligible even when spots remain",
			event:     publishedEvent(3),
			user:      &models.User{ID: 2, Role: models.RoleOrganizer},
			wantState: StateIneligible,
		},
		{
			name:      "admin is ineligible",
			event:     publishedEvent(3),
			user:      &models.User{ID: 3, Role: models.RoleAdmin},
			wantState: StateIneligible,
		},
		{
			name:        "registered participation wins over open spots",
			event:       withParticipation(publishedEvent(3), 7, models.ParticipationRegistered),
			user:        participant(7),
			wantState:   StateRegistered,
			wantActions: []Action{ActionUnsubscribe},
		},
		{
			name:        "waitlisted participation wins over a freed spot",
			event:       withParticipation(publishedEvent(1), 7, models.ParticipationWaitlisted),
			user:        participant(7),
			wantState:   StateWaitlisted,
			wantActions: []Action{ActionUnsubscribe},
		},
		{
			name:        "checked-in still holds a seat",
			event:       withParticipation(publishedEvent(3), 7, models.ParticipationCheckedIn),
			user:        participant(7),
			wantState:   StateRegistered,
			wantActions: []Action{ActionUnsubscribe},
		},
		{
			name:        "cancelled participation falls through to open",
			event:       withParticipation(publishedEvent(3), 7, models.ParticipationCancelled),
			user:        participant(7),
			wantState:   StateOfferRegular,
			wantActions: []Action{ActionRegister},
		},
		{
			name:        "full event offers waitlist",
			event:       publishedEvent(0),
			user:        participant(7),
			wantState:   StateOfferWait,
			wantActions: []Action{ActionJoinWaitlist},
		},
		{
			name:        "open event offers registration",
			event:       publishedEvent(4),
			user:        participant(7),
			wantState:   StateOfferRegular,
			wantActions: []Action{ActionRegister},
		},
		{
			name: "embedded list wins over absent convenience flag",
			event: func() models.Event {
				e := withParticipation(publishedEvent(3), 7, models.ParticipationRegistered)
				e.IsParticipating = boolPtr(false)
				return e
			}(),
			user:        participant(7),
			wantState:   StateRegistered,
			wantActions: []Action{ActionUnsubscribe},
		},
		{
			name: "convenience flags used when list is not embedded",
			event: func() models.Event {
				e := publishedEvent(3)
				e.IsParticipating = boolPtr(true)
				e.ParticipationStatus = string(models.ParticipationWaitlisted)
				return e
			}(),
			user:        participant(7),
			wantState:   StateWaitlisted,
			wantActions: []Action{ActionUnsubscribe},
		},
		{
			name: "embedded list without the user ignores stale flag",
			event: func() models.Event {
				e := withParticipation(publishedEvent(3), 42, models.ParticipationRegistered)
				e.IsParticipating = boolPtr(true)
				e.ParticipationStatus = string(models.ParticipationRegistered)
				return e
			}(),
			user:        participant(7),
			wantState:   StateOfferRegular,
			wantActions: []Action{ActionRegister},
		},
		{
			name: "is_full flag alone forces waitlist framing",
			event: func() models.Event {
				e := publishedEvent(2)
				e.IsFull = true
				return e
			}(),
			user:        participant(7),
			wantState:   StateOfferWait,
			wantActions: []Action{ActionJoinWaitlist},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.event, tt.user, now)
			if got.State != tt.wantState {
				t.Fatalf("state = %q, want %q", got.State, tt.wantState)
			}
			if !reflect.DeepEqual(got.Actions, tt.wantActions) {
				t.Fatalf("actions = %v, want %v", got.Actions, tt.wantActions)
			}
		})
	}
}

// The scenarios the product team actually walked through.
func TestResolveScenarios(t *testing.T) {
	t.Run("yesterday's published event is expired with no actions", func(t *testing.T) {
		e := publishedEvent(5)
		e.Date = now.Add(-24 * time.Hour)
		got := Resolve(e, participant(1), now)
		if got.State != StateExpired || len(got.Actions) != 0 {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("full event next week offers waitlist", func(t *testing.T) {
		e := publishedEvent(0)
		got := Resolve(e, participant(1), now)
		if got.State != StateOfferWait {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("role check precedes fullness check", func(t *testing.T) {
		e := publishedEvent(3)
		got := Resolve(e, &models.User{ID: 2, Role: models.RoleOrganizer}, now)
		if got.State != StateIneligible || len(got.Actions) != 0 {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("date exactly now counts as expired", func(t *testing.T) {
		e := publishedEvent(3)
		e.Date = now
		got := Resolve(e, participant(1), now)
		if got.State != StateExpired {
			t.Fatalf("got %+v", got)
		}
	})
}

func TestResolveIsIdempotent(t *testing.T) {
	e := withParticipation(publishedEvent(0), 7, models.ParticipationWaitlisted)
	u := participant(7)

	first := Resolve(e, u, now)
	second := Resolve(e, u, now)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("resolutions differ: %+v vs %+v", first, second)
	}
}

func TestResolveNeverOffersRegistrationToNonParticipants(t *testing.T) {
	for _, role := range []models.UserRole{models.RoleOrganizer, models.RoleAdmin} {
		for _, spots := range []int{0, 1, 10} {
			got := Resolve(publishedEvent(spots), &models.User{ID: 5, Role: role}, now)
			if got.State == StateOfferRegular || got.State == StateOfferWait {
				t.Fatalf("role %s with %d spots resolved to %q", role, spots, got.State)
			}
		}
	}
}

package controller

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sefazor/gatherly-gateway/internal/models"
	"github.com/sefazor/gatherly-gateway/internal/querycache"
	"github.com/sefazor/gatherly-gateway/pkg/eventapi"
	"github.com/sefazor/gatherly-gateway/pkg/qrcode"
)

var ErrNoCheckInCode = errors.New("no check-in code for this event")

type ParticipationController struct {
	api        *eventapi.Client
	cache      *querycache.Cache
	invalidate *querycache.Dispatcher
	log        *zap.SugaredLogger
}

func NewParticipationController(api *eventapi.Client, cache *querycache.Cache, invalidate *querycache.Dispatcher, log *zap.SugaredLogger) *ParticipationController {
	return &ParticipationController{
		api:        api,
		cache:      cache,
		invalidate: invalidate,
		log:        log,
	}
}

// Join registers or waitlists the current user; the server decides
// which based on remaining capacity. A race against the last spot comes
// back as an APIError and the next read re-resolves from fresh data.
func (c *ParticipationController) Join(ctx context.Context, eventID uint, notes string) (*models.Participation, error) {
	participation, err := c.api.Participate(ctx, eventID, notes)
	if err != nil {
		c.invalidateIfRejected(err, eventID)
		return nil, err
	}
	c.invalidate.ParticipationMutated(eventID)
	c.log.Infow("joined event", "event_id", eventID, "status", participation.Status)
	return participation, nil
}

func (c *ParticipationController) Leave(ctx context.Context, eventID uint) error {
	if err := c.api.CancelParticipation(ctx, eventID); err != nil {
		c.invalidateIfRejected(err, eventID)
		return err
	}
	c.invalidate.ParticipationMutated(eventID)
	c.log.Infow("left event", "event_id", eventID)
	return nil
}

// invalidateIfRejected drops the event's cached state after the server
// rejects a mutation: the rejection proves the cached view disagreed
// with the server (a capacity race, a duplicate join), so the next read
// must refetch. Transport failures say nothing about staleness and
// leave the cache alone.
func (c *ParticipationController) invalidateIfRejected(err error, eventID uint) {
	var apiErr *eventapi.APIError
	if errors.As(err, &apiErr) {
		c.invalidate.ParticipationMutated(eventID)
	}
}

func (c *ParticipationController) Mine(ctx context.Context) ([]models.Participation, error) {
	return querycache.Through(ctx, c.cache, querycache.KeyMyParticipations, func(ctx context.Context) ([]models.Participation, error) {
		return c.api.MyParticipations(ctx)
	})
}

func (c *ParticipationController) Roster(ctx context.Context, eventID uint) ([]models.Participation, error) {
	return querycache.Through(ctx, c.cache, querycache.RosterKey(eventID), func(ctx context.Context) ([]models.Participation, error) {
		return c.api.EventParticipants(ctx, eventID)
	})
}

// CheckInQR renders the stored check-in code for one of the user's
// participations as a PNG.
func (c *ParticipationController) CheckInQR(ctx context.Context, eventID uint, size int) ([]byte, error) {
	participations, err := c.Mine(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range participations {
		if p.EventID != eventID {
			continue
		}
		if p.CheckInCode == "" {
			return nil, ErrNoCheckInCode
		}
		return qrcode.Encode(p.CheckInCode, size)
	}
	return nil, ErrNoCheckInCode
}

package controller

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sefazor/gatherly-gateway/internal/eligibility"
	"github.com/sefazor/gatherly-gateway/internal/models"
	"github.com/sefazor/gatherly-gateway/internal/querycache"
	"github.com/sefazor/gatherly-gateway/internal/session"
	"github.com/sefazor/gatherly-gateway/pkg/eventapi"
)

// EventDetails is an event plus the participation state resolved for
// the current identity. The resolution is computed per request and
// never cached; only the server payload is.
type EventDetails struct {
	models.Event
	Participation eligibility.Resolution `json:"participation"`
}

type EventController struct {
	api        *eventapi.Client
	cache      *querycache.Cache
	invalidate *querycache.Dispatcher
	store      *session.Store
	log        *zap.SugaredLogger
}

func NewEventController(api *eventapi.Client, cache *querycache.Cache, invalidate *querycache.Dispatcher, store *session.Store, log *zap.SugaredLogger) *EventController {
	return &EventController{
		api:        api,
		cache:      cache,
		invalidate: invalidate,
		store:      store,
		log:        log,
	}
}

func (c *EventController) Browse(ctx context.Context, filters models.EventFilters) (*models.EventList, error) {
	key := querycache.EventListKey(eventapi.EncodeFilters(filters).Encode())
	return querycache.Through(ctx, c.cache, key, func(ctx context.Context) (*models.EventList, error) {
		return c.api.ListEvents(ctx, filters)
	})
}

func (c *EventController) Detail(ctx context.Context, eventID uint) (*EventDetails, error) {
	event, err := querycache.Through(ctx, c.cache, querycache.EventKey(eventID), func(ctx context.Context) (*models.Event, error) {
		return c.api.GetEvent(ctx, eventID)
	})
	if err != nil {
		return nil, err
	}

	user, _, _ := c.store.Current()
	return &EventDetails{
		Event:         *event,
		Participation: eligibility.Resolve(*event, user, time.Now()),
	}, nil
}

func (c *EventController) Search(ctx context.Context, query string) (*models.EventList, error) {
	key := querycache.EventListKey("search:" + query)
	return querycache.Through(ctx, c.cache, key, func(ctx context.Context) (*models.EventList, error) {
		return c.api.SearchEvents(ctx, query)
	})
}

func (c *EventController) Filters(ctx context.Context) (*models.AvailableFilters, error) {
	return querycache.Through(ctx, c.cache, querycache.KeyAvailableFilters, func(ctx context.Context) (*models.AvailableFilters, error) {
		return c.api.AvailableFilters(ctx)
	})
}

func (c *EventController) Popular(ctx context.Context) ([]models.Event, error) {
	return querycache.Through(ctx, c.cache, querycache.KeyPopularEvents, func(ctx context.Context) ([]models.Event, error) {
		return c.api.PopularEvents(ctx)
	})
}

func (c *EventController) Mine(ctx context.Context) ([]models.Event, error) {
	return querycache.Through(ctx, c.cache, querycache.KeyMyEvents, func(ctx context.Context) ([]models.Event, error) {
		return c.api.MyEvents(ctx)
	})
}

func (c *EventController) Create(ctx context.Context, req models.EventRequest) (*models.Event, error) {
	event, err := c.api.CreateEvent(ctx, req)
	if err != nil {
		c.invalidateIfRejected(err, 0)
		return nil, err
	}
	c.invalidate.EventMutated(event.ID)
	c.log.Infow("event created", "event_id", event.ID, "title", event.Title)
	return event, nil
}

func (c *EventController) Update(ctx context.Context, eventID uint, req models.UpdateEventRequest) (*models.Event, error) {
	event, err := c.api.UpdateEvent(ctx, eventID, req)
	if err != nil {
		c.invalidateIfRejected(err, eventID)
		return nil, err
	}
	c.invalidate.EventMutated(eventID)
	return event, nil
}

func (c *EventController) Delete(ctx context.Context, eventID uint) error {
	if err := c.api.DeleteEvent(ctx, eventID); err != nil {
		c.invalidateIfRejected(err, eventID)
		return err
	}
	c.invalidate.EventMutated(eventID)
	c.log.Infow("event deleted", "event_id", eventID)
	return nil
}

// invalidateIfRejected drops the event's cached state after a rejected
// mutation so the next read resolves against what the server actually
// holds. Transport failures leave the cache alone.
func (c *EventController) invalidateIfRejected(err error, eventID uint) {
	var apiErr *eventapi.APIError
	if errors.As(err, &apiErr) {
		c.invalidate.EventMutated(eventID)
	}
}

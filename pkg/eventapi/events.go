package eventapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sefazor/gatherly-gateway/internal/models"
)

// EncodeFilters turns the filter struct into the query string the
// platform expects. Controllers also use the encoded form as the cache
// key suffix, so identical filters share one cache entry.
func EncodeFilters(f models.EventFilters) url.Values {
	q := url.Values{}
	if f.CategoryID != 0 {
		q.Set("category_id", strconv.FormatUint(uint64(f.CategoryID), 10))
	}
	if f.MinPrice != nil {
		q.Set("min_price", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		q.Set("max_price", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.DateFrom != "" {
		q.Set("date_from", f.DateFrom)
	}
	if f.DateTo != "" {
		q.Set("date_to", f.DateTo)
	}
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(f.PerPage))
	}
	return q
}

func (c *Client) ListEvents(ctx context.Context, filters models.EventFilters) (*models.EventList, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/events", EncodeFilters(filters), nil)
	if err != nil {
		return nil, err
	}
	return decodeEventList(raw)
}

func (c *Client) GetEvent(ctx context.Context, eventID uint) (*models.Event, error) {
	var event models.Event
	path := fmt.Sprintf("/events/%d", eventID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) CreateEvent(ctx context.Context, req models.EventRequest) (*models.Event, error) {
	var event models.Event
	if err := c.do(ctx, http.MethodPost, "/events", nil, req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) UpdateEvent(ctx context.Context, eventID uint, req models.UpdateEventRequest) (*models.Event, error) {
	var event models.Event
	path := fmt.Sprintf("/events/%d", eventID)
	if err := c.do(ctx, http.MethodPut, path, nil, req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) DeleteEvent(ctx context.Context, eventID uint) error {
	path := fmt.Sprintf("/events/%d", eventID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) SearchEvents(ctx context.Context, query string) (*models.EventList, error) {
	q := url.Values{}
	q.Set("q", query)
	raw, err := c.doRaw(ctx, http.MethodGet, "/events/search", q, nil)
	if err != nil {
		return nil, err
	}
	return decodeEventList(raw)
}

func (c *Client) AvailableFilters(ctx context.Context) (*models.AvailableFilters, error) {
	var filters models.AvailableFilters
	if err := c.do(ctx, http.MethodGet, "/events/available-filters", nil, nil, &filters); err != nil {
		return nil, err
	}
	return &filters, nil
}

func (c *Client) PopularEvents(ctx context.Context) ([]models.Event, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/events/popular", nil, nil)
	if err != nil {
		return nil, err
	}
	list, err := decodeEventList(raw)
	if err != nil {
		return nil, err
	}
	return list.Events, nil
}

func (c *Client) MyEvents(ctx context.Context) ([]models.Event, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/my-events", nil, nil)
	if err != nil {
		return nil, err
	}
	list, err := decodeEventList(raw)
	if err != nil {
		return nil, err
	}
	return list.Events, nil
}

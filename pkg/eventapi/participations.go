package eventapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sefazor/gatherly-gateway/internal/models"
)

func (c *Client) Participate(ctx context.Context, eventID uint, notes string) (*models.Participation, error) {
	var participation models.Participation
	path := fmt.Sprintf("/events/%d/participate", eventID)
	body := models.JoinEventRequest{Notes: notes}
	if err := c.do(ctx, http.MethodPost, path, nil, body, &participation); err != nil {
		return nil, err
	}
	return &participation, nil
}

func (c *Client) CancelParticipation(ctx context.Context, eventID uint) error {
	path := fmt.Sprintf("/events/%d/cancel-participation", eventID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) MyParticipations(ctx context.Context) ([]models.Participation, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/my-participations", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeParticipationList(raw)
}

func (c *Client) EventParticipants(ctx context.Context, eventID uint) ([]models.Participation, error) {
	path := fmt.Sprintf("/events/%d/participants", eventID)
	raw, err := c.doRaw(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeParticipationList(raw)
}

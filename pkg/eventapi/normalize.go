package eventapi

import (
	"encoding/json"
	"fmt"

	"github.com/sefazor/gatherly-gateway/internal/models"
)

// The platform is not consistent about response shapes: list endpoints
// variously return a bare array, {"data": [...]}, or {"events": [...]}
// with pagination meta beside it. Normalization happens here, once, so
// nothing above the client ever branches on shape.

type listEnvelope struct {
	Data       json.RawMessage `json:"data"`
	Events     json.RawMessage `json:"events"`
	Users      json.RawMessage `json:"users"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
	TotalPages int             `json:"total_pages"`
}

func decodeEventList(raw []byte) (*models.EventList, error) {
	var events []models.Event
	if err := json.Unmarshal(raw, &events); err == nil {
		return &models.EventList{
			Events:     events,
			Total:      len(events),
			Page:       1,
			PerPage:    len(events),
			TotalPages: 1,
		}, nil
	}

	var envelope listEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("unrecognized event list shape: %w", err)
	}

	payload := envelope.Events
	if payload == nil {
		payload = envelope.Data
	}
	if payload == nil {
		return nil, fmt.Errorf("event list response carries no events")
	}

	if err := json.Unmarshal(payload, &events); err != nil {
		// {"data": {"events": [...], "total": ...}} shows up on the
		// paginated endpoint; unwrap one more level.
		var inner listEnvelope
		if innerErr := json.Unmarshal(payload, &inner); innerErr != nil || inner.Events == nil {
			return nil, fmt.Errorf("unrecognized event list shape: %w", err)
		}
		if err := json.Unmarshal(inner.Events, &events); err != nil {
			return nil, fmt.Errorf("unrecognized event list shape: %w", err)
		}
		envelope = inner
	}

	list := &models.EventList{
		Events:     events,
		Total:      envelope.Total,
		Page:       envelope.Page,
		PerPage:    envelope.PerPage,
		TotalPages: envelope.TotalPages,
	}
	if list.Total == 0 {
		list.Total = len(events)
	}
	if list.Page == 0 {
		list.Page = 1
	}
	if list.PerPage == 0 {
		list.PerPage = len(events)
	}
	if list.TotalPages == 0 {
		list.TotalPages = 1
	}
	return list, nil
}

func decodeUserList(raw []byte) ([]models.User, error) {
	var users []models.User
	if err := json.Unmarshal(raw, &users); err == nil {
		return users, nil
	}

	var envelope listEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("unrecognized user list shape: %w", err)
	}

	payload := envelope.Users
	if payload == nil {
		payload = envelope.Data
	}
	if payload == nil {
		return nil, fmt.Errorf("user list response carries no users")
	}
	if err := json.Unmarshal(payload, &users); err != nil {
		return nil, fmt.Errorf("unrecognized user list shape: %w", err)
	}
	return users, nil
}

func decodeParticipationList(raw []byte) ([]models.Participation, error) {
	var participations []models.Participation
	if err := json.Unmarshal(raw, &participations); err == nil {
		return participations, nil
	}

	var envelope struct {
		Data           json.RawMessage `json:"data"`
		Participations json.RawMessage `json:"participations"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("unrecognized participation list shape: %w", err)
	}

	payload := envelope.Participations
	if payload == nil {
		payload = envelope.Data
	}
	if payload == nil {
		return nil, fmt.Errorf("participation list response carries no entries")
	}
	if err := json.Unmarshal(payload, &participations); err != nil {
		return nil, fmt.Errorf("unrecognized participation list shape: %w", err)
	}
	return participations, nil
}

// unwrapData peels a {"data": ...} or {"success": true, "data": ...}
// envelope off single-object responses. Bare objects pass through.
func unwrapData(raw []byte) []byte {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data
	}
	return raw
}

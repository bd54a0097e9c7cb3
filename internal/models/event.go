package models

import (
	"time"
)

type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventCancelled EventStatus = "cancelled"
)

// Event mirrors the platform's event payload, including the denormalized
// participation summary the server maintains. available_spots and is_full
// are server-computed; the gateway never recounts them.
type Event struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
	Location    string      `json:"location,omitempty"`
	Latitude    *float64    `json:"latitude,omitempty"`
	Longitude   *float64    `json:"longitude,omitempty"`
	Capacity    int         `json:"capacity"`
	Price       *float64    `json:"price,omitempty"`
	Image       string      `json:"image,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
	CategoryID  uint        `json:"category_id,omitempty"`
	Status      EventStatus `json:"status"`
	OrganizerID uint        `json:"organizer_id,omitempty"`

	ParticipantCount int     `json:"participant_count"`
	AvailableSpots   int     `json:"available_spots"`
	IsFull           bool    `json:"is_full"`
	FillRate         float64 `json:"fill_rate"`

	// Participations is only embedded on detail reads. The convenience
	// flags below are what list payloads carry instead.
	Participations      []Participation `json:"participations,omitempty"`
	IsParticipating     *bool           `json:"is_participating,omitempty"`
	ParticipationStatus string          `json:"participation_status,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EventRequest struct {
	Title       string   `json:"title" validate:"required,min=3"`
	Description string   `json:"description"`
	Date        string   `json:"date" validate:"required,future_date"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Capacity    int      `json:"capacity" validate:"required,gt=0"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Image       string   `json:"image,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CategoryID  uint     `json:"category_id,omitempty"`
}

type UpdateEventRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=3"`
	Description *string  `json:"description,omitempty"`
	Date        *string  `json:"date,omitempty" validate:"omitempty,future_date"`
	Location    *string  `json:"location,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Capacity    *int     `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Image       *string  `json:"image,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CategoryID  *uint    `json:"category_id,omitempty"`
	Status      *string  `json:"status,omitempty" validate:"omitempty,oneof=draft published cancelled"`
}

// EventFilters is the query surface of GET /events.
type EventFilters struct {
	CategoryID uint
	MinPrice   *float64
	MaxPrice   *float64
	DateFrom   string
	DateTo     string
	Query      string
	Page       int
	PerPage    int
}

type EventList struct {
	Events     []Event `json:"events"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	PerPage    int     `json:"per_page"`
	TotalPages int     `json:"total_pages"`
}

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// AvailableFilters is what the platform exposes for the filter sidebar.
type AvailableFilters struct {
	Categories []Category `json:"categories"`
	MinPrice   float64    `json:"min_price"`
	MaxPrice   float64    `json:"max_price"`
	Tags       []string   `json:"tags,omitempty"`
}

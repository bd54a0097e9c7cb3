package models

// AdminStats is the aggregate dashboard payload.
type AdminStats struct {
	TotalUsers          int     `json:"total_users"`
	TotalEvents         int     `json:"total_events"`
	PublishedEvents     int     `json:"published_events"`
	CancelledEvents     int     `json:"cancelled_events"`
	TotalParticipations int     `json:"total_participations"`
	AverageFillRate     float64 `json:"average_fill_rate"`
}

type TimeseriesPoint struct {
	Date          string `json:"date"`
	Events        int    `json:"events"`
	Registrations int    `json:"registrations"`
}

// UserListQuery drives the local filtering and pagination of the admin
// user table. The full list is small enough to fetch whole.
type UserListQuery struct {
	Query   string
	Role    UserRole
	Page    int
	PerPage int
}

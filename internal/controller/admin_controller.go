package controller

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sefazor/gatherly-gateway/internal/models"
	"github.com/sefazor/gatherly-gateway/internal/querycache"
	"github.com/sefazor/gatherly-gateway/pkg/eventapi"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type AdminController struct {
	api   *eventapi.Client
	cache *querycache.Cache
	log   *zap.SugaredLogger
}

func NewAdminController(api *eventapi.Client, cache *querycache.Cache, log *zap.SugaredLogger) *AdminController {
	return &AdminController{
		api:   api,
		cache: cache,
		log:   log,
	}
}

func (c *AdminController) Stats(ctx context.Context) (*models.AdminStats, error) {
	return querycache.Through(ctx, c.cache, querycache.KeyAdminStats, func(ctx context.Context) (*models.AdminStats, error) {
		return c.api.AdminStats(ctx)
	})
}

func (c *AdminController) Timeseries(ctx context.Context, period string) ([]models.TimeseriesPoint, error) {
	return querycache.Through(ctx, c.cache, querycache.TimeseriesKey(period), func(ctx context.Context) ([]models.TimeseriesPoint, error) {
		return c.api.AdminStatsTimeseries(ctx, period)
	})
}

// Users fetches the whole directory once and filters and paginates it
// locally; the platform has no server-side paging on this endpoint.
func (c *AdminController) Users(ctx context.Context, query models.UserListQuery) (*models.UserPage, error) {
	all, err := querycache.Through(ctx, c.cache, querycache.KeyAdminUsers, func(ctx context.Context) ([]models.User, error) {
		return c.api.ListUsers(ctx)
	})
	if err != nil {
		return nil, err
	}

	filtered := filterUsers(all, query)

	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	total := len(filtered)
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return &models.UserPage{
		Users:      filtered[start:end],
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}, nil
}

func filterUsers(users []models.User, query models.UserListQuery) []models.User {
	needle := strings.ToLower(strings.TrimSpace(query.Query))

	filtered := make([]models.User, 0, len(users))
	for _, u := range users {
		if query.Role != "" && u.Role != query.Role {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(u.FullName), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) {
			continue
		}
		filtered = append(filtered, u)
	}
	return filtered
}

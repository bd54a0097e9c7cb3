package eventapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sefazor/gatherly-gateway/internal/models"
)

func (c *Client) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	var stats models.AdminStats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) AdminStatsTimeseries(ctx context.Context, period string) ([]models.TimeseriesPoint, error) {
	q := url.Values{}
	if period != "" {
		q.Set("period", period)
	}
	var points []models.TimeseriesPoint
	if err := c.do(ctx, http.MethodGet, "/admin/stats/timeseries", q, nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

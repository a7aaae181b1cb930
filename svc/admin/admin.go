// Package admin is the typed client surface for the operator panel
// endpoints. Every call rides the shared-secret channel, so a revoked
// secret surfaces here as a forced admin logout.
package admin

import (
	"context"
	"net/url"
	"strconv"

	"github.com/agentforge/clientkit/pkg/httpclient"
)

// Service issues admin requests over the shared-secret channel.
type Service struct {
	channel *httpclient.Channel
}

// New creates the admin service on the secret-header channel.
func New(admin *httpclient.Channel) *Service {
	return &Service{channel: admin}
}

// Revenue is the MRR block of the dashboard. MRR and ConversionRate
// arrive pre-formatted for display; MRRRaw is the numeric value.
type Revenue struct {
	MRR            string `json:"mrr"`
	MRRRaw         int    `json:"mrr_raw"`
	ProUsers       int    `json:"pro_users"`
	ConversionRate string `json:"conversion_rate"`
}

// UsageStats is the strategy-volume block of the dashboard.
type UsageStats struct {
	TotalStrategies int `json:"total_strategies"`
	StrategiesToday int `json:"strategies_today"`
	ActiveUsers     int `json:"active_users"`
}

// SystemHealth reports backend dependency status.
type SystemHealth struct {
	MongoHealthy  bool   `json:"mongodb_healthy"`
	RedisHealthy  bool   `json:"redis_healthy"`
	CrewAIEnabled bool   `json:"crew_ai_enabled"`
	Timestamp     string `json:"timestamp"`
}

// Dashboard is the top-level operator view.
type Dashboard struct {
	Revenue Revenue      `json:"revenue"`
	Usage   UsageStats   `json:"usage"`
	System  SystemHealth `json:"system"`
}

// User is a single row of the operator user list.
type User struct {
	ID              string `json:"_id"`
	Email           string `json:"email"`
	Tier            string `json:"tier"`
	CreatedAt       string `json:"created_at"`
	StrategiesCount int    `json:"strategies_count"`
}

// UserList is the paged user listing with aggregate counters.
type UserList struct {
	Users          []User `json:"users"`
	Count          int    `json:"count"`
	Total          int    `json:"total"`
	ProUsers       int    `json:"pro_users"`
	ConversionRate string `json:"conversion_rate"`
}

// UserFilter narrows the user listing. Zero values mean no filter;
// a zero Limit leaves paging to the server default.
type UserFilter struct {
	Search string
	Tier   string
	Limit  int
}

// IndustryRevenue is one heatmap bucket of the revenue breakdown.
type IndustryRevenue struct {
	Industry  string `json:"_id"`
	Count     int    `json:"count"`
	FirstSeen string `json:"first_seen"`
}

// ActivityItem is one row of the live activity feed.
type ActivityItem struct {
	User    string `json:"user"`
	Action  string `json:"action"`
	Time    string `json:"time"`
	Details string `json:"details"`
}

// Alert is a business or system warning raised by the backend.
type Alert struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
	Impact   string `json:"impact"`
}

// RateLimitReport summarises free-tier limit pressure and the revenue
// it could convert into.
type RateLimitReport struct {
	DailyLimitsHit       int    `json:"daily_limits_hit"`
	ConversionRate       string `json:"conversion_rate"`
	PotentialRevenue     string `json:"potential_revenue"`
	EstimatedConversions int    `json:"estimated_conversions"`
	LimitConfig          struct {
		FreeLimit   int `json:"free_limit"`
		WindowHours int `json:"window_hours"`
	} `json:"limit_config"`
}

// Dashboard fetches the operator dashboard.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var dashboard Dashboard
	if err := s.channel.Get(ctx, "/api/admin/dashboard", &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// Users lists accounts matching the filter.
func (s *Service) Users(ctx context.Context, filter UserFilter) (*UserList, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Tier != "" {
		query.Set("tier", filter.Tier)
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	path := "/api/admin/users"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var list UserList
	if err := s.channel.Get(ctx, path, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// RevenueBreakdown returns per-industry MRR buckets for the heatmap.
func (s *Service) RevenueBreakdown(ctx context.Context) ([]IndustryRevenue, error) {
	var resp struct {
		Industries []IndustryRevenue `json:"industries"`
	}
	if err := s.channel.Get(ctx, "/api/admin/revenue-breakdown", &resp); err != nil {
		return nil, err
	}
	return resp.Industries, nil
}

// Activity returns the most recent feed entries, newest first.
func (s *Service) Activity(ctx context.Context, limit int) ([]ActivityItem, error) {
	path := "/api/admin/activity"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var resp struct {
		Activities []ActivityItem `json:"activities"`
	}
	if err := s.channel.Get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Activities, nil
}

// Alerts returns active operator alerts.
func (s *Service) Alerts(ctx context.Context) ([]Alert, error) {
	var resp struct {
		Alerts []Alert `json:"alerts"`
	}
	if err := s.channel.Get(ctx, "/api/admin/alerts", &resp); err != nil {
		return nil, err
	}
	return resp.Alerts, nil
}

// RateLimits returns the free-tier limit conversion report.
func (s *Service) RateLimits(ctx context.Context) (*RateLimitReport, error) {
	var report RateLimitReport
	if err := s.channel.Get(ctx, "/api/admin/rate-limits", &report); err != nil {
		return nil, err
	}
	return &report, nil
}

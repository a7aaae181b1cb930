// Package strategies is the typed client surface for the strategy
// endpoints. Every strategy-bearing response is piped through the
// normalizer before it reaches a caller; consumers check Record.Valid and
// render an empty state when it fails, they never see raw wrapper shapes.
package strategies

import (
	"context"
	"fmt"

	"github.com/agentforge/clientkit/pkg/httpclient"
	"github.com/agentforge/clientkit/pkg/strategy"
)

// Service issues strategy requests over the user channel.
type Service struct {
	channel *httpclient.Channel
}

// New creates the strategy service on the bearer-token channel.
func New(user *httpclient.Channel) *Service {
	return &Service{channel: user}
}

// Input is the strategy generation request.
type Input struct {
	Goal        string `json:"goal"`
	Audience    string `json:"audience"`
	Industry    string `json:"industry"`
	Platform    string `json:"platform"`
	ContentType string `json:"contentType,omitempty"`
	Experience  string `json:"experience,omitempty"`
}

// HistoryItem is one row of the user's strategy history.
type HistoryItem struct {
	ID         string `json:"id"`
	Topic      string `json:"topic"`
	Goal       string `json:"goal"`
	Audience   string `json:"audience"`
	Industry   string `json:"industry"`
	Platform   string `json:"platform"`
	Experience string `json:"experience"`
	CreatedAt  string `json:"created_at"`
}

// Generate requests a new strategy. The returned record is already
// normalized; it is nil when the backend produced a shape the normalizer
// could not resolve, and callers decide how to react to a record that
// fails Valid.
func (s *Service) Generate(ctx context.Context, in Input) (strategy.Record, error) {
	var payload any
	if err := s.channel.Post(ctx, "/api/strategy", in, &payload); err != nil {
		return nil, err
	}
	return strategy.Normalize(payload), nil
}

// History fetches the user's saved strategies.
func (s *Service) History(ctx context.Context) ([]HistoryItem, error) {
	var resp struct {
		Strategies []HistoryItem `json:"strategies"`
	}
	if err := s.channel.Get(ctx, "/api/history", &resp); err != nil {
		return nil, err
	}
	return resp.Strategies, nil
}

// Get fetches a single saved strategy, normalized.
func (s *Service) Get(ctx context.Context, id string) (strategy.Record, error) {
	var payload any
	if err := s.channel.Get(ctx, "/api/history/"+id, &payload); err != nil {
		return nil, err
	}
	return strategy.Normalize(payload), nil
}

// Delete removes a saved strategy.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.channel.Delete(ctx, "/api/history/"+id, nil)
}

// SubmitFeedback records a quality rating for a generated strategy.
func (s *Service) SubmitFeedback(ctx context.Context, id string, rating int) error {
	body := struct {
		StrategyID string `json:"strategy_id"`
		Rating     int    `json:"rating"`
	}{StrategyID: id, Rating: rating}

	return s.channel.Post(ctx, "/feedback", body, nil)
}

// Blueprint requests the tactical blueprint derived from a strategy.
func (s *Service) Blueprint(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	path := fmt.Sprintf("/api/strategies/%s/blueprint", id)
	if err := s.channel.Post(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

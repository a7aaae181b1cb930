// Package account is the typed client surface for the authenticated
// user's own endpoints: identity, profile and usage.
package account

import (
	"context"

	"github.com/agentforge/clientkit/pkg/authsession"
	"github.com/agentforge/clientkit/pkg/httpclient"
)

// Service issues account requests over the user channel.
type Service struct {
	channel *httpclient.Channel
}

// New creates the account service on the bearer-token channel.
func New(user *httpclient.Channel) *Service {
	return &Service{channel: user}
}

// Profile is the editable account record.
type Profile struct {
	Email     string           `json:"email"`
	Name      string           `json:"name"`
	Tier      authsession.Tier `json:"tier"`
	CreatedAt string           `json:"created_at"`
}

// ProfileUpdate carries the fields a user may change.
type ProfileUpdate struct {
	Name string `json:"name,omitempty"`
}

// Usage is the rate-limit counter shown next to the generate button.
// Limit is a number for free accounts and the string "unlimited" for pro,
// so it stays untyped.
type Usage struct {
	Used     int     `json:"used"`
	Limit    any     `json:"limit"`
	Tier     string  `json:"tier"`
	ResetIn  string  `json:"reset_in"`
	Progress float64 `json:"progress"`
}

// Me returns the server's view of the authenticated identity.
func (s *Service) Me(ctx context.Context) (*authsession.Principal, error) {
	var principal authsession.Principal
	if err := s.channel.Get(ctx, "/api/auth/me", &principal); err != nil {
		return nil, err
	}
	return &principal, nil
}

// Profile fetches the account profile.
func (s *Service) Profile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := s.channel.Get(ctx, "/api/profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies changes and returns the updated record.
func (s *Service) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	var profile Profile
	if err := s.channel.Put(ctx, "/api/profile", update, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Usage returns the current rate-limit window state.
func (s *Service) Usage(ctx context.Context) (*Usage, error) {
	var usage Usage
	if err := s.channel.Get(ctx, "/api/user/usage", &usage); err != nil {
		return nil, err
	}
	return &usage, nil
}

package authsession

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Tier is the subscription tier attached to a principal.
type Tier string

const (
	TierFree       Tier = "free"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

// Status describes the user session state as observed by guards and UI.
type Status int

const (
	// StatusLoading means persisted-session hydration has not completed yet.
	StatusLoading Status = iota
	StatusAnonymous
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Principal is the authenticated user's identity record. It is created
// from the login/signup response and never mutated independently; a full
// re-login is the only way to change it.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Tier  Tier   `json:"tier"`
}

// flexibleID tolerates both string and numeric user IDs; backend revisions
// have shipped both.
type flexibleID string

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = flexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = flexibleID(n.String())
		return nil
	}

	return errors.Join(ErrInvalidPrincipal, fmt.Errorf("unsupported user id %s", data))
}

package routeguard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentforge/clientkit/pkg/authsession"
	"github.com/agentforge/clientkit/pkg/credstore"
	"github.com/agentforge/clientkit/pkg/httpclient"
	"github.com/agentforge/clientkit/pkg/routeguard"
)

func TestGuard_Evaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		probe routeguard.Probe
		want  routeguard.Decision
	}{
		{
			name:  "pending renders loading",
			probe: routeguard.ProbePending,
			want:  routeguard.Decision{State: routeguard.StateLoading},
		},
		{
			name:  "granted renders children",
			probe: routeguard.ProbeGranted,
			want:  routeguard.Decision{State: routeguard.StateAuthorized},
		},
		{
			name:  "denied redirects preserving the attempted path",
			probe: routeguard.ProbeDenied,
			want: routeguard.Decision{
				State:      routeguard.StateUnauthorized,
				RedirectTo: "/login",
				ReturnTo:   "/history/42",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			guard := routeguard.New(func() routeguard.Probe { return tt.probe }, "/login")
			assert.Equal(t, tt.want, guard.Evaluate("/history/42"))
		})
	}
}

func TestGuard_FollowsSessionTransitions(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok",
			"user_id":      "u1",
			"email":        "a@b.c",
		})
	})
	mux.HandleFunc("/api/history", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	store := credstore.NewMemoryStore()
	public := httpclient.NewChannel(server.URL)
	user := httpclient.NewChannel(server.URL)
	manager := authsession.NewManager(public, user, store)

	guard := routeguard.New(routeguard.UserProbe(manager), "/login")
	ctx := context.Background()

	// Unresolved hydration: Loading, not a redirect
	assert.Equal(t, routeguard.StateLoading, guard.Evaluate("/profile").State)

	require.NoError(t, manager.Hydrate(ctx))
	assert.Equal(t, routeguard.StateUnauthorized, guard.Evaluate("/profile").State)

	_, err := manager.Login(ctx, "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, routeguard.StateAuthorized, guard.Evaluate("/profile").State)

	// A forced clear while mounted flips the guard on re-evaluation
	reevaluated := make(chan routeguard.State, 1)
	manager.OnChange(func(authsession.Status) {
		reevaluated <- guard.Evaluate("/profile").State
	})

	err = user.Get(ctx, "/api/history", nil)
	require.Error(t, err)
	assert.Equal(t, routeguard.StateUnauthorized, <-reevaluated)
}

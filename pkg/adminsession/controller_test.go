package adminsession_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentforge/clientkit/pkg/adminsession"
	"github.com/agentforge/clientkit/pkg/credstore"
	"github.com/agentforge/clientkit/pkg/httpclient"
)

const goodSecret = "agentforge-admin-secret"

// adminHandler accepts goodSecret on every /api/admin/ path and rejects
// anything else with the given status.
func adminHandler(rejectStatus int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(adminsession.SecretHeader) != goodSecret {
			w.WriteHeader(rejectStatus)
			_, _ = w.Write([]byte(`{"detail":"Invalid admin secret"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"total_users":10}`))
	})
}

type adminFixture struct {
	controller *adminsession.Controller
	channel    *httpclient.Channel
	store      *credstore.MemoryStore
	visits     *atomic.Int32
}

func setupAdmin(t *testing.T, handler http.Handler, opts ...adminsession.Option) adminFixture {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := credstore.NewMemoryStore()
	channel := httpclient.NewChannel(server.URL)

	visits := &atomic.Int32{}
	opts = append([]adminsession.Option{
		adminsession.WithNavigate(func(path string) {
			assert.Equal(t, "/admin-login", path)
			visits.Add(1)
		}),
	}, opts...)

	controller := adminsession.NewController(channel, store, opts...)
	return adminFixture{controller: controller, channel: channel, store: store, visits: visits}
}

func TestController_Login(t *testing.T) {
	t.Parallel()

	f := setupAdmin(t, adminHandler(http.StatusUnauthorized))
	ctx := context.Background()

	require.NoError(t, f.controller.Login(ctx, goodSecret))
	assert.Equal(t, adminsession.StatusAuthenticated, f.controller.Status())

	persisted, err := f.store.Get(ctx, adminsession.StorageKeySecret)
	require.NoError(t, err)
	assert.Equal(t, goodSecret, persisted)
}

func TestController_Login_EmptySecret(t *testing.T) {
	t.Parallel()

	f := setupAdmin(t, adminHandler(http.StatusUnauthorized))
	err := f.controller.Login(context.Background(), "")
	assert.ErrorIs(t, err, adminsession.ErrNoSecret)
}

func TestController_Login_Rejected(t *testing.T) {
	t.Parallel()

	// The login screen is already showing; no redirect should fire.
	f := setupAdmin(t, adminHandler(http.StatusForbidden),
		adminsession.WithCurrentPath(func() string { return "/admin-login" }))
	ctx := context.Background()

	err := f.controller.Login(ctx, "wrong-secret")
	require.Error(t, err)
	assert.ErrorIs(t, err, adminsession.ErrAdminAccessDenied)
	assert.Equal(t, "Invalid admin secret", httpclient.ErrorDetail(err))

	assert.Equal(t, adminsession.StatusAnonymous, f.controller.Status())
	_, storeErr := f.store.Get(ctx, adminsession.StorageKeySecret)
	assert.ErrorIs(t, storeErr, credstore.ErrKeyNotFound)
	assert.Zero(t, f.visits.Load())
}

func TestController_ForcedLogout(t *testing.T) {
	t.Parallel()

	for _, rejectStatus := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		rejectStatus := rejectStatus
		t.Run(http.StatusText(rejectStatus), func(t *testing.T) {
			t.Parallel()

			rejecting := &atomic.Bool{}
			mux := http.NewServeMux()
			mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				if rejecting.Load() {
					w.WriteHeader(rejectStatus)
					return
				}
				adminHandler(rejectStatus).ServeHTTP(w, r)
			})

			f := setupAdmin(t, mux)
			ctx := context.Background()
			require.NoError(t, f.controller.Login(ctx, goodSecret))

			var loggedOut atomic.Int32
			f.controller.SetLogoutHandler(func() { loggedOut.Add(1) })

			// Secret revoked server-side
			rejecting.Store(true)

			err := f.channel.Get(ctx, "/api/admin/users", nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, adminsession.ErrAdminAccessDenied)

			assert.Equal(t, adminsession.StatusAnonymous, f.controller.Status())
			assert.Equal(t, int32(1), loggedOut.Load())
			assert.Equal(t, int32(1), f.visits.Load())

			_, storeErr := f.store.Get(ctx, adminsession.StorageKeySecret)
			assert.ErrorIs(t, storeErr, credstore.ErrKeyNotFound)
		})
	}
}

func TestController_ConcurrentRejections_SingleFire(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	verified := &atomic.Bool{}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if !verified.Load() {
			// First call is login verification
			verified.Store(true)
			w.WriteHeader(http.StatusOK)
			return
		}
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	})

	f := setupAdmin(t, mux)
	ctx := context.Background()
	require.NoError(t, f.controller.Login(ctx, goodSecret))

	var loggedOut atomic.Int32
	f.controller.SetLogoutHandler(func() { loggedOut.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := f.channel.Get(ctx, "/api/admin/activity", nil)
			assert.ErrorIs(t, err, adminsession.ErrAdminAccessDenied)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	// Exactly one logout callback and one navigation for two 401s
	assert.Equal(t, int32(1), loggedOut.Load())
	assert.Equal(t, int32(1), f.visits.Load())
}

func TestController_Logout_Idempotent(t *testing.T) {
	t.Parallel()

	f := setupAdmin(t, adminHandler(http.StatusUnauthorized))
	ctx := context.Background()

	require.NoError(t, f.controller.Login(ctx, goodSecret))
	require.NoError(t, f.controller.Logout(ctx))
	assert.Equal(t, adminsession.StatusAnonymous, f.controller.Status())

	// Safe while already anonymous, and never navigates
	require.NoError(t, f.controller.Logout(ctx))
	assert.Zero(t, f.visits.Load())
}

func TestController_Hydrate(t *testing.T) {
	t.Parallel()

	t.Run("loading before hydrate", func(t *testing.T) {
		t.Parallel()
		f := setupAdmin(t, adminHandler(http.StatusUnauthorized))
		assert.Equal(t, adminsession.StatusLoading, f.controller.Status())
	})

	t.Run("persisted secret resolves authenticated", func(t *testing.T) {
		t.Parallel()
		f := setupAdmin(t, adminHandler(http.StatusUnauthorized))
		ctx := context.Background()
		require.NoError(t, f.store.Set(ctx, adminsession.StorageKeySecret, goodSecret))

		require.NoError(t, f.controller.Hydrate(ctx))
		assert.Equal(t, adminsession.StatusAuthenticated, f.controller.Status())
	})

	t.Run("empty store resolves anonymous", func(t *testing.T) {
		t.Parallel()
		f := setupAdmin(t, adminHandler(http.StatusUnauthorized))
		require.NoError(t, f.controller.Hydrate(context.Background()))
		assert.Equal(t, adminsession.StatusAnonymous, f.controller.Status())
	})
}

package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/taskmind/go-task-client/api"
	"github.com/taskmind/go-task-client/session"
	"github.com/taskmind/go-task-client/token"
	"github.com/taskmind/go-task-client/tokenstore"
)

type fixture struct {
	manager  *session.Manager
	store    *tokenstore.Store
	client   *api.Client
	requests *atomic.Int64
}

func setup(t *testing.T, handler http.Handler) *fixture {
	t.Helper()

	requests := &atomic.Int64{}
	counting := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler.ServeHTTP(w, r)
	})
	server := httptest.NewServer(counting)
	t.Cleanup(server.Close)

	store := tokenstore.New(nil)
	client := api.New(server.URL, store, zerolog.Nop(), server.Client())
	return &fixture{
		manager:  session.NewManager(store, client, zerolog.Nop()),
		store:    store,
		client:   client,
		requests: requests,
	}
}

func testToken(t *testing.T, expOffset time.Duration) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"exp":     float64(time.Now().Add(expOffset).Unix()),
		"sub":     "42",
		"user_id": float64(42),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestManager_Bootstrap(t *testing.T) {
	t.Run("no token means anonymous", func(t *testing.T) {
		f := setup(t, http.NotFoundHandler())
		require.Equal(t, session.StateAnonymous, f.manager.Bootstrap())
		require.False(t, f.manager.IsAuthenticated())
	})

	t.Run("valid unexpired token means authenticated", func(t *testing.T) {
		f := setup(t, http.NotFoundHandler())
		require.NoError(t, f.store.Set(testToken(t, time.Hour)))
		require.Equal(t, session.StateAuthenticated, f.manager.Bootstrap())
	})

	t.Run("expired token is cleared and session is anonymous", func(t *testing.T) {
		f := setup(t, http.NotFoundHandler())
		require.NoError(t, f.store.Set(testToken(t, -time.Hour)))
		require.Equal(t, session.StateAnonymous, f.manager.Bootstrap())
		require.Empty(t, f.store.Get())
	})

	t.Run("undecodable token fails closed", func(t *testing.T) {
		f := setup(t, http.NotFoundHandler())
		require.NoError(t, f.store.Set("garbage"))
		require.Equal(t, session.StateAnonymous, f.manager.Bootstrap())
	})

	t.Run("initial state is loading", func(t *testing.T) {
		f := setup(t, http.NotFoundHandler())
		require.Equal(t, session.StateLoading, f.manager.State())
	})
}

func TestManager_Login(t *testing.T) {
	t.Run("stores token and authenticates", func(t *testing.T) {
		tok := testToken(t, time.Hour)
		var gotAuth string
		mux := http.NewServeMux()
		mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token": "` + tok + `", "token_type": "bearer"}`))
		})
		mux.HandleFunc("GET /api/todos", func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[]`))
		})
		f := setup(t, mux)

		result := f.manager.Login(context.Background(), "john.doe@example.com", "password123")
		require.True(t, result.Success)
		require.Equal(t, tok, result.Token)
		require.True(t, f.manager.IsAuthenticated())
		require.Equal(t, tok, f.store.Get())

		// A subsequent resource call carries the stored token.
		var out []any
		require.NoError(t, f.client.Get(context.Background(), "/api/todos", &out))
		require.Equal(t, "Bearer "+tok, gotAuth)

		userID, err := f.manager.CurrentUserID()
		require.NoError(t, err)
		require.Equal(t, int64(42), userID)
	})

	t.Run("server rejection is returned as a structured result", func(t *testing.T) {
		f := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"detail": "Incorrect email or password"}`))
		}))

		result := f.manager.Login(context.Background(), "john.doe@example.com", "wrongpass")
		require.False(t, result.Success)
		require.Equal(t, "Incorrect email or password", result.Error)
		require.False(t, f.manager.IsAuthenticated())
	})

	t.Run("invalid credentials fail before any network call", func(t *testing.T) {
		f := setup(t, http.NotFoundHandler())

		result := f.manager.Login(context.Background(), "", "password123")
		require.False(t, result.Success)
		require.Contains(t, result.Error, "email is required")
		require.Zero(t, f.requests.Load())
	})
}

func TestManager_Register(t *testing.T) {
	t.Run("client-side rules run before the network", func(t *testing.T) {
		f := setup(t, http.NotFoundHandler())

		cases := []struct {
			name     string
			password string
			confirm  string
			wantErr  string
		}{
			{"too short", "short", "short", "Password must be at least 8 characters long"},
			{"mismatch", "password123", "password124", "Passwords do not match"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				result := f.manager.Register(context.Background(), "john.doe@example.com", tc.password, tc.confirm)
				require.False(t, result.Success)
				require.Equal(t, tc.wantErr, result.Error)
			})
		}
		require.Zero(t, f.requests.Load())
	})

	t.Run("successful registration", func(t *testing.T) {
		f := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id": 1, "email": "john.doe@example.com"}`))
		}))

		result := f.manager.Register(context.Background(), "john.doe@example.com", "password123", "password123")
		require.True(t, result.Success)
		// Registration does not authenticate by itself.
		require.False(t, f.manager.IsAuthenticated())
	})
}

func TestManager_Logout(t *testing.T) {
	f := setup(t, http.NotFoundHandler())
	require.NoError(t, f.store.Set(testToken(t, time.Hour)))
	f.manager.Bootstrap()
	require.True(t, f.manager.IsAuthenticated())

	f.manager.Logout()
	require.False(t, f.manager.IsAuthenticated())
	require.Empty(t, f.store.Get())
	// No network round-trip is needed to log out.
	require.Zero(t, f.requests.Load())
}

func TestManager_AnyUnauthorizedFlipsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/todos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	f := setup(t, mux)

	require.NoError(t, f.store.Set(testToken(t, time.Hour)))
	f.manager.Bootstrap()
	require.True(t, f.manager.IsAuthenticated())

	// A 401 from an unrelated resource call invalidates the session.
	err := f.client.Get(context.Background(), "/api/todos", nil)
	require.Error(t, err)
	require.False(t, f.manager.IsAuthenticated())
	require.Empty(t, f.store.Get())
}

func TestManager_TokenExpiry(t *testing.T) {
	now := time.Unix(1700000000, 0)
	token.NowTimeFunc = func() time.Time { return now }
	t.Cleanup(func() { token.NowTimeFunc = time.Now })

	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"exp": float64(now.Add(time.Minute).Unix()),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	require.False(t, token.Expired(raw))

	token.NowTimeFunc = func() time.Time { return now.Add(2 * time.Minute) }
	require.True(t, token.Expired(raw))
}

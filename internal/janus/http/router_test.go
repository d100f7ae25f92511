package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/janus/internal/janus/service"
	"github.com/aussiebroadwan/janus/internal/janus/store/drivers/sqlite"
	"github.com/aussiebroadwan/janus/pkg/janussdk"
	"github.com/aussiebroadwan/janus/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "janus.db")))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	registry := prometheus.NewRegistry()
	metrics := service.NewMetrics(registry)
	notifier := service.NewMemoryNotifier()
	requests := &service.RequestService{Store: st, Notifier: notifier, Metrics: metrics}

	r := NewRouter("test", st, slogx.Discard(), registry)
	r.UserService = &service.UserService{Store: st}
	r.RequestService = requests
	r.PollingGateway = &service.PollingGateway{Requests: requests, Notifier: notifier, Metrics: metrics}
	r.AdminService = &service.AdminService{Store: st}
	r.MaxPollWait = 2 * time.Second
	r.ApplyRoutes()
	return r
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func register(t *testing.T, h http.Handler, name, email string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/v1/users", janussdk.RegisterUserRequest{DisplayName: name, Email: email})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[janussdk.RegisterUserResponse](t, rec).UserID
}

func createRequest(t *testing.T, h http.Handler, userID, kind string) janussdk.AuthRequest {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/v1/auth-requests", janussdk.CreateAuthRequestRequest{UserID: userID, Kind: kind})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[janussdk.AuthRequest](t, rec)
}

func TestUsersEndpoints(t *testing.T) {
	r := newTestRouter(t)
	id := register(t, r, "Ana", "ana@example.com")

	t.Run("get", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/v1/users/"+id, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		u := decode[janussdk.User](t, rec)
		require.Equal(t, "Ana", u.DisplayName)
		require.Nil(t, u.CredentialReference)
	})

	t.Run("list", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/v1/users", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, decode[janussdk.ListUsersResponse](t, rec).Users, 1)
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec := do(t, r, http.MethodPost, "/v1/users", janussdk.RegisterUserRequest{DisplayName: "X", Email: "ana@example.com"})
		require.Equal(t, http.StatusConflict, rec.Code)
		require.Equal(t, janussdk.ErrorCodeConflict, decode[janussdk.ErrorResponse](t, rec).Error)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := do(t, r, http.MethodPost, "/v1/users", janussdk.RegisterUserRequest{Email: "x@example.com"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decode[janussdk.ErrorResponse](t, rec)
		require.Equal(t, janussdk.ErrorCodeValidation, resp.Error)
		require.Equal(t, "displayName is required", resp.ErrorDescription)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/users", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("attach credential", func(t *testing.T) {
		key := "pk"
		rec := do(t, r, http.MethodPut, "/v1/users/"+id+"/credential",
			janussdk.AttachCredentialRequest{CredentialReference: "cred", PublicKey: &key})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		u := decode[janussdk.User](t, rec)
		require.Equal(t, "cred", *u.CredentialReference)

		rec = do(t, r, http.MethodPut, "/v1/users/missing/credential",
			janussdk.AttachCredentialRequest{CredentialReference: "cred"})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/v1/users/missing", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, janussdk.ErrorCodeNotFound, decode[janussdk.ErrorResponse](t, rec).Error)
	})
}

func TestAuthRequestLifecycle(t *testing.T) {
	r := newTestRouter(t)
	userID := register(t, r, "Ana", "ana@example.com")

	rec := do(t, r, http.MethodGet, "/v1/auth-requests/pending?userId="+userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, decode[janussdk.PendingResponse](t, rec).Pending)

	rec = do(t, r, http.MethodPost, "/v1/auth-requests",
		map[string]any{"userId": userID, "kind": "payment", "amount": "19.99", "description": "lunch"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[janussdk.AuthRequest](t, rec)
	require.Equal(t, janussdk.StatusPending, created.Status)
	require.Equal(t, "19.99", created.Amount.String())
	require.Nil(t, created.ResolvedAt)

	rec = do(t, r, http.MethodGet, "/v1/auth-requests/pending?userId="+userID, nil)
	pending := decode[janussdk.PendingResponse](t, rec)
	require.True(t, pending.Pending)
	require.Equal(t, created.ID, pending.Request.ID)

	rec = do(t, r, http.MethodPost, "/v1/auth-requests/"+created.ID+"/approve", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	approved := decode[janussdk.AuthRequest](t, rec)
	require.Equal(t, janussdk.StatusApproved, approved.Status)
	require.NotNil(t, approved.ResolvedAt)

	rec = do(t, r, http.MethodPost, "/v1/auth-requests/"+created.ID+"/reject", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	stale := decode[janussdk.ErrorResponse](t, rec)
	require.Equal(t, janussdk.ErrorCodeStaleState, stale.Error)
	require.Equal(t, janussdk.StatusApproved, stale.CurrentStatus)

	rec = do(t, r, http.MethodGet, "/v1/auth-requests/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, janussdk.StatusApproved, decode[janussdk.AuthRequest](t, rec).Status)

	rec = do(t, r, http.MethodGet, "/v1/auth-requests/pending?userId="+userID, nil)
	require.False(t, decode[janussdk.PendingResponse](t, rec).Pending)
}

func TestAuthRequestErrors(t *testing.T) {
	r := newTestRouter(t)
	userID := register(t, r, "Ana", "ana@example.com")

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"unknown user", http.MethodPost, "/v1/auth-requests", map[string]any{"userId": "nobody", "kind": "login"}, http.StatusBadRequest, janussdk.ErrorCodeValidation},
		{"missing request", http.MethodGet, "/v1/auth-requests/missing", nil, http.StatusNotFound, janussdk.ErrorCodeNotFound},
		{"approve missing", http.MethodPost, "/v1/auth-requests/missing/approve", nil, http.StatusNotFound, janussdk.ErrorCodeNotFound},
		{"poll without user", http.MethodGet, "/v1/auth-requests/pending", nil, http.StatusBadRequest, janussdk.ErrorCodeValidation},
		{"poll with bad wait", http.MethodGet, "/v1/auth-requests/pending?userId=" + userID + "&wait=soon", nil, http.StatusBadRequest, janussdk.ErrorCodeValidation},
		{"bad log limit", http.MethodGet, "/v1/admin/logs?limit=-3", nil, http.StatusBadRequest, janussdk.ErrorCodeValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, r, tc.method, tc.path, tc.body)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())
			require.Equal(t, tc.code, decode[janussdk.ErrorResponse](t, rec).Error)
		})
	}
}

func TestCreateStoresKindAndAmountAsGiven(t *testing.T) {
	r := newTestRouter(t)
	userID := register(t, r, "Ana", "ana@example.com")

	rec := do(t, r, http.MethodPost, "/v1/auth-requests",
		map[string]any{"userId": userID, "kind": "refund", "amount": "-12.50"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	refund := decode[janussdk.AuthRequest](t, rec)
	require.Equal(t, "-12.5", refund.Amount.String())
	require.Equal(t, janussdk.StatusPending, refund.Status)

	rec = do(t, r, http.MethodPost, "/v1/auth-requests", map[string]any{"userId": userID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Empty(t, decode[janussdk.AuthRequest](t, rec).Kind)
}

func TestLongPoll(t *testing.T) {
	r := newTestRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	userID := register(t, r, "Ana", "ana@example.com")

	t.Run("wakes on create", func(t *testing.T) {
		var (
			wg      sync.WaitGroup
			pending janussdk.PendingResponse
			pollErr error
		)
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Get(srv.URL + "/v1/auth-requests/pending?userId=" + userID + "&wait=10s")
			if err != nil {
				pollErr = err
				return
			}
			defer resp.Body.Close()
			pollErr = json.NewDecoder(resp.Body).Decode(&pending)
		}()

		notifier := r.PollingGateway.Notifier.(*service.MemoryNotifier)
		require.Eventually(t, func() bool { return notifier.Subscribers(userID) == 1 },
			time.Second, 5*time.Millisecond)

		created := createRequest(t, r, userID, "login")
		wg.Wait()

		require.NoError(t, pollErr)
		require.True(t, pending.Pending)
		require.Equal(t, created.ID, pending.Request.ID)

		rec := do(t, r, http.MethodPost, "/v1/auth-requests/"+created.ID+"/reject", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wait is capped", func(t *testing.T) {
		start := time.Now()
		rec := do(t, r, http.MethodGet, "/v1/auth-requests/pending?userId="+userID+"&wait=1h", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.False(t, decode[janussdk.PendingResponse](t, rec).Pending)
		require.Less(t, time.Since(start), 10*time.Second)
	})
}

func TestAdminEndpoints(t *testing.T) {
	r := newTestRouter(t)
	userID := register(t, r, "Ana", "ana@example.com")

	first := createRequest(t, r, userID, "login")
	createRequest(t, r, userID, "payment")
	rec := do(t, r, http.MethodPost, "/v1/auth-requests/"+first.ID+"/approve", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodGet, "/v1/admin/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, janussdk.StatsResponse{
		TotalUsers:    1,
		TotalRequests: 2,
		Approved:      1,
		Pending:       1,
		SuccessRate:   50,
	}, decode[janussdk.StatsResponse](t, rec))

	rec = do(t, r, http.MethodGet, "/v1/admin/logs?limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	logs := decode[janussdk.LogsResponse](t, rec).Logs
	require.Len(t, logs, 1)
	require.Equal(t, "payment", logs[0].Kind)
	require.Equal(t, "Ana", logs[0].UserDisplayName)
	require.Equal(t, "ana@example.com", logs[0].UserEmail)
}

func TestSystemEndpoints(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/livez", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode[janussdk.HealthResponse](t, rec).Status)

	rec = do(t, r, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[janussdk.HealthResponse](t, rec)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "test", health.Version)

	rec = do(t, r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `http_requests_total{method="GET",route="GET /readyz",status="200"} 1`)
	require.Contains(t, body, "janus_long_poll_waiters")

	rec = do(t, r, http.MethodGet, "/v1/users", nil)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestMiddlewareChainBuiltOnce(t *testing.T) {
	r := newTestRouter(t)

	var wrapped int
	r.middlewares = append(r.middlewares, func(next http.Handler) http.Handler {
		wrapped++
		return next
	})

	for range 3 {
		rec := do(t, r, http.MethodGet, "/livez", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	}
	require.Equal(t, 1, wrapped)
}

func TestReadyzReportsClosedStore(t *testing.T) {
	st, err := sqlite.NewStore(sqlite.DSN(filepath.Join(t.TempDir(), "janus.db")))
	require.NoError(t, err)
	require.NoError(t, st.Close())

	rec := httptest.NewRecorder()
	ReadyzHandler(time.Now(), "test", st).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "degraded", decode[janussdk.HealthResponse](t, rec).Status)
}

func TestParseWait(t *testing.T) {
	cases := map[string]struct {
		want time.Duration
		ok   bool
	}{
		"":     {0, true},
		"25":   {25 * time.Second, true},
		"1.5s": {1500 * time.Millisecond, true},
		"-1":   {0, false},
		"-2s":  {0, false},
		"soon": {0, false},
	}
	for in, tc := range cases {
		got, ok := parseWait(in)
		require.Equal(t, tc.ok, ok, in)
		if tc.ok {
			require.Equal(t, tc.want, got, in)
		}
	}
}

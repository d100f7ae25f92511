package janussdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func TestAPIErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/auth-requests/R1/approve":
			writeJSON(w, http.StatusConflict, ErrorResponse{
				Error:            ErrorCodeStaleState,
				ErrorDescription: "auth request R1 is already rejected",
				CurrentStatus:    StatusRejected,
			})
		case "/v1/auth-requests/missing":
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorCodeNotFound, ErrorDescription: "auth request not found"})
		default:
			http.Error(w, "boom", http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	client := NewSDKClient(srv.URL + "/")

	t.Run("stale state", func(t *testing.T) {
		_, err := client.Approve(t.Context(), "R1")
		require.True(t, IsStaleState(err))
		require.False(t, IsNotFound(err))

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusConflict, apiErr.StatusCode)
		require.Equal(t, StatusRejected, apiErr.CurrentStatus)
		require.Contains(t, apiErr.Error(), "current status rejected")
	})

	t.Run("not found", func(t *testing.T) {
		_, err := client.GetRequest(t.Context(), "missing")
		require.True(t, IsNotFound(err))
	})

	t.Run("non json body", func(t *testing.T) {
		_, err := client.Stats(t.Context())

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		require.Equal(t, ErrorCodeServerError, apiErr.Code)
	})
}

func TestCreateRequestEncodesAmountAsString(t *testing.T) {
	t.Parallel()

	type captured struct {
		method, path string
		body         map[string]any
	}
	seen := make(chan captured, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := captured{method: r.Method, path: r.URL.Path}
		_ = json.NewDecoder(r.Body).Decode(&c.body)
		seen <- c
		writeJSON(w, http.StatusCreated, AuthRequest{ID: "R1", UserID: "U1", Kind: "payment", Status: StatusPending})
	}))
	defer srv.Close()

	amount := decimal.RequireFromString("149.99")
	ar, err := NewSDKClient(srv.URL).CreateRequest(t.Context(), CreateAuthRequestRequest{
		UserID: "U1",
		Kind:   "payment",
		Amount: &amount,
	})
	require.NoError(t, err)
	require.Equal(t, "R1", ar.ID)

	c := <-seen
	require.Equal(t, http.MethodPost, c.method)
	require.Equal(t, "/v1/auth-requests", c.path)
	require.Equal(t, "149.99", c.body["amount"])
	require.NotContains(t, c.body, "description")
}

func TestWaitPendingQuery(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("userId") != "U1" || q.Get("wait") != "25s" {
			writeJSON(w, http.StatusOK, PendingResponse{})
			return
		}
		writeJSON(w, http.StatusOK, PendingResponse{
			Pending: true,
			Request: &AuthRequest{ID: "R1", UserID: "U1", Status: StatusPending},
		})
	}))
	defer srv.Close()

	client := NewSDKClient(srv.URL)

	ar, err := client.WaitPending(t.Context(), "U1", 25*time.Second)
	require.NoError(t, err)
	require.Equal(t, "R1", ar.ID)

	ar, err = client.CheckPending(t.Context(), "U2")
	require.NoError(t, err)
	require.Nil(t, ar)
}

// pendingServer reports nothing pending for the first `empty` polls, then R1
// until it is approved.
func pendingServer(t *testing.T, empty int32) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var (
		polls    atomic.Int32
		mu       sync.Mutex
		approved bool
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		switch r.URL.Path {
		case "/v1/auth-requests/pending":
			n := polls.Add(1)
			if n <= empty || approved {
				writeJSON(w, http.StatusOK, PendingResponse{})
				return
			}
			writeJSON(w, http.StatusOK, PendingResponse{
				Pending: true,
				Request: &AuthRequest{ID: "R1", UserID: "U1", Status: StatusPending},
			})
		case "/v1/auth-requests/R1/approve":
			approved = true
			writeJSON(w, http.StatusOK, AuthRequest{ID: "R1", UserID: "U1", Status: StatusApproved})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &polls
}

func TestPollerNext(t *testing.T) {
	t.Parallel()

	srv, polls := pendingServer(t, 2)
	p := &Poller{Client: NewSDKClient(srv.URL), UserID: "U1", Interval: 10 * time.Millisecond}

	ar, err := p.Next(t.Context())
	require.NoError(t, err)
	require.Equal(t, "R1", ar.ID)
	require.Equal(t, int32(3), polls.Load())
}

func TestPollerNextStopsOnContext(t *testing.T) {
	t.Parallel()

	srv, _ := pendingServer(t, 1<<30)
	p := &Poller{Client: NewSDKClient(srv.URL), UserID: "U1", Interval: 10 * time.Millisecond}

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	_, err := p.Next(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPollerRunRetriesAfterHandlerError(t *testing.T) {
	t.Parallel()

	srv, _ := pendingServer(t, 0)
	client := NewSDKClient(srv.URL)
	p := &Poller{Client: client, UserID: "U1", Interval: 10 * time.Millisecond}

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	var calls int
	err := p.Run(ctx, func(ctx context.Context, ar *AuthRequest) error {
		calls++
		if calls == 1 {
			return errors.New("device locked")
		}
		_, err := client.Approve(ctx, ar.ID)
		cancel()
		return err
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 2, calls)

	ar, err := client.CheckPending(t.Context(), "U1")
	require.NoError(t, err)
	require.Nil(t, ar)
}

package mmclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastRetry keeps test retries in the microsecond range.
func fastRetry() Option {
	return WithRetryBackoff(time.Microsecond, time.Millisecond)
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	c := New("https://chat.example.com/", "token")
	assert.Equal(t, "https://chat.example.com", c.ServerURL())
}

func TestRequestHeaders(t *testing.T) {
	t.Parallel()

	var gotAuth, gotAccept, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(User{ID: "u1", Username: "admin"})
	}))
	defer srv.Close()

	c := New(srv.URL, "abc123")
	me, err := c.GetMe()
	require.NoError(t, err)

	assert.Equal(t, "admin", me.Username)
	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "/api/v4/users/me", gotPath)
}

func TestParseMattermostError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"id":"api.webhook.create_incoming.permissions.app_error","message":"You do not have the appropriate permissions"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, "token")
	_, err := c.CreateIncomingWebhook(&IncomingWebhook{DisplayName: "x"})
	require.Error(t, err)

	apiErr := AsAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "api.webhook.create_incoming.permissions.app_error", apiErr.ID)
	assert.Equal(t, "You do not have the appropriate permissions", apiErr.Message)
	assert.True(t, apiErr.IsPermission())
	assert.False(t, apiErr.IsTransient())
}

func TestGetRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(User{Username: "admin"})
	}))
	defer srv.Close()

	c := New(srv.URL, "token", fastRetry())
	me, err := c.GetMe()
	require.NoError(t, err)
	assert.Equal(t, "admin", me.Username)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetGivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, "token", fastRetry())
	_, err := c.GetMe()
	require.Error(t, err)

	apiErr := AsAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	// Initial attempt plus the configured retries.
	assert.Equal(t, int32(1+defaultMaxRetries), calls.Load())
}

func TestPostIsNeverRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL, "token", fastRetry())
	_, err := c.CreateBot(&Bot{Username: "reporter"})
	require.Error(t, err)
	// A retried create could duplicate the object on a slow server.
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetNonTransientIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"id":"api.context.session_expired.app_error","message":"Invalid or expired session"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, "token", fastRetry())
	_, err := c.GetMe()
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNetworkErrorIsTransientAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := New(srv.URL, "token", fastRetry())
	_, err := c.GetMe()
	require.Error(t, err)

	apiErr := AsAPIError(err)
	require.NotNil(t, apiErr)
	assert.Zero(t, apiErr.StatusCode)
	assert.True(t, apiErr.IsTransient())
}

func TestListWalksPagination(t *testing.T) {
	t.Parallel()

	var pages []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		pages = append(pages, page)
		assert.Equal(t, strconv.Itoa(perPage), r.URL.Query().Get("per_page"))

		count := perPage
		if page == 1 {
			count = 5 // short page ends the walk
		}
		batch := make([]IncomingWebhook, count)
		for i := range batch {
			batch[i] = IncomingWebhook{ID: fmt.Sprintf("hook-%d-%d", page, i)}
		}
		_ = json.NewEncoder(w).Encode(batch)
	}))
	defer srv.Close()

	c := New(srv.URL, "token")
	hooks, err := c.ListIncomingWebhooks()
	require.NoError(t, err)

	assert.Len(t, hooks, perPage+5)
	assert.Equal(t, []int{0, 1}, pages)
}

func TestListEmptyCollection(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := New(srv.URL, "token")
	bots, err := c.ListBots()
	require.NoError(t, err)
	require.NotNil(t, bots)
	assert.Empty(t, bots)
}

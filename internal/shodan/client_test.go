package shodan

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestNewDefaults(t *testing.T) {
	c := New("", 0, nil)
	assert.Equal(t, DefaultBase, c.Base())
	assert.Equal(t, DefaultTimeout, c.Timeout())

	c = New("http://example.test/", 2*time.Second, nil)
	assert.Equal(t, "http://example.test", c.Base())
	assert.Equal(t, 2*time.Second, c.Timeout())
}

func TestHostURL(t *testing.T) {
	c := New("https://api.shodan.io", 0, nil)
	tests := []struct {
		name string
		ip   string
		key  string
		want string
	}{
		{"plain", "8.8.8.8", "abc123", "https://api.shodan.io/shodan/host/8.8.8.8?key=abc123"},
		{"ipv6", "2001:db8::1", "k", "https://api.shodan.io/shodan/host/2001:db8::1?key=k"},
		{"path injection", "1.1.1.1/../../account", "k", "https://api.shodan.io/shodan/host/1.1.1.1%2F..%2F..%2Faccount?key=k"},
		{"key with reserved chars", "1.1.1.1", "a&b=c d", "https://api.shodan.io/shodan/host/1.1.1.1?key=a%26b%3Dc+d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.HostURL(tt.ip, tt.key))
		})
	}
}

func TestHostReturnsAnyStatus(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotKey = r.URL.Query().Get("key")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "Invalid API key"}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL, time.Second, nil).Host(context.Background(), "8.8.8.8", "bad key")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"error": "Invalid API key"}`, string(resp.Body))
	assert.Equal(t, "/shodan/host/8.8.8.8", gotPath)
	assert.Equal(t, "bad key", gotKey)
}

func TestHostTransportErrorRedactsKey(t *testing.T) {
	var calls int32
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("connection refused")
	})

	_, err := New("http://upstream.test", time.Second, rt).Host(context.Background(), "1.2.3.4", "supersecret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NotContains(t, err.Error(), "supersecret")
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestHostTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := New(srv.URL, 50*time.Millisecond, nil).Host(context.Background(), "1.2.3.4", "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Client.Timeout")
}

func TestHostContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, r.Context().Err()
	})
	_, err := New("http://upstream.test", time.Second, rt).Host(ctx, "1.2.3.4", "k")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

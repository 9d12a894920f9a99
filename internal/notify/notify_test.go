package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"pantry/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var today = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func TestShouldAlert(t *testing.T) {
	tests := []struct {
		name   string
		expiry string
		days   int
		want   bool
	}{
		{"today", "2024-06-01", 0, true},
		{"window edge", "2024-06-08", 7, true},
		{"beyond window", "2024-06-09", 0, false},
		{"expired", "2024-05-31", 0, false},
		{"no date", "", 0, false},
		{"garbage", "soon", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, ok := ShouldAlert(model.Record{ExpiryDate: tt.expiry}, today)
			assert.Equal(t, tt.want, ok)
			if ok {
				assert.Equal(t, tt.days, days)
			}
		})
	}
}

func TestNewAlert(t *testing.T) {
	a := NewAlert(model.Record{ID: "r1", Name: "Milk"}, 4)
	assert.Equal(t, "Expiry reminder", a.Title)
	assert.Equal(t, "Milk expires in 4 day(s)", a.Body)
	assert.Equal(t, `"Milk" expires in 4 day(s), consider using soon.`, a.Toast())
}

// fakeNotifier records alerts and can be told to fail.
type fakeNotifier struct {
	capability Capability
	sent       atomic.Int32
	fail       bool
}

func (f *fakeNotifier) Capability(context.Context) Capability { return f.capability }
func (f *fakeNotifier) RequestPermission(context.Context) (Capability, error) {
	f.capability = Granted
	return Granted, nil
}
func (f *fakeNotifier) Notify(context.Context, Alert) error {
	if f.fail {
		return errors.New("boom")
	}
	f.sent.Add(1)
	return nil
}

func TestDispatcher_Dispatch(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := &fakeNotifier{capability: Pending}
	d := NewDispatcher(n, zap.New(core), time.Second)

	alert, ok := d.Dispatch(model.Record{ID: "1", Name: "Milk", ExpiryDate: "2024-06-05"}, today)
	require.True(t, ok)
	assert.Equal(t, 4, alert.Days)

	_, ok = d.Dispatch(model.Record{ID: "2", Name: "Rice", ExpiryDate: "2024-09-01"}, today)
	assert.False(t, ok)

	d.Wait()
	assert.EqualValues(t, 1, n.sent.Load())
	assert.Equal(t, 1, logs.FilterMessage("notify_sent").Len())
}

func TestDispatcher_SwallowsFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	d := NewDispatcher(&fakeNotifier{capability: Granted, fail: true}, zap.New(core), time.Second)

	_, ok := d.Dispatch(model.Record{ID: "1", Name: "Milk", ExpiryDate: "2024-06-01"}, today)
	require.True(t, ok)
	d.Wait()
	assert.Equal(t, 1, logs.FilterMessage("notify_failed").Len())
}

func TestDispatcher_SkipsWithoutPermission(t *testing.T) {
	for _, c := range []Capability{Denied, Unavailable} {
		n := &fakeNotifier{capability: c}
		d := NewDispatcher(n, nil, time.Second)
		_, ok := d.Dispatch(model.Record{ID: "1", Name: "Milk", ExpiryDate: "2024-06-01"}, today)
		require.True(t, ok)
		d.Wait()
		assert.Zero(t, n.sent.Load(), string(c))
	}
}

func TestDispatcher_NilNotifier(t *testing.T) {
	d := NewDispatcher(nil, nil, 0)
	_, ok := d.Dispatch(model.Record{ExpiryDate: "2024-06-01"}, today)
	assert.False(t, ok)
	d.Wait()
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	assert.Equal(t, Granted, n.Capability(context.Background()))
	require.NoError(t, n.Notify(context.Background(), NewAlert(model.Record{ID: "1", Name: "Milk"}, 2)))

	entries := logs.FilterMessage("expiry_reminder").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Milk expires in 2 day(s)", entries[0].ContextMap()["body"])
}

func TestWebhookNotifier_GrantAndNotify(t *testing.T) {
	var got []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		got = append(got, body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, time.Second)
	ctx := context.Background()
	assert.Equal(t, Pending, n.Capability(ctx))

	c, err := n.RequestPermission(ctx)
	require.NoError(t, err)
	assert.Equal(t, Granted, c)

	require.NoError(t, n.Notify(ctx, NewAlert(model.Record{ID: "r1", Name: "Milk"}, 3)))
	require.Len(t, got, 2)
	assert.Equal(t, "ping", got[0]["type"])
	assert.Equal(t, "expiry_reminder", got[1]["type"])
	assert.Equal(t, "Milk expires in 3 day(s)", got[1]["body"])
	assert.EqualValues(t, 3, got[1]["days"])
}

func TestWebhookNotifier_Denied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, time.Second)
	c, err := n.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Denied, c)

	err = n.Notify(context.Background(), Alert{})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestWebhookNotifier_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, time.Second)
	c, err := n.RequestPermission(context.Background())
	assert.Error(t, err)
	assert.Equal(t, Pending, c)
	assert.ErrorContains(t, n.Notify(context.Background(), Alert{}), "unexpected status 502")
}

func TestWebhookNotifier_Unavailable(t *testing.T) {
	n := NewWebhookNotifier("", time.Second)
	c, err := n.RequestPermission(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Unavailable, c)
}


// Package notify decides whether a record warrants an expiry reminder and
// delivers it through a pluggable, permission-gated notifier.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pantry/internal/freshness"
	"pantry/internal/model"
)

// Capability is the permission state of a notification channel.
type Capability string

const (
	// Unavailable means the channel does not exist in this environment.
	Unavailable Capability = "unavailable"
	// Pending means permission has not been asked for yet.
	Pending Capability = "pending"
	Granted Capability = "granted"
	Denied  Capability = "denied"
)

// ErrPermissionDenied is returned when the channel refuses delivery.
var ErrPermissionDenied = errors.New("notification permission denied")

// Alert is a one-shot expiry reminder.
type Alert struct {
	RecordID string `json:"recordId"`
	Name     string `json:"name"`
	Days     int    `json:"days"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

// NewAlert builds the reminder for a record expiring in days.
func NewAlert(r model.Record, days int) Alert {
	return Alert{
		RecordID: r.ID,
		Name:     r.Name,
		Days:     days,
		Title:    "Expiry reminder",
		Body:     fmt.Sprintf("%s expires in %d day(s)", r.Name, days),
	}
}

// Toast is the short in-app message shown when a near item is added.
func (a Alert) Toast() string {
	return fmt.Sprintf("%q expires in %d day(s), consider using soon.", a.Name, a.Days)
}

// Notifier delivers alerts over one channel.
type Notifier interface {
	// Capability reports the current permission state without side effects.
	Capability(ctx context.Context) Capability
	// RequestPermission asks for permission and returns the resulting state.
	RequestPermission(ctx context.Context) (Capability, error)
	// Notify delivers an alert. It is only called when permission is granted.
	Notify(ctx context.Context, a Alert) error
}

// ShouldAlert reports whether a record's expiry is finite and within the
// near window, together with the distance in days.
func ShouldAlert(r model.Record, today time.Time) (int, bool) {
	d := freshness.DaysUntil(r.ExpiryDate, today)
	if !freshness.IsFinite(d) {
		return 0, false
	}
	return d, d >= 0 && d <= freshness.NearWindowDays
}

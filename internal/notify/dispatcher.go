package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"pantry/internal/model"
)

// Dispatcher delivers alerts in the background. Delivery never blocks the
// caller and its failures are logged, not returned.
type Dispatcher struct {
	notifier Notifier
	logger   *zap.Logger
	timeout  time.Duration
	wg       sync.WaitGroup
}

// NewDispatcher wraps a notifier. A nil notifier disables alerts.
func NewDispatcher(n Notifier, logger *zap.Logger, timeout time.Duration) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{notifier: n, logger: logger, timeout: timeout}
}

// Dispatch schedules a reminder for r when it expires within the near window
// as of today. It reports whether a reminder was scheduled.
func (d *Dispatcher) Dispatch(r model.Record, today time.Time) (Alert, bool) {
	if d == nil || d.notifier == nil {
		return Alert{}, false
	}
	days, ok := ShouldAlert(r, today)
	if !ok {
		return Alert{}, false
	}
	alert := NewAlert(r, days)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.deliver(alert)
	}()
	return alert, true
}

// Wait blocks until every scheduled delivery has finished.
func (d *Dispatcher) Wait() {
	if d != nil {
		d.wg.Wait()
	}
}

func (d *Dispatcher) deliver(a Alert) {
	log := d.logger.With(zap.String("record_id", a.RecordID), zap.Int("days", a.Days))
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("notify_panic", zap.String("panic", fmt.Sprint(rec)))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	capability := d.notifier.Capability(ctx)
	if capability == Pending {
		var err error
		capability, err = d.notifier.RequestPermission(ctx)
		if err != nil {
			log.Warn("notify_permission_failed", zap.Error(err))
			return
		}
	}
	if capability != Granted {
		log.Debug("notify_skipped", zap.String("capability", string(capability)))
		return
	}
	if err := d.notifier.Notify(ctx, a); err != nil {
		log.Warn("notify_failed", zap.Error(err))
		return
	}
	log.Info("notify_sent")
}

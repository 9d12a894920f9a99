package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes reminders to the application log. It is always granted.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier returns a notifier that logs at info level.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Capability(context.Context) Capability { return Granted }

func (n *LogNotifier) RequestPermission(context.Context) (Capability, error) { return Granted, nil }

func (n *LogNotifier) Notify(_ context.Context, a Alert) error {
	n.logger.Info("expiry_reminder",
		zap.String("title", a.Title),
		zap.String("body", a.Body),
		zap.String("record_id", a.RecordID),
		zap.Int("days", a.Days),
	)
	return nil
}

package worker

import (
	"context"
	"fmt"
	"log/slog"

	"paycycle/internal/amqp"
)

// AlertExporter delivers an overage alert somewhere outside the system.
type AlertExporter interface {
	AppendAlert(ctx context.Context, msg *amqp.OverageAlertMessage) error
}

// AlertWorker consumes overage alert messages and hands them to an exporter.
// A nil exporter degrades to log-only delivery.
type AlertWorker struct {
	exporter AlertExporter
}

func NewAlertWorker(exporter AlertExporter) *AlertWorker {
	return &AlertWorker{exporter: exporter}
}

// HandleAlert processes a single overage alert message from the queue.
func (w *AlertWorker) HandleAlert(ctx context.Context, msg *amqp.OverageAlertMessage) error {
	slog.InfoContext(ctx, "Processing overage alert",
		"notification_id", msg.NotificationID,
		"email", msg.Email,
		"category", msg.Category,
		"usage", msg.Usage,
		"limit", msg.Limit)

	if w.exporter == nil {
		slog.WarnContext(ctx, "No alert exporter configured, alert logged only",
			"notification_id", msg.NotificationID)
		return nil
	}

	if err := w.exporter.AppendAlert(ctx, msg); err != nil {
		return fmt.Errorf("export alert: %w", err)
	}
	return nil
}

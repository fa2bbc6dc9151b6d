// Package notification delivers booking events to the users they concern.
package notification

import (
	"context"
	"fmt"
	"time"

	"skillconnect/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventType string

const (
	EventBookingCreated       EventType = "booking_created"
	EventBookingStatusChanged EventType = "booking_status_changed"
	EventBookingCancelled     EventType = "booking_cancelled"
)

// Event is addressed to a single recipient
type Event struct {
	Type      EventType `json:"type"`
	BookingID uuid.UUID `json:"bookingId"`
	UserID    uuid.UUID `json:"userId"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

type Notifier interface {
	Notify(ctx context.Context, event *Event) error
}

// DefaultDeliveryTimeout caps how long Multi waits on a single notifier
const DefaultDeliveryTimeout = 3 * time.Second

// Multi fans an event out to every notifier. Failures and timeouts are
// logged and swallowed so a broken channel never fails the caller.
type Multi struct {
	notifiers []Notifier
	metrics   *MetricsTracker
	timeout   time.Duration
}

func NewMulti(notifiers ...Notifier) *Multi {
	return &Multi{
		notifiers: notifiers,
		metrics:   NewMetricsTracker(),
		timeout:   DefaultDeliveryTimeout,
	}
}

// SetDeliveryTimeout changes the per-notifier deadline; non-positive values are ignored
func (m *Multi) SetDeliveryTimeout(d time.Duration) {
	if d > 0 {
		m.timeout = d
	}
}

// Metrics exposes the delivery counters
func (m *Multi) Metrics() *MetricsTracker {
	return m.metrics
}

func (m *Multi) Add(n Notifier) {
	m.notifiers = append(m.notifiers, n)
}

func (m *Multi) Notify(ctx context.Context, event *Event) error {
	var delivered, failed int64
	for _, n := range m.notifiers {
		if err := m.deliver(ctx, n, event); err != nil {
			failed++
			logger.Warn("Notification delivery failed",
				zap.String("type", string(event.Type)),
				zap.String("booking_id", event.BookingID.String()),
				zap.String("user_id", event.UserID.String()),
				zap.Error(err),
			)
			continue
		}
		delivered++
	}

	now := time.Now()
	m.metrics.Update(func(dm *DeliveryMetrics) {
		dm.EventsDispatched++
		dm.Deliveries += delivered
		dm.Failures += failed
		dm.LastDispatchedAt = &now
	})
	return nil
}

// deliver stops waiting once the deadline passes, even when the notifier
// itself ignores ctx. The abandoned goroutine exits when Notify returns.
func (m *Multi) deliver(ctx context.Context, n Notifier, event *Event) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- n.Notify(ctx, event)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("%T did not finish in time: %w", n, ctx.Err())
	}
}

// LogNotifier records events in the application log
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (LogNotifier) Notify(_ context.Context, event *Event) error {
	logger.Info("Notification",
		zap.String("type", string(event.Type)),
		zap.String("booking_id", event.BookingID.String()),
		zap.String("user_id", event.UserID.String()),
		zap.String("status", event.Status),
		zap.String("message", event.Message),
		zap.String("event", "notification_sent"),
	)
	return nil
}

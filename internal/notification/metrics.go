package notification

import (
	"sync"
	"time"
)

// DeliveryMetrics counts fan-out attempts since start-up
type DeliveryMetrics struct {
	EventsDispatched int64      `json:"eventsDispatched"`
	Deliveries       int64      `json:"deliveries"`
	Failures         int64      `json:"failures"`
	LastDispatchedAt *time.Time `json:"lastDispatchedAt,omitempty"`
}

// MetricsTracker is a goroutine-safe holder for DeliveryMetrics.
type MetricsTracker struct {
	mu      sync.RWMutex
	metrics DeliveryMetrics
}

func NewMetricsTracker() *MetricsTracker {
	return &MetricsTracker{}
}

// Update applies fn under the write lock
func (t *MetricsTracker) Update(fn func(*DeliveryMetrics)) {
	if fn == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.metrics)
}

func (t *MetricsTracker) Snapshot() DeliveryMetrics {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snapshot := t.metrics
	if snapshot.LastDispatchedAt != nil {
		at := *snapshot.LastDispatchedAt
		snapshot.LastDispatchedAt = &at
	}
	return snapshot
}

func (t *MetricsTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.metrics = DeliveryMetrics{}
}

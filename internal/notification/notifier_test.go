package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	events []*Event
	err    error
}

func (r *recordingNotifier) Notify(_ context.Context, event *Event) error {
	r.events = append(r.events, event)
	return r.err
}

// stalledNotifier blocks until released and ignores ctx
type stalledNotifier struct {
	release chan struct{}
}

func (s *stalledNotifier) Notify(context.Context, *Event) error {
	<-s.release
	return nil
}

// unackedPublisher behaves like an MQTT client whose broker never acknowledges
type unackedPublisher struct{}

func (unackedPublisher) Publish(ctx context.Context, _ string, _ byte, _ bool, _ []byte) error {
	<-ctx.Done()
	return ctx.Err()
}

type fakePublisher struct {
	topic   string
	qos     byte
	payload []byte
}

func (f *fakePublisher) Publish(_ context.Context, topic string, qos byte, _ bool, payload []byte) error {
	f.topic = topic
	f.qos = qos
	f.payload = payload
	return nil
}

func sampleEvent() *Event {
	return &Event{
		Type:      EventBookingCreated,
		BookingID: uuid.New(),
		UserID:    uuid.New(),
		Status:    "pending",
		Message:   "You have a new booking request",
		At:        time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestMulti_ContinuesPastFailures(t *testing.T) {
	failing := &recordingNotifier{err: errors.New("broker down")}
	ok := &recordingNotifier{}
	m := NewMulti(failing, ok)

	err := m.Notify(context.Background(), sampleEvent())
	assert.NoError(t, err)
	assert.Len(t, failing.events, 1)
	assert.Len(t, ok.events, 1)

	stats := m.Metrics().Snapshot()
	assert.Equal(t, int64(1), stats.EventsDispatched)
	assert.Equal(t, int64(1), stats.Deliveries)
	assert.Equal(t, int64(1), stats.Failures)
	assert.NotNil(t, stats.LastDispatchedAt)

	m.Metrics().Reset()
	assert.Zero(t, m.Metrics().Snapshot().EventsDispatched)
}

func TestMulti_BoundsSlowNotifiers(t *testing.T) {
	stalled := &stalledNotifier{release: make(chan struct{})}
	defer close(stalled.release)
	ok := &recordingNotifier{}

	m := NewMulti(stalled, NewMQTTNotifier(unackedPublisher{}, "skillconnect"), ok)
	m.SetDeliveryTimeout(50 * time.Millisecond)

	start := time.Now()
	require.NoError(t, m.Notify(context.Background(), sampleEvent()))
	assert.Less(t, time.Since(start), 2*time.Second)

	assert.Len(t, ok.events, 1)
	stats := m.Metrics().Snapshot()
	assert.Equal(t, int64(1), stats.Deliveries)
	assert.Equal(t, int64(2), stats.Failures)
}

func TestMulti_SetDeliveryTimeoutIgnoresNonPositive(t *testing.T) {
	m := NewMulti()
	m.SetDeliveryTimeout(0)
	assert.Equal(t, DefaultDeliveryTimeout, m.timeout)
	m.SetDeliveryTimeout(time.Second)
	assert.Equal(t, time.Second, m.timeout)
}

func TestMQTTNotifier_PublishesToUserTopic(t *testing.T) {
	pub := &fakePublisher{}
	n := NewMQTTNotifier(pub, "skillconnect")
	event := sampleEvent()

	require.NoError(t, n.Notify(context.Background(), event))
	assert.Equal(t, "skillconnect/users/"+event.UserID.String()+"/notifications", pub.topic)
	assert.Equal(t, byte(1), pub.qos)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(pub.payload, &decoded))
	assert.Equal(t, "booking_created", decoded["type"])
	assert.Equal(t, event.BookingID.String(), decoded["bookingId"])
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, NewLogNotifier().Notify(context.Background(), sampleEvent()))
}

package otpstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func TestStore_SaveOverwritesPending(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock.Now))

	s.Save("+2348012345678", "first", 5*time.Minute)
	s.Save("+2348012345678", "second", 5*time.Minute)

	rec, expired, ok := s.Get("+2348012345678")
	require.True(t, ok)
	assert.False(t, expired)
	assert.Equal(t, "second", rec.Hash)
	assert.Equal(t, 1, s.Len())
}

func TestStore_GetReportsExpiryAndEvicts(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock.Now))

	s.Save("+2348012345678", "hash", 5*time.Minute)
	clock.Advance(5 * time.Minute)

	_, expired, ok := s.Get("+2348012345678")
	assert.True(t, ok)
	assert.True(t, expired)

	_, _, ok = s.Get("+2348012345678")
	assert.False(t, ok)
}

func TestStore_ConsumeIsSingleUse(t *testing.T) {
	s := New()
	s.Save("+2348012345678", "hash", time.Minute)

	assert.False(t, s.Consume("+2348012345678", "other"))
	assert.True(t, s.Consume("+2348012345678", "hash"))
	assert.False(t, s.Consume("+2348012345678", "hash"))
}

func TestStore_PurgeExpired(t *testing.T) {
	clock := newFakeClock()
	s := New(WithClock(clock.Now))

	s.Save("+2348010000001", "a", time.Minute)
	s.Save("+2348010000002", "b", 10*time.Minute)
	clock.Advance(2 * time.Minute)

	assert.Equal(t, 1, s.PurgeExpired())
	assert.Equal(t, 1, s.Len())

	_, _, ok := s.Get("+2348010000002")
	assert.True(t, ok)
}

func TestStartPurge_StopReleasesGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := New()
	p, err := StartPurge(s, "@every 1m")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	p.Stop(ctx)
}

func TestStartPurge_InvalidSpec(t *testing.T) {
	_, err := StartPurge(New(), "not a schedule")
	assert.Error(t, err)
}

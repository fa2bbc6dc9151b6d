package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainBooking "skillconnect/internal/domain/booking"

	"github.com/google/uuid"
)

type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]*domainBooking.Booking
	now      func() time.Time
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		bookings: make(map[uuid.UUID]*domainBooking.Booking),
		now:      time.Now,
	}
}

func (r *BookingRepository) Create(_ context.Context, b *domainBooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = domainBooking.StatusPending
	}
	now := r.now()
	b.CreatedAt = now
	b.UpdatedAt = now

	r.bookings[b.ID] = cloneBooking(b)
	return nil
}

func (r *BookingRepository) GetByID(_ context.Context, bookingID uuid.UUID) (*domainBooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, domainBooking.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

func (r *BookingRepository) UpdateStatus(_ context.Context, bookingID uuid.UUID, update *domainBooking.StatusUpdate) (*domainBooking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, domainBooking.ErrBookingNotFound
	}
	if b.Status != update.From {
		return nil, domainBooking.ErrStatusChanged
	}

	b.Status = update.Status
	b.UpdatedAt = r.now()
	if update.Reason != nil {
		reason := *update.Reason
		b.Reason = &reason
	}
	if update.Price != nil {
		price := *update.Price
		b.Price = &price
	}
	if update.CompletedAt != nil {
		at := *update.CompletedAt
		b.CompletedAt = &at
	}
	return cloneBooking(b), nil
}

func (r *BookingRepository) List(_ context.Context, filter *domainBooking.Filter) ([]*domainBooking.Booking, error) {
	r.mu.RLock()
	out := make([]*domainBooking.Booking, 0)
	for _, b := range r.bookings {
		if filter != nil {
			if filter.CustomerID != nil && b.CustomerID != *filter.CustomerID {
				continue
			}
			if filter.WorkerID != nil && b.WorkerID != *filter.WorkerID {
				continue
			}
			if filter.Status != nil && b.Status != *filter.Status {
				continue
			}
		}
		out = append(out, cloneBooking(b))
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() > out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func cloneBooking(b *domainBooking.Booking) *domainBooking.Booking {
	c := *b
	c.Images = append([]string(nil), b.Images...)
	if b.Price != nil {
		p := *b.Price
		c.Price = &p
	}
	if b.Reason != nil {
		s := *b.Reason
		c.Reason = &s
	}
	if b.CompletedAt != nil {
		t := *b.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

// Package memory holds map-backed repositories used for demo mode and tests.
package memory

import (
	domainBooking "skillconnect/internal/domain/booking"
	domainReview "skillconnect/internal/domain/review"
	domainUser "skillconnect/internal/domain/user"
)

// Store bundles one repository per aggregate, sharing nothing but lifetime
type Store struct {
	Users    *UserRepository
	Bookings *BookingRepository
	Reviews  *ReviewRepository
}

func NewStore() *Store {
	return &Store{
		Users:    NewUserRepository(),
		Bookings: NewBookingRepository(),
		Reviews:  NewReviewRepository(),
	}
}

var (
	_ domainUser.Repository    = (*UserRepository)(nil)
	_ domainBooking.Repository = (*BookingRepository)(nil)
	_ domainReview.Repository  = (*ReviewRepository)(nil)
)

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainUser "skillconnect/internal/domain/user"

	"github.com/google/uuid"
)

type UserRepository struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]*domainUser.User
	byPhone map[string]uuid.UUID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:   make(map[uuid.UUID]*domainUser.User),
		byPhone: make(map[string]uuid.UUID),
	}
}

func (r *UserRepository) Create(_ context.Context, user *domainUser.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byPhone[user.Phone]; taken {
		return domainUser.ErrUserAlreadyExists
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if _, taken := r.users[user.ID]; taken {
		return domainUser.ErrUserAlreadyExists
	}
	if user.Type == "" {
		user.Type = domainUser.TypeCustomer
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID] = cloneUser(user)
	r.byPhone[user.Phone] = user.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, userID uuid.UUID) (*domainUser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetByIDs(_ context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*domainUser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[uuid.UUID]*domainUser.User, len(userIDs))
	for _, id := range userIDs {
		if u, ok := r.users[id]; ok {
			out[id] = cloneUser(u)
		}
	}
	return out, nil
}

func (r *UserRepository) GetByPhone(_ context.Context, phone string) (*domainUser.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPhone[phone]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	return cloneUser(r.users[id]), nil
}

func (r *UserRepository) Update(_ context.Context, user *domainUser.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	if user.Phone != existing.Phone {
		if _, taken := r.byPhone[user.Phone]; taken {
			return domainUser.ErrUserAlreadyExists
		}
		delete(r.byPhone, existing.Phone)
		r.byPhone[user.Phone] = user.ID
	}

	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now()
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepository) UpdateAvailability(_ context.Context, userID uuid.UUID, availability domainUser.Availability) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok || !u.IsWorker() {
		return domainUser.ErrUserNotFound
	}
	u.Worker.Availability = availability
	u.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepository) ListWorkers(_ context.Context, filter *domainUser.WorkerFilter) ([]*domainUser.User, error) {
	if filter == nil {
		filter = &domainUser.WorkerFilter{}
	}

	r.mu.RLock()
	out := make([]*domainUser.User, 0)
	for _, u := range r.users {
		if matchesWorkerFilter(u, filter) {
			out = append(out, cloneUser(u))
		}
	}
	r.mu.RUnlock()

	if filter.OrderByRating {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].Worker, out[j].Worker
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
			return a.ReviewCount > b.ReviewCount
		})
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *UserRepository) CountAvailableByCategory(_ context.Context) ([]domainUser.CategoryCount, error) {
	r.mu.RLock()
	counts := make(map[domainUser.Category]int)
	for _, u := range r.users {
		if u.IsWorker() && u.Worker.Availability == domainUser.AvailabilityAvailable {
			counts[u.Worker.Category]++
		}
	}
	r.mu.RUnlock()

	out := make([]domainUser.CategoryCount, 0, len(counts))
	for category, count := range counts {
		out = append(out, domainUser.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func matchesWorkerFilter(u *domainUser.User, f *domainUser.WorkerFilter) bool {
	if !u.IsWorker() {
		return false
	}
	if f.Category != nil && u.Worker.Category != *f.Category {
		return false
	}
	if f.Availability != nil && u.Worker.Availability != *f.Availability {
		return false
	}
	if f.MinRating != nil && u.Worker.Rating < *f.MinRating {
		return false
	}
	if f.VerifiedOnly && !u.IsVerified {
		return false
	}
	return true
}

func cloneUser(u *domainUser.User) *domainUser.User {
	c := *u
	if u.ProfileImage != nil {
		img := *u.ProfileImage
		c.ProfileImage = &img
	}
	if u.Worker != nil {
		w := *u.Worker
		w.Skills = append([]string(nil), u.Worker.Skills...)
		w.Certifications = append([]string(nil), u.Worker.Certifications...)
		w.Portfolio = append([]domainUser.PortfolioItem(nil), u.Worker.Portfolio...)
		if u.Worker.Location != nil {
			loc := *u.Worker.Location
			w.Location = &loc
		}
		if u.Worker.Guarantor != nil {
			g := *u.Worker.Guarantor
			w.Guarantor = &g
		}
		if u.Worker.IDVerification != nil {
			v := *u.Worker.IDVerification
			w.IDVerification = &v
		}
		c.Worker = &w
	}
	return &c
}

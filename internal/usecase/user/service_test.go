package user

import (
	"context"
	"encoding/json"
	"testing"

	domainUser "skillconnect/internal/domain/user"
	"skillconnect/internal/infrastructure/database/memory"
	appErrors "skillconnect/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMe(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	svc := NewService(repo)

	u := &domainUser.User{Name: "Ada", Phone: "+2348010000001", IsVerified: true}
	require.NoError(t, repo.Create(ctx, u))

	resp, err := svc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", resp.Name)
	assert.Nil(t, resp.WorkerProfileResponse)

	_, err = svc.Me(ctx, uuid.New())
	assert.True(t, appErrors.HasCode(err, appErrors.CodeNotFound))
}

func TestUserResponse_FlattensWorkerProfile(t *testing.T) {
	u := &domainUser.User{
		ID:    uuid.New(),
		Name:  "Musa",
		Phone: "+2348010000002",
		Type:  domainUser.TypeWorker,
		Worker: &domainUser.WorkerProfile{
			Category:     domainUser.CategoryMechanic,
			Availability: domainUser.AvailabilityAvailable,
		},
	}

	raw, err := json.Marshal(ToUserResponse(u))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "mechanic", decoded["category"])
	assert.Equal(t, "available", decoded["availability"])
	assert.Equal(t, []interface{}{}, decoded["skills"])

	customer := &domainUser.User{ID: uuid.New(), Name: "Ada", Type: domainUser.TypeCustomer}
	raw, err = json.Marshal(ToUserResponse(customer))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "category")
}

func TestSummaries(t *testing.T) {
	u := &domainUser.User{
		ID:   uuid.New(),
		Name: "Musa",
		Type: domainUser.TypeWorker,
		Worker: &domainUser.WorkerProfile{
			Category: domainUser.CategoryPainter,
			Rating:   4.2,
		},
	}

	customerView := ToCustomerSummary(u)
	assert.Empty(t, customerView.Category)
	assert.Nil(t, customerView.Rating)

	workerView := ToWorkerSummary(u)
	assert.Equal(t, domainUser.CategoryPainter, workerView.Category)
	require.NotNil(t, workerView.Rating)
	assert.Equal(t, 4.2, *workerView.Rating)

	assert.Nil(t, ToWorkerSummary(nil))
}

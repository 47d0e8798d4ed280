package bikes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloservis/BikeShop-Service/internal/domain"
	bikeRepo "github.com/veloservis/BikeShop-Service/internal/infra/storage/bike"
	"github.com/veloservis/BikeShop-Service/internal/service/bikes/models"
	"github.com/veloservis/BikeShop-Service/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type bikeRepoMock struct {
	liveCount int
	deleteErr error

	created    *domain.Bike
	deletedIDs []int64
	byOwner    []*domain.Bike
}

func (m *bikeRepoMock) Create(_ context.Context, b *domain.Bike) (*domain.Bike, error) {
	b.ID = 1
	m.created = b
	return b, nil
}

func (m *bikeRepoMock) GetByOwner(_ context.Context, _ string) ([]*domain.Bike, error) {
	return m.byOwner, nil
}

func (m *bikeRepoMock) CountLiveByOwner(_ context.Context, _ string) (int, error) {
	return m.liveCount, nil
}

func (m *bikeRepoMock) Delete(_ context.Context, id int64, _ string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func TestCreate(t *testing.T) {
	t.Run("registers bike with normalized owner", func(t *testing.T) {
		repo := &bikeRepoMock{}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.Create(context.Background(), &models.CreateBikeRequest{
			OwnerEmail:   "Customer@Example.com",
			Brand:        "Specialized",
			Model:        "Rockhopper",
			SerialNumber: ptr.Ptr("WSBC123456"),
		})

		require.NoError(t, err)
		assert.Equal(t, "customer@example.com", resp.OwnerEmail)
		assert.Equal(t, "Specialized", resp.Brand)
		require.NotNil(t, repo.created)
		assert.False(t, repo.created.Deleted)
	})

	t.Run("missing brand or model", func(t *testing.T) {
		svc := NewService(&bikeRepoMock{}, nopLogger{})

		_, err := svc.Create(context.Background(), &models.CreateBikeRequest{
			OwnerEmail: "customer@example.com",
			Brand:      "Specialized",
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("owner at the limit is rejected", func(t *testing.T) {
		repo := &bikeRepoMock{liveCount: domain.MaxBikesPerOwner}
		svc := NewService(repo, nopLogger{})

		_, err := svc.Create(context.Background(), &models.CreateBikeRequest{
			OwnerEmail: "customer@example.com",
			Brand:      "Canyon",
			Model:      "Spectral",
		})

		assert.ErrorIs(t, err, ErrMaxBikesReached)
		assert.Nil(t, repo.created)
	})

	t.Run("one below the limit still fits", func(t *testing.T) {
		repo := &bikeRepoMock{liveCount: domain.MaxBikesPerOwner - 1}
		svc := NewService(repo, nopLogger{})

		_, err := svc.Create(context.Background(), &models.CreateBikeRequest{
			OwnerEmail: "customer@example.com",
			Brand:      "Canyon",
			Model:      "Spectral",
		})

		require.NoError(t, err)
	})
}

func TestGetUserBikes(t *testing.T) {
	repo := &bikeRepoMock{byOwner: []*domain.Bike{
		{ID: 1, OwnerEmail: "customer@example.com", Brand: "Canyon", Model: "Spectral"},
		{ID: 2, OwnerEmail: "customer@example.com", Brand: "Trek", Model: "Marlin"},
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetUserBikes(context.Background(), "customer@example.com")

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "Canyon", resp.Bikes[0].Brand)
}

func TestDelete(t *testing.T) {
	t.Run("soft deletes own bike", func(t *testing.T) {
		repo := &bikeRepoMock{}
		svc := NewService(repo, nopLogger{})

		err := svc.Delete(context.Background(), 1, "customer@example.com")

		require.NoError(t, err)
		assert.Equal(t, []int64{1}, repo.deletedIDs)
	})

	t.Run("foreign bike looks missing", func(t *testing.T) {
		repo := &bikeRepoMock{deleteErr: bikeRepo.ErrBikeNotFound}
		svc := NewService(repo, nopLogger{})

		err := svc.Delete(context.Background(), 1, "intruder@example.com")

		assert.ErrorIs(t, err, ErrBikeNotFound)
	})
}

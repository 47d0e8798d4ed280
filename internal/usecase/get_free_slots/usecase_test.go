package get_free_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloservis/BikeShop-Service/internal/domain"
	mechanicRepo "github.com/veloservis/BikeShop-Service/internal/infra/storage/mechanic"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type mechanicRepoMock struct {
	mechanic *domain.Mechanic
	err      error
}

func (m *mechanicRepoMock) GetByID(_ context.Context, _ int64) (*domain.Mechanic, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.mechanic, nil
}

type requestRepoMock struct {
	occupied []time.Time
}

func (m *requestRepoMock) GetAssignedDates(_ context.Context, _ int64, _ time.Time) ([]time.Time, error) {
	return m.occupied, nil
}

func TestExecute(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	slotA := now.Add(2 * time.Hour)
	slotB := now.Add(4 * time.Hour)
	past := now.Add(-time.Hour)

	newUC := func(mechanics *mechanicRepoMock, reqs *requestRepoMock) *UseCase {
		return NewUseCase(mechanics, reqs, nopLogger{}).
			WithTimeProvider(&fixedTimeProvider{now: now})
	}

	t.Run("declared future slots minus occupied, ascending", func(t *testing.T) {
		mechanic := &domain.Mechanic{
			ID:             1,
			Active:         true,
			AvailableSlots: []time.Time{slotB, past, slotA},
		}
		uc := newUC(&mechanicRepoMock{mechanic: mechanic}, &requestRepoMock{occupied: []time.Time{slotA}})

		free, err := uc.Execute(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, []time.Time{slotB}, free)
	})

	t.Run("fully free mechanic lists slots in order", func(t *testing.T) {
		mechanic := &domain.Mechanic{
			ID:             1,
			Active:         true,
			AvailableSlots: []time.Time{slotB, slotA},
		}
		uc := newUC(&mechanicRepoMock{mechanic: mechanic}, &requestRepoMock{})

		free, err := uc.Execute(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, []time.Time{slotA, slotB}, free)
	})

	t.Run("no declared slots gives empty list", func(t *testing.T) {
		mechanic := &domain.Mechanic{ID: 1, Active: true}
		uc := newUC(&mechanicRepoMock{mechanic: mechanic}, &requestRepoMock{})

		free, err := uc.Execute(context.Background(), 1)

		require.NoError(t, err)
		assert.Empty(t, free)
	})

	t.Run("unknown mechanic", func(t *testing.T) {
		uc := newUC(&mechanicRepoMock{err: mechanicRepo.ErrMechanicNotFound}, &requestRepoMock{})

		_, err := uc.Execute(context.Background(), 404)

		assert.ErrorIs(t, err, ErrMechanicInvalid)
	})

	t.Run("inactive mechanic", func(t *testing.T) {
		mechanic := &domain.Mechanic{ID: 1, Active: false, AvailableSlots: []time.Time{slotA}}
		uc := newUC(&mechanicRepoMock{mechanic: mechanic}, &requestRepoMock{})

		_, err := uc.Execute(context.Background(), 1)

		assert.ErrorIs(t, err, ErrMechanicInvalid)
	})
}

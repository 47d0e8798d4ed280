package mechanics

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

type mechanicRepoMock struct {
	mechanic  *domain.Mechanic
	getErr    error
	createErr error

	created       *domain.Mechanic
	addedSlots    []time.Time
	removedSlots  []time.Time
	updatedSkills []domain.ServiceType
}

func (m *mechanicRepoMock) Create(_ context.Context, mechanic *domain.Mechanic) (*domain.Mechanic, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	mechanic.ID = 1
	m.created = mechanic
	return mechanic, nil
}

func (m *mechanicRepoMock) GetByUserEmail(_ context.Context, _ string) (*domain.Mechanic, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.mechanic, nil
}

func (m *mechanicRepoMock) AddSlot(_ context.Context, _ int64, at time.Time) error {
	// Идемпотентность хранилища: повторный момент не добавляется
	for _, slot := range m.addedSlots {
		if slot.Equal(at) {
			return nil
		}
	}
	m.addedSlots = append(m.addedSlots, at)
	return nil
}

func (m *mechanicRepoMock) RemoveSlot(_ context.Context, _ int64, at time.Time) error {
	m.removedSlots = append(m.removedSlots, at)
	return nil
}

func (m *mechanicRepoMock) UpdateSkills(_ context.Context, _ int64, skills []domain.ServiceType) error {
	m.updatedSkills = skills
	return nil
}

func activeMechanic() *domain.Mechanic {
	return &domain.Mechanic{
		ID:        1,
		UserEmail: "mechanic@veloservis.cz",
		Skills:    []domain.ServiceType{domain.ServiceTypeServis},
		Active:    true,
	}
}

func TestUpgrade(t *testing.T) {
	t.Run("creates active mechanic with normalized email", func(t *testing.T) {
		repo := &mechanicRepoMock{}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.Upgrade(context.Background(), "Mechanic@VeloServis.CZ", []string{"servis", "odpruzeni"})

		require.NoError(t, err)
		assert.Equal(t, "mechanic@veloservis.cz", resp.UserEmail)
		assert.True(t, resp.Active)
		assert.Equal(t, []string{"servis", "odpruzeni"}, resp.Skills)
	})

	t.Run("duplicate skills collapse", func(t *testing.T) {
		repo := &mechanicRepoMock{}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.Upgrade(context.Background(), "mechanic@veloservis.cz", []string{"servis", "servis"})

		require.NoError(t, err)
		assert.Equal(t, []string{"servis"}, resp.Skills)
	})

	t.Run("unknown skill", func(t *testing.T) {
		svc := NewService(&mechanicRepoMock{}, nopLogger{})

		_, err := svc.Upgrade(context.Background(), "mechanic@veloservis.cz", []string{"lakovani"})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("already a mechanic", func(t *testing.T) {
		svc := NewService(&mechanicRepoMock{createErr: mechanicRepo.ErrMechanicExists}, nopLogger{})

		_, err := svc.Upgrade(context.Background(), "mechanic@veloservis.cz", nil)

		assert.ErrorIs(t, err, ErrAlreadyMechanic)
	})
}

func TestAddSlot(t *testing.T) {
	slot := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("declares slot in UTC", func(t *testing.T) {
		repo := &mechanicRepoMock{mechanic: activeMechanic()}
		svc := NewService(repo, nopLogger{})

		prague := time.FixedZone("CEST", 2*60*60)
		err := svc.AddSlot(context.Background(), "mechanic@veloservis.cz", slot.In(prague))

		require.NoError(t, err)
		require.Len(t, repo.addedSlots, 1)
		assert.True(t, repo.addedSlots[0].Equal(slot))
		assert.Equal(t, time.UTC, repo.addedSlots[0].Location())
	})

	t.Run("repeated declaration is idempotent", func(t *testing.T) {
		repo := &mechanicRepoMock{mechanic: activeMechanic()}
		svc := NewService(repo, nopLogger{})

		require.NoError(t, svc.AddSlot(context.Background(), "mechanic@veloservis.cz", slot))
		require.NoError(t, svc.AddSlot(context.Background(), "mechanic@veloservis.cz", slot))

		assert.Len(t, repo.addedSlots, 1)
	})

	t.Run("not a mechanic", func(t *testing.T) {
		svc := NewService(&mechanicRepoMock{getErr: mechanicRepo.ErrMechanicNotFound}, nopLogger{})

		err := svc.AddSlot(context.Background(), "user@example.com", slot)

		assert.ErrorIs(t, err, ErrNotMechanic)
	})

	t.Run("zero time", func(t *testing.T) {
		svc := NewService(&mechanicRepoMock{mechanic: activeMechanic()}, nopLogger{})

		err := svc.AddSlot(context.Background(), "mechanic@veloservis.cz", time.Time{})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestRemoveSlot(t *testing.T) {
	slot := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("absent instant is a no-op, not an error", func(t *testing.T) {
		repo := &mechanicRepoMock{mechanic: activeMechanic()}
		svc := NewService(repo, nopLogger{})

		err := svc.RemoveSlot(context.Background(), "mechanic@veloservis.cz", slot)

		require.NoError(t, err)
		require.Len(t, repo.removedSlots, 1)
		assert.True(t, repo.removedSlots[0].Equal(slot))
	})

	t.Run("not a mechanic", func(t *testing.T) {
		svc := NewService(&mechanicRepoMock{getErr: mechanicRepo.ErrMechanicNotFound}, nopLogger{})

		err := svc.RemoveSlot(context.Background(), "user@example.com", slot)

		assert.ErrorIs(t, err, ErrNotMechanic)
	})
}

func TestUpdateSkills(t *testing.T) {
	t.Run("replaces skill set", func(t *testing.T) {
		repo := &mechanicRepoMock{mechanic: activeMechanic()}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.UpdateSkills(context.Background(), "mechanic@veloservis.cz", []string{"reklamace"})

		require.NoError(t, err)
		assert.Equal(t, []domain.ServiceType{domain.ServiceTypeReklamace}, repo.updatedSkills)
		assert.Equal(t, []string{"reklamace"}, resp.Skills)
	})

	t.Run("empty set is allowed", func(t *testing.T) {
		repo := &mechanicRepoMock{mechanic: activeMechanic()}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.UpdateSkills(context.Background(), "mechanic@veloservis.cz", nil)

		require.NoError(t, err)
		assert.Empty(t, resp.Skills)
	})

	t.Run("unknown skill", func(t *testing.T) {
		svc := NewService(&mechanicRepoMock{mechanic: activeMechanic()}, nopLogger{})

		_, err := svc.UpdateSkills(context.Background(), "mechanic@veloservis.cz", []string{"lakovani"})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetProfile(t *testing.T) {
	t.Run("returns own profile", func(t *testing.T) {
		repo := &mechanicRepoMock{mechanic: activeMechanic()}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.GetProfile(context.Background(), "mechanic@veloservis.cz")

		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("not a mechanic", func(t *testing.T) {
		svc := NewService(&mechanicRepoMock{getErr: mechanicRepo.ErrMechanicNotFound}, nopLogger{})

		_, err := svc.GetProfile(context.Background(), "user@example.com")

		assert.ErrorIs(t, err, ErrNotMechanic)
	})
}

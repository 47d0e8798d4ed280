package create_request

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloservis/BikeShop-Service/internal/domain"
	bikeRepo "github.com/veloservis/BikeShop-Service/internal/infra/storage/bike"
	mechanicRepo "github.com/veloservis/BikeShop-Service/internal/infra/storage/mechanic"
	requestRepo "github.com/veloservis/BikeShop-Service/internal/infra/storage/request"
	"github.com/veloservis/BikeShop-Service/internal/integrations/mailer"
	"github.com/veloservis/BikeShop-Service/pkg/ptr"
)

// --- моки ---

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
	occupied    []time.Time
	createErrs  []error // ошибки очередных вызовов Create, по одной на вызов
	createCalls int
	created     []*domain.ServiceRequest
}

func (m *requestRepoMock) GetAssignedDates(_ context.Context, _ int64, _ time.Time) ([]time.Time, error) {
	out := make([]time.Time, len(m.occupied))
	copy(out, m.occupied)
	return out, nil
}

func (m *requestRepoMock) Create(_ context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	m.createCalls++
	if len(m.createErrs) > 0 {
		err := m.createErrs[0]
		m.createErrs = m.createErrs[1:]
		if errors.Is(err, requestRepo.ErrAssignedDateConflict) && req.AssignedDate != nil {
			// Конкурирующая заявка перехватила слот: повторный подбор его не увидит
			m.occupied = append(m.occupied, *req.AssignedDate)
		}
		return nil, err
	}
	req.ID = int64(len(m.created) + 1)
	m.created = append(m.created, req)
	return req, nil
}

type bikeRepoMock struct {
	bike *domain.Bike
	err  error
}

func (m *bikeRepoMock) GetByIDForOwner(_ context.Context, _ int64, _ string) (*domain.Bike, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.bike, nil
}

type txManagerMock struct{}

func (txManagerMock) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type notifierMock struct {
	sent chan mailer.RequestCreatedNotification
}

func newNotifierMock() *notifierMock {
	return &notifierMock{sent: make(chan mailer.RequestCreatedNotification, 1)}
}

func (m *notifierMock) SendRequestCreated(_ context.Context, n mailer.RequestCreatedNotification) error {
	select {
	case m.sent <- n:
	default:
	}
	return nil
}

// --- фикстуры ---

var testNow = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

func testMechanic() *domain.Mechanic {
	return &domain.Mechanic{
		ID:        1,
		UserEmail: "mechanic@veloservis.cz",
		Skills:    []domain.ServiceType{domain.ServiceTypeServis, domain.ServiceTypeOdpruzeni},
		AvailableSlots: []time.Time{
			testNow.Add(2 * time.Hour), // 10:00
			testNow.Add(3 * time.Hour), // 11:00
			testNow.Add(-time.Hour),    // вчерашний, должен игнорироваться
		},
		Active: true,
	}
}

func newTestUseCase(mechanics *mechanicRepoMock, reqs *requestRepoMock, bikes *bikeRepoMock, notifier *notifierMock) *UseCase {
	if notifier == nil {
		notifier = newNotifierMock()
	}
	return NewUseCase(mechanics, reqs, bikes, txManagerMock{}, notifier, nopLogger{}).
		WithTimeProvider(&fixedTimeProvider{now: testNow})
}

// --- тесты ---

func TestExecute_PreferredDate(t *testing.T) {
	slot := testNow.Add(2 * time.Hour)

	t.Run("exact offered slot is assigned", func(t *testing.T) {
		reqs := &requestRepoMock{}
		uc := newTestUseCase(&mechanicRepoMock{mechanic: testMechanic()}, reqs, &bikeRepoMock{}, nil)

		resp, err := uc.Execute(context.Background(), &Request{
			OwnerEmail:    "Customer@Example.COM",
			MechanicID:    ptr.Ptr(int64(1)),
			ServiceTypes:  []domain.ServiceType{domain.ServiceTypeServis},
			DeferredBike:  true,
			PreferredDate: &slot,
		})

		require.NoError(t, err)
		require.NotNil(t, resp.AssignedDate)
		assert.True(t, resp.AssignedDate.Equal(slot))
		assert.Equal(t, domain.StatusNew, resp.Status)
		assert.Equal(t, "customer@example.com", resp.OwnerEmail)
		require.Len(t, resp.Events, 1)
		assert.Equal(t, domain.EventTypeCreated, resp.Events[0].Type)
		assert.Equal(t, domain.StatusNew, resp.Events[0].To)
	})

	t.Run("instant off by a millisecond is not offered", func(t *testing.T) {
		reqs := &requestRepoMock{}
		uc := newTestUseCase(&mechanicRepoMock{mechanic: testMechanic()}, reqs, &bikeRepoMock{}, nil)

		_, err := uc.Execute(context.Background(), &Request{
			OwnerEmail:    "customer@example.com",
			MechanicID:    ptr.Ptr(int64(1)),
			DeferredBike:  true,
			PreferredDate: ptr.Ptr(slot.Add(time.Millisecond)),
		})

		assert.ErrorIs(t, err, ErrSlotNotOffered)
		assert.Zero(t, reqs.createCalls)
	})

	t.Run("past slot is not offered", func(t *testing.T) {
		uc := newTestUseCase(&mechanicRepoMock{mechanic: testMechanic()}, &requestRepoMock{}, &bikeRepoMock{}, nil)

		_, err := uc.Execute(context.Background(), &Request{
			OwnerEmail:    "customer@example.com",
			MechanicID:    ptr.Ptr(int64(1)),
			DeferredBike:  true,
			PreferredDate: ptr.Ptr(testNow.Add(-time.Hour)),
		})

		assert.ErrorIs(t, err, ErrSlotNotOffered)
	})

	t.Run("occupied slot is taken", func(t *testing.T) {
		reqs := &requestRepoMock{occupied: []time.Time{slot}}
		uc := newTestUseCase(&mechanicRepoMock{mechanic: testMechanic()}, reqs, &bikeRepoMock{}, nil)

		_, err := uc.Execute(context.Background(), &Request{
			OwnerEmail:    "customer@example.com",
			MechanicID:    ptr.Ptr(int64(1)),
			DeferredBike:  true,
			PreferredDate: &slot,
		})

		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("concurrent booking of preferred slot is taken", func(t *testing.T) {
		reqs := &requestRepoMock{createErrs: []error{requestRepo.ErrAssignedDateConflict}}
		uc := newTestUseCase(&mechanicRepoMock{mechanic: testMechanic()}, reqs, &bikeRepoMock{}, nil)

		_, err := uc.Execute(context.Background(), &Request{
			OwnerEmail:    "customer@example.com",
			MechanicID:    ptr.Ptr(int64(1)),
			DeferredBike:  true,
			PreferredDate: &slot,
		})

		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.Equal(t, 1, reqs.createCalls)
	})
}

func TestExecute_FirstAvailable(t *testing.T) {
	t.Run("earliest free slot is assigned", func(t *testing.T) {
		reqs := &requestRepoMock{}
		uc := newTestUseCase(&mechanicRepoMock{mechanic: testMechanic()}, reqs, &bikeRepoMock{}, nil)

		resp, err := uc.Execute(context.Background(), &Request{
			OwnerEmail:     "customer@example.com",
			MechanicID:     ptr.Ptr(int64(1)),
			DeferredBike:   true,
			FirstAvailable: true,
		})

		require.NoError(t, err)
		require.NotNil(t, resp.AssignedDate)
		assert.True(t, resp.AssignedDate.Equal(testNow.Add(2*time.Hour)))
	})

	t.Run("earliest occupied falls through to next", func(t *testing.T) {
		reqs := &requestRepoMock{occupied: []time.Time{testNow.Add(2 * time.Hour)}}
		uc := newTestUseCase(&mechanicRepoMock{mechanic: testMechanic()}, reqs, &bikeRepoMock{}, nil)

		resp, err := uc.Execute(context.Background(), &Request{
			OwnerEmail:     "customer@example.com",
			MechanicID:     ptr.Ptr(int64(1)),
			DeferredBike:   true,
			FirstAvailable: true,
		})

		require.NoError(t, err)
		require.NotNil(t, resp.AssignedDate)
		assert.True(t, resp.AssignedDate.Equal(testNow.Add(3*time.Hour)))
	})

	t.Run("no free slot", func(t *testing.T) {
		reqs := &requestRepoMock{occupied: []time.Time{
			testNow.Add(2 * time.Hour),
			testNow.Add(3 * time.Hour),
		}}
		uc := newTestUseCase(&mechanicRepoMock{mechanic: testMechanic()}, reqs, &bikeRepoMock{}, nil)

		_, err := uc.Execute(context.Background(), &Request{
			OwnerEmail:     "customer@example.com",
			MechanicID:     ptr.Ptr(int64(1)),
			DeferredBike:   true,
			FirstAvailable: true,
		})

		assert.ErrorIs(t, err, ErrNoFreeSlot)
	})

	t.Run("conflict with concurrent booking retries on fresh slots", func(t *testing.T) {
		reqs := &requestRepoMock{createErrs: []error{requestRepo.ErrAssignedDateConflict}}
		uc := newTestUseCase(&mechanicRepoMock{mechanic: testMechanic()}, reqs, &bikeRepoMock{}, nil)

		resp, err := uc.Execute(context.Background(), &Request{
			OwnerEmail:     "customer@example.com",
			MechanicID:     ptr.Ptr(int64(1)),
			DeferredBike:   true,
			FirstAvailable: true,
		})

		require.NoError(t, err)
		assert.Equal(t, 2, reqs.createCalls)
		require.NotNil(t, resp.AssignedDate)
		assert.True(t, resp.AssignedDate.Equal(testNow.Add(3*time.Hour)))
	})

	t.Run("persistent conflict gives up with slot taken", func(t *testing.T) {
		reqs := &requestRepoMock{createErrs: []error{
			requestRepo.ErrAssignedDateConflict,
			requestRepo.ErrAssignedDateConflict,
		}}
		uc := newTestUseCase(&mechanicRepoMock{mechanic: testMechanic()}, reqs, &bikeRepoMock{}, nil)

		_, err := uc.Execute(context.Background(), &Request{
			OwnerEmail:     "customer@example.com",
			MechanicID:     ptr.Ptr(int64(1)),
			DeferredBike:   true,
			FirstAvailable: true,
		})

		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.Equal(t, 2, reqs.createCalls)
	})
}

func TestExecute_SkillMismatch(t *testing.T) {
	mechanic := testMechanic()
	mechanic.Skills = []domain.ServiceType{domain.ServiceTypeServis}

	uc := newTestUseCase(&mechanicRepoMock{mechanic: mechanic}, &requestRepoMock{}, &bikeRepoMock{}, nil)

	_, err := uc.Execute(context.Background(), &Request{
		OwnerEmail:   "customer@example.com",
		MechanicID:   ptr.Ptr(int64(1)),
		DeferredBike: true,
		ServiceTypes: []domain.ServiceType{
			domain.ServiceTypeServis,
			domain.ServiceTypeReklamace,
			domain.ServiceTypeOdpruzeni,
		},
	})

	require.ErrorIs(t, err, ErrSkillMismatch)

	var mismatch *SkillMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, []domain.ServiceType{domain.ServiceTypeReklamace, domain.ServiceTypeOdpruzeni}, mismatch.Missing)
}

func TestExecute_MechanicInvalid(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		uc := newTestUseCase(&mechanicRepoMock{err: mechanicRepo.ErrMechanicNotFound}, &requestRepoMock{}, &bikeRepoMock{}, nil)

		_, err := uc.Execute(context.Background(), &Request{
			OwnerEmail:   "customer@example.com",
			MechanicID:   ptr.Ptr(int64(404)),
			DeferredBike: true,
		})

		assert.ErrorIs(t, err, ErrMechanicInvalid)
	})

	t.Run("inactive", func(t *testing.T) {
		mechanic := testMechanic()
		mechanic.Active = false
		uc := newTestUseCase(&mechanicRepoMock{mechanic: mechanic}, &requestRepoMock{}, &bikeRepoMock{}, nil)

		_, err := uc.Execute(context.Background(), &Request{
			OwnerEmail:   "customer@example.com",
			MechanicID:   ptr.Ptr(int64(1)),
			DeferredBike: true,
		})

		assert.ErrorIs(t, err, ErrMechanicInvalid)
	})
}

func TestExecute_BikeInvalid(t *testing.T) {
	uc := newTestUseCase(&mechanicRepoMock{mechanic: testMechanic()}, &requestRepoMock{}, &bikeRepoMock{err: bikeRepo.ErrBikeNotFound}, nil)

	_, err := uc.Execute(context.Background(), &Request{
		OwnerEmail: "customer@example.com",
		BikeID:     ptr.Ptr(int64(7)),
	})

	assert.ErrorIs(t, err, ErrBikeInvalid)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&mechanicRepoMock{mechanic: testMechanic()}, &requestRepoMock{}, &bikeRepoMock{bike: &domain.Bike{ID: 7}}, nil)

	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "both bike and deferred",
			req: &Request{
				OwnerEmail:   "customer@example.com",
				BikeID:       ptr.Ptr(int64(7)),
				DeferredBike: true,
			},
		},
		{
			name: "neither bike nor deferred",
			req: &Request{
				OwnerEmail: "customer@example.com",
			},
		},
		{
			name: "scheduling without mechanic",
			req: &Request{
				OwnerEmail:     "customer@example.com",
				DeferredBike:   true,
				FirstAvailable: true,
			},
		},
		{
			name: "missing owner email",
			req: &Request{
				DeferredBike: true,
			},
		},
		{
			name: "unknown service type",
			req: &Request{
				OwnerEmail:   "customer@example.com",
				DeferredBike: true,
				ServiceTypes: []domain.ServiceType{"lakovani"},
			},
		},
		{
			name: "negative price estimate",
			req: &Request{
				OwnerEmail:    "customer@example.com",
				DeferredBike:  true,
				PriceEstimate: ptr.Ptr(-1.0),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_Unscheduled(t *testing.T) {
	t.Run("mechanic without scheduling flags stays unscheduled", func(t *testing.T) {
		reqs := &requestRepoMock{}
		uc := newTestUseCase(&mechanicRepoMock{mechanic: testMechanic()}, reqs, &bikeRepoMock{}, nil)

		resp, err := uc.Execute(context.Background(), &Request{
			OwnerEmail:   "customer@example.com",
			MechanicID:   ptr.Ptr(int64(1)),
			DeferredBike: true,
		})

		require.NoError(t, err)
		assert.Nil(t, resp.AssignedDate)
		assert.Equal(t, ptr.Ptr(int64(1)), resp.MechanicID)
	})

	t.Run("no mechanic at all", func(t *testing.T) {
		uc := newTestUseCase(&mechanicRepoMock{}, &requestRepoMock{}, &bikeRepoMock{}, nil)

		resp, err := uc.Execute(context.Background(), &Request{
			OwnerEmail:   "customer@example.com",
			DeferredBike: true,
		})

		require.NoError(t, err)
		assert.Nil(t, resp.MechanicID)
		assert.Nil(t, resp.AssignedDate)
	})
}

func TestExecute_PriceEstimate(t *testing.T) {
	t.Run("derived from service types", func(t *testing.T) {
		uc := newTestUseCase(&mechanicRepoMock{mechanic: testMechanic()}, &requestRepoMock{}, &bikeRepoMock{}, nil)

		resp, err := uc.Execute(context.Background(), &Request{
			OwnerEmail:   "customer@example.com",
			MechanicID:   ptr.Ptr(int64(1)),
			DeferredBike: true,
			ServiceTypes: []domain.ServiceType{domain.ServiceTypeServis, domain.ServiceTypeOdpruzeni},
		})

		require.NoError(t, err)
		assert.Equal(t, 1000.0, resp.PriceEstimate)
	})

	t.Run("explicit estimate wins", func(t *testing.T) {
		uc := newTestUseCase(&mechanicRepoMock{mechanic: testMechanic()}, &requestRepoMock{}, &bikeRepoMock{}, nil)

		resp, err := uc.Execute(context.Background(), &Request{
			OwnerEmail:    "customer@example.com",
			MechanicID:    ptr.Ptr(int64(1)),
			DeferredBike:  true,
			ServiceTypes:  []domain.ServiceType{domain.ServiceTypeServis},
			PriceEstimate: ptr.Ptr(1234.0),
		})

		require.NoError(t, err)
		assert.Equal(t, 1234.0, resp.PriceEstimate)
	})

	t.Run("duplicate types counted once", func(t *testing.T) {
		uc := newTestUseCase(&mechanicRepoMock{mechanic: testMechanic()}, &requestRepoMock{}, &bikeRepoMock{}, nil)

		resp, err := uc.Execute(context.Background(), &Request{
			OwnerEmail:   "customer@example.com",
			MechanicID:   ptr.Ptr(int64(1)),
			DeferredBike: true,
			ServiceTypes: []domain.ServiceType{
				domain.ServiceTypeServis,
				domain.ServiceTypeServis,
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 500.0, resp.PriceEstimate)
		assert.Equal(t, []domain.ServiceType{domain.ServiceTypeServis}, resp.ServiceTypes)
	})
}

func TestExecute_SendsNotification(t *testing.T) {
	notifier := newNotifierMock()
	uc := newTestUseCase(&mechanicRepoMock{mechanic: testMechanic()}, &requestRepoMock{}, &bikeRepoMock{}, notifier)

	resp, err := uc.Execute(context.Background(), &Request{
		OwnerEmail:   "customer@example.com",
		DeferredBike: true,
		MechanicID:   ptr.Ptr(int64(1)),
		ServiceTypes: []domain.ServiceType{domain.ServiceTypeServis},
	})
	require.NoError(t, err)

	select {
	case n := <-notifier.sent:
		assert.Equal(t, "customer@example.com", n.To)
		assert.Equal(t, resp.ID.String(), n.RequestID)
		assert.Equal(t, []string{"servis"}, n.ServiceTypes)
	case <-time.After(time.Second):
		t.Fatal("notification was not sent")
	}
}

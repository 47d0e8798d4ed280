package create_request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/veloservis/BikeShop-Service/internal/domain"
	bikeRepo "github.com/veloservis/BikeShop-Service/internal/infra/storage/bike"
	mechanicRepo "github.com/veloservis/BikeShop-Service/internal/infra/storage/mechanic"
	requestRepo "github.com/veloservis/BikeShop-Service/internal/infra/storage/request"
	"github.com/veloservis/BikeShop-Service/internal/integrations/mailer"
)

// Сколько раз повторяем подбор слота, если подтверждение назначения
// столкнулось с конкурирующей заявкой
const maxAssignAttempts = 2

// UseCase use case создания заявки на обслуживание.
// Здесь живет алгоритм назначения слота механика: проверка навыков,
// вычисление свободных слотов и выбор момента (желаемый или первый свободный).
type UseCase struct {
	mechanicRepo MechanicRepository
	requestRepo  RequestRepository
	bikeRepo     BikeRepository
	txManager    TransactionManager
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	mechanicRepo MechanicRepository,
	requestRepo RequestRepository,
	bikeRepo BikeRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		mechanicRepo: mechanicRepo,
		requestRepo:  requestRepo,
		bikeRepo:     bikeRepo,
		txManager:    txManager,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания заявки.
// Проверка занятости слота и запись заявки выполняются в одной сериализуемой
// транзакции; конкурирующее двойное бронирование дополнительно отсекается
// уникальным индексом (mechanic_id, assigned_date) на стороне БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Нормализация и валидация входных данных
	normalizeRequest(req)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateRequest: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateRequest: owner=%s, mechanic=%v, types=%v, firstAvailable=%v",
		req.OwnerEmail, req.MechanicID, req.ServiceTypes, req.FirstAvailable)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем велосипед: он должен существовать, быть не удаленным
	// и принадлежать владельцу заявки
	if req.BikeID != nil {
		if _, err := uc.bikeRepo.GetByIDForOwner(ctx, *req.BikeID, req.OwnerEmail); err != nil {
			if errors.Is(err, bikeRepo.ErrBikeNotFound) {
				uc.logger.Warn("CreateRequest: bike id=%d invalid for owner=%s", *req.BikeID, req.OwnerEmail)
				return nil, ErrBikeInvalid
			}
			uc.logger.Error("CreateRequest: failed to get bike id=%d: %v", *req.BikeID, err)
			return nil, fmt.Errorf("%w: failed to get bike: %v", ErrInternal, err)
		}
	}

	// 4. Оценка цены: явная от клиента либо выведенная из типов услуг
	estimate := estimatePrice(req.ServiceTypes)
	if req.PriceEstimate != nil {
		estimate = *req.PriceEstimate
	}

	// 5. Подбор слота и запись заявки. При конфликте назначения с конкурирующей
	// заявкой подбор повторяется один раз на свежих данных.
	var result *domain.ServiceRequest

	for attempt := 0; attempt < maxAssignAttempts; attempt++ {
		created, err := uc.tryCreate(ctx, req, now, estimate)
		if err == nil {
			result = created
			break
		}

		if errors.Is(err, requestRepo.ErrAssignedDateConflict) {
			// Желаемый момент перехватила конкурирующая заявка
			if req.PreferredDate != nil {
				uc.logger.Warn("CreateRequest: preferred slot lost to concurrent request, mechanic=%d", *req.MechanicID)
				return nil, ErrSlotTaken
			}
			// Автоназначение: повторяем подбор по оставшимся слотам
			if attempt+1 < maxAssignAttempts {
				uc.logger.Warn("CreateRequest: first-available slot lost to concurrent request, retrying, mechanic=%d", *req.MechanicID)
				continue
			}
			uc.logger.Warn("CreateRequest: slot conflict persisted after retry, mechanic=%d", *req.MechanicID)
			return nil, ErrSlotTaken
		}

		return nil, err
	}

	uc.logger.Info("CreateRequest: successfully created request id=%s, assignedDate=%v",
		result.PublicID, result.AssignedDate)

	// 6. Уведомление отправляется как побочный эффект fire-and-forget: ошибки доставки
	// логируются и не влияют на результат операции
	uc.sendNotification(result)

	return toResponse(result), nil
}

// tryCreate выполняет одну попытку подбора слота и записи заявки
// в сериализуемой транзакции
func (uc *UseCase) tryCreate(ctx context.Context, req *Request, now time.Time, estimate float64) (*domain.ServiceRequest, error) {
	var result *domain.ServiceRequest

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var assignedDate *time.Time

		if req.MechanicID != nil {
			// 5.1. Резолвим механика; отсутствующий или неактивный не подходит
			mechanic, err := uc.mechanicRepo.GetByID(txCtx, *req.MechanicID)
			if err != nil {
				if errors.Is(err, mechanicRepo.ErrMechanicNotFound) {
					uc.logger.Warn("CreateRequest: mechanic id=%d not found", *req.MechanicID)
					return ErrMechanicInvalid
				}
				uc.logger.Error("CreateRequest: failed to get mechanic id=%d: %v", *req.MechanicID, err)
				return fmt.Errorf("%w: failed to get mechanic: %v", ErrInternal, err)
			}
			if !mechanic.Active {
				uc.logger.Warn("CreateRequest: mechanic id=%d is inactive", *req.MechanicID)
				return ErrMechanicInvalid
			}

			// 5.2. Проверяем покрытие запрошенных типов услуг навыками механика
			if len(req.ServiceTypes) > 0 {
				if missing := mechanic.MissingSkills(req.ServiceTypes); len(missing) > 0 {
					uc.logger.Warn("CreateRequest: mechanic id=%d lacks skills %v", *req.MechanicID, missing)
					return &SkillMismatchError{Missing: missing}
				}
			}

			// 5.3. Занятые моменты механика, с блокировкой внутри транзакции
			occupied, err := uc.requestRepo.GetAssignedDates(txCtx, *req.MechanicID, now)
			if err != nil {
				uc.logger.Error("CreateRequest: failed to get assigned dates for mechanic id=%d: %v", *req.MechanicID, err)
				return fmt.Errorf("%w: failed to get assigned dates: %v", ErrInternal, err)
			}

			// 5.4. Выбор момента: желаемый, первый свободный или без привязки
			assignedDate, err = resolveSlot(mechanic, occupied, req.PreferredDate, req.FirstAvailable, now)
			if err != nil {
				uc.logger.Warn("CreateRequest: slot resolution failed for mechanic id=%d: %v", *req.MechanicID, err)
				return err
			}
		}

		// 5.5. Собираем заявку с первым событием журнала
		serviceRequest := &domain.ServiceRequest{
			PublicID:       uuid.New(),
			OwnerEmail:     req.OwnerEmail,
			MechanicID:     req.MechanicID,
			ServiceTypes:   req.ServiceTypes,
			BikeID:         req.BikeID,
			DeferredBike:   req.DeferredBike,
			Status:         domain.StatusNew,
			PreferredDate:  req.PreferredDate,
			FirstAvailable: req.FirstAvailable,
			AssignedDate:   assignedDate,
			PriceEstimate:  estimate,
			Events: []domain.RequestEvent{
				{
					At:   now,
					Type: domain.EventTypeCreated,
					To:   domain.StatusNew,
					Note: req.Note,
					By:   req.OwnerEmail,
				},
			},
		}

		// 5.6. Сохраняем заявку; уникальный индекс БД отсекает двойное бронирование
		created, err := uc.requestRepo.Create(txCtx, serviceRequest)
		if err != nil {
			if errors.Is(err, requestRepo.ErrAssignedDateConflict) {
				return err
			}
			uc.logger.Error("CreateRequest: failed to create request: %v", err)
			return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// sendNotification отправляет уведомление о создании заявки, не блокируя ответ
func (uc *UseCase) sendNotification(req *domain.ServiceRequest) {
	notification := mailer.RequestCreatedNotification{
		To:            req.OwnerEmail,
		RequestID:     req.PublicID.String(),
		ServiceTypes:  serviceTypesToStrings(req.ServiceTypes),
		AssignedDate:  req.AssignedDate,
		PriceEstimate: req.PriceEstimate,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := uc.notifier.SendRequestCreated(ctx, notification); err != nil {
			uc.logger.Error("CreateRequest: failed to send notification for request id=%s: %v",
				req.PublicID, err)
		}
	}()
}

func serviceTypesToStrings(types []domain.ServiceType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

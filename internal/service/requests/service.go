package requests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/veloservis/BikeShop-Service/internal/domain"
	requestRepo "github.com/veloservis/BikeShop-Service/internal/infra/storage/request"
	"github.com/veloservis/BikeShop-Service/internal/integrations/mailer"
	"github.com/veloservis/BikeShop-Service/internal/service/requests/models"
)

// Service жизненный цикл заявки: чтение, смена статуса с ведением
// append-only журнала и удаление по инициативе владельца.
type Service struct {
	requestRepo  RequestRepository
	txManager    TransactionManager
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	requestRepo RequestRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		requestRepo:  requestRepo,
		txManager:    txManager,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает заявку вместе с журналом событий.
// Доступ только у владельца; чужая заявка выглядит как несуществующая.
func (s *Service) GetByID(ctx context.Context, publicID uuid.UUID, ownerEmail string) (*models.RequestResponse, error) {
	ownerEmail = normalizeEmail(ownerEmail)
	s.logger.Info("GetByID: fetching request id=%s for owner=%s", publicID, ownerEmail)

	req, err := s.requestRepo.GetByPublicIDForOwner(ctx, publicID, ownerEmail)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("GetByID: request id=%s not found for owner=%s", publicID, ownerEmail)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("GetByID: repository error for request id=%s: %v", publicID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRequest(req), nil
}

// GetUserRequests получает заявки пользователя, опционально фильтруя по статусу
func (s *Service) GetUserRequests(ctx context.Context, req *models.GetUserRequestsRequest) (*models.RequestListResponse, error) {
	req.OwnerEmail = normalizeEmail(req.OwnerEmail)
	s.logger.Info("GetUserRequests: owner=%s, status=%v", req.OwnerEmail, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetUserRequests: invalid status filter for owner=%s", req.OwnerEmail)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	requests, err := s.requestRepo.GetByOwner(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserRequests: repository error for owner=%s: %v", req.OwnerEmail, err)
		return nil, fmt.Errorf("%w: GetUserRequests - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserRequests: fetched %d requests for owner=%s", len(requests), req.OwnerEmail)
	return models.FromDomainRequestList(requests), nil
}

// UpdateStatus меняет статус заявки и дописывает событие status_change в журнал.
// Обе записи выполняются в одной транзакции: либо статус и событие записаны
// вместе, либо не записано ничего.
//
// Граф переходов намеренно не навязывается: допускается запись любого статуса
// из перечня, история изменений восстанавливается по журналу.
func (s *Service) UpdateStatus(ctx context.Context, publicID uuid.UUID, req *models.UpdateStatusRequest) (*models.RequestResponse, error) {
	req.OwnerEmail = normalizeEmail(req.OwnerEmail)
	s.logger.Info("UpdateStatus: request id=%s to status=%s by owner=%s", publicID, req.Status, req.OwnerEmail)

	newStatus, err := models.ToDomainRequestStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for request id=%s", req.Status, publicID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var updated *domain.ServiceRequest
	var oldStatus domain.RequestStatus

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Владение проверяется тем же запросом, что и существование:
		// чужая заявка дает тот же ErrRequestNotFound
		current, err := s.requestRepo.GetByPublicIDForOwner(txCtx, publicID, req.OwnerEmail)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		oldStatus = current.Status

		if err := s.requestRepo.UpdateStatus(txCtx, current.ID, newStatus); err != nil {
			return fmt.Errorf("%w: UpdateStatus - update error: %v", ErrInternal, err)
		}

		from := oldStatus
		event := domain.RequestEvent{
			RequestID: current.ID,
			At:        s.timeProvider.Now(),
			Type:      domain.EventTypeStatusChange,
			From:      &from,
			To:        newStatus,
			Note:      req.Note,
			By:        req.OwnerEmail,
		}
		if err := s.requestRepo.AppendEvent(txCtx, &event); err != nil {
			return fmt.Errorf("%w: UpdateStatus - append event error: %v", ErrInternal, err)
		}

		current.Status = newStatus
		current.Events = append(current.Events, event)
		updated = current
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			s.logger.Warn("UpdateStatus: request id=%s not found for owner=%s", publicID, req.OwnerEmail)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("UpdateStatus: failed for request id=%s: %v", publicID, err)
		return nil, err
	}

	s.logger.Info("UpdateStatus: request id=%s moved %s -> %s", publicID, oldStatus, newStatus)

	// Уведомление fire-and-forget: ошибки доставки не влияют на результат
	s.sendStatusNotification(updated, oldStatus, newStatus)

	return models.FromDomainRequest(updated), nil
}

// Delete физически удаляет заявку владельца вместе с журналом
func (s *Service) Delete(ctx context.Context, publicID uuid.UUID, ownerEmail string) error {
	ownerEmail = normalizeEmail(ownerEmail)
	s.logger.Info("Delete: request id=%s by owner=%s", publicID, ownerEmail)

	req, err := s.requestRepo.GetByPublicIDForOwner(ctx, publicID, ownerEmail)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("Delete: request id=%s not found for owner=%s", publicID, ownerEmail)
			return ErrRequestNotFound
		}
		s.logger.Error("Delete: repository error for request id=%s: %v", publicID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.requestRepo.Delete(ctx, req.ID); err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			return ErrRequestNotFound
		}
		s.logger.Error("Delete: failed to delete request id=%s: %v", publicID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: request id=%s deleted", publicID)
	return nil
}

func (s *Service) sendStatusNotification(req *domain.ServiceRequest, from, to domain.RequestStatus) {
	notification := mailer.StatusChangedNotification{
		To:        req.OwnerEmail,
		RequestID: req.PublicID.String(),
		OldStatus: string(from),
		NewStatus: string(to),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.notifier.SendStatusChanged(ctx, notification); err != nil {
			s.logger.Error("UpdateStatus: failed to send notification for request id=%s: %v",
				req.PublicID, err)
		}
	}()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package mechanics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/veloservis/BikeShop-Service/internal/domain"
	mechanicRepo "github.com/veloservis/BikeShop-Service/internal/infra/storage/mechanic"
	"github.com/veloservis/BikeShop-Service/internal/service/mechanics/models"
)

// Service управление профилем механика: апгрейд пользователя, навыки
// и заявленные слоты доступности.
type Service struct {
	mechanicRepo MechanicRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса механиков
func NewService(mechanicRepo MechanicRepository, logger Logger) *Service {
	return &Service{
		mechanicRepo: mechanicRepo,
		logger:       logger,
	}
}

// Upgrade создает профиль механика для пользователя
func (s *Service) Upgrade(ctx context.Context, email string, skills []string) (*models.MechanicResponse, error) {
	email = normalizeEmail(email)
	s.logger.Info("Upgrade: creating mechanic profile for user=%s, skills=%v", email, skills)

	domainSkills, err := models.ToDomainServiceTypes(skills)
	if err != nil {
		s.logger.Warn("Upgrade: invalid skills %v for user=%s", skills, email)
		return nil, fmt.Errorf("%w: invalid skills", ErrInvalidInput)
	}

	mechanic := &domain.Mechanic{
		UserEmail: email,
		Skills:    domainSkills,
		Active:    true,
	}

	created, err := s.mechanicRepo.Create(ctx, mechanic)
	if err != nil {
		if errors.Is(err, mechanicRepo.ErrMechanicExists) {
			s.logger.Warn("Upgrade: user=%s is already a mechanic", email)
			return nil, ErrAlreadyMechanic
		}
		s.logger.Error("Upgrade: repository error for user=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Upgrade - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upgrade: mechanic id=%d created for user=%s", created.ID, email)
	return models.FromDomainMechanic(created), nil
}

// GetProfile получает профиль механика текущего пользователя
func (s *Service) GetProfile(ctx context.Context, email string) (*models.MechanicResponse, error) {
	email = normalizeEmail(email)

	mechanic, err := s.getByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return models.FromDomainMechanic(mechanic), nil
}

// AddSlot добавляет заявленный слот механика.
// Операция идемпотентна: повторная заявка того же момента оставляет
// слот в единственном экземпляре.
func (s *Service) AddSlot(ctx context.Context, email string, at time.Time) error {
	email = normalizeEmail(email)

	if at.IsZero() {
		return fmt.Errorf("%w: slot time is required", ErrInvalidInput)
	}

	mechanic, err := s.getByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.mechanicRepo.AddSlot(ctx, mechanic.ID, at.UTC()); err != nil {
		s.logger.Error("AddSlot: repository error for mechanic id=%d: %v", mechanic.ID, err)
		return fmt.Errorf("%w: AddSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddSlot: mechanic id=%d declared slot %s", mechanic.ID, at.UTC().Format(time.RFC3339))
	return nil
}

// RemoveSlot удаляет заявленный слот по точному моменту.
// Удаление отсутствующего момента ошибкой не считается.
func (s *Service) RemoveSlot(ctx context.Context, email string, at time.Time) error {
	email = normalizeEmail(email)

	if at.IsZero() {
		return fmt.Errorf("%w: slot time is required", ErrInvalidInput)
	}

	mechanic, err := s.getByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.mechanicRepo.RemoveSlot(ctx, mechanic.ID, at.UTC()); err != nil {
		s.logger.Error("RemoveSlot: repository error for mechanic id=%d: %v", mechanic.ID, err)
		return fmt.Errorf("%w: RemoveSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveSlot: mechanic id=%d removed slot %s", mechanic.ID, at.UTC().Format(time.RFC3339))
	return nil
}

// UpdateSkills заменяет набор навыков механика
func (s *Service) UpdateSkills(ctx context.Context, email string, skills []string) (*models.MechanicResponse, error) {
	email = normalizeEmail(email)

	domainSkills, err := models.ToDomainServiceTypes(skills)
	if err != nil {
		s.logger.Warn("UpdateSkills: invalid skills %v for user=%s", skills, email)
		return nil, fmt.Errorf("%w: invalid skills", ErrInvalidInput)
	}

	mechanic, err := s.getByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := s.mechanicRepo.UpdateSkills(ctx, mechanic.ID, domainSkills); err != nil {
		s.logger.Error("UpdateSkills: repository error for mechanic id=%d: %v", mechanic.ID, err)
		return nil, fmt.Errorf("%w: UpdateSkills - repository error: %v", ErrInternal, err)
	}

	mechanic.Skills = domainSkills
	s.logger.Info("UpdateSkills: mechanic id=%d skills updated to %v", mechanic.ID, skills)
	return models.FromDomainMechanic(mechanic), nil
}

func (s *Service) getByEmail(ctx context.Context, email string) (*domain.Mechanic, error) {
	mechanic, err := s.mechanicRepo.GetByUserEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mechanicRepo.ErrMechanicNotFound) {
			s.logger.Warn("mechanics: user=%s has no mechanic profile", email)
			return nil, ErrNotMechanic
		}
		s.logger.Error("mechanics: repository error for user=%s: %v", email, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return mechanic, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

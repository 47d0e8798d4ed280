package bikes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/veloservis/BikeShop-Service/internal/domain"
	bikeRepo "github.com/veloservis/BikeShop-Service/internal/infra/storage/bike"
	"github.com/veloservis/BikeShop-Service/internal/service/bikes/models"
)

// Service регистрация и учет велосипедов клиентов
type Service struct {
	bikeRepo BikeRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса велосипедов
func NewService(bikeRepo BikeRepository, logger Logger) *Service {
	return &Service{
		bikeRepo: bikeRepo,
		logger:   logger,
	}
}

// Create регистрирует велосипед с проверкой лимита на владельца
func (s *Service) Create(ctx context.Context, req *models.CreateBikeRequest) (*models.BikeResponse, error) {
	req.OwnerEmail = normalizeEmail(req.OwnerEmail)
	s.logger.Info("Create: registering bike for owner=%s, brand=%s, model=%s", req.OwnerEmail, req.Brand, req.Model)

	if req.Brand == "" || req.Model == "" {
		s.logger.Warn("Create: missing brand or model for owner=%s", req.OwnerEmail)
		return nil, fmt.Errorf("%w: brand and model are required", ErrInvalidInput)
	}

	count, err := s.bikeRepo.CountLiveByOwner(ctx, req.OwnerEmail)
	if err != nil {
		s.logger.Error("Create: failed to count bikes for owner=%s: %v", req.OwnerEmail, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}
	if count >= domain.MaxBikesPerOwner {
		s.logger.Warn("Create: owner=%s reached bike limit (%d)", req.OwnerEmail, domain.MaxBikesPerOwner)
		return nil, ErrMaxBikesReached
	}

	bike := &domain.Bike{
		OwnerEmail:   req.OwnerEmail,
		Brand:        req.Brand,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
	}

	created, err := s.bikeRepo.Create(ctx, bike)
	if err != nil {
		s.logger.Error("Create: repository error for owner=%s: %v", req.OwnerEmail, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: bike id=%d registered for owner=%s", created.ID, req.OwnerEmail)
	return models.FromDomainBike(created), nil
}

// GetUserBikes получает живые велосипеды пользователя
func (s *Service) GetUserBikes(ctx context.Context, ownerEmail string) (*models.BikeListResponse, error) {
	ownerEmail = normalizeEmail(ownerEmail)

	bikes, err := s.bikeRepo.GetByOwner(ctx, ownerEmail)
	if err != nil {
		s.logger.Error("GetUserBikes: repository error for owner=%s: %v", ownerEmail, err)
		return nil, fmt.Errorf("%w: GetUserBikes - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBikeList(bikes), nil
}

// Delete мягко удаляет велосипед владельца
func (s *Service) Delete(ctx context.Context, id int64, ownerEmail string) error {
	ownerEmail = normalizeEmail(ownerEmail)
	s.logger.Info("Delete: bike id=%d by owner=%s", id, ownerEmail)

	if err := s.bikeRepo.Delete(ctx, id, ownerEmail); err != nil {
		if errors.Is(err, bikeRepo.ErrBikeNotFound) {
			s.logger.Warn("Delete: bike id=%d not found for owner=%s", id, ownerEmail)
			return ErrBikeNotFound
		}
		s.logger.Error("Delete: repository error for bike id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

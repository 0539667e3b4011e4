package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/FloatBookingService/internal/domain"
	configRepo "github.com/m04kA/FloatBookingService/internal/infra/storage/schedulingconfig"
	"github.com/m04kA/FloatBookingService/internal/service/config/models"
)

// Service сервис для работы с настройками расписания локаций
type Service struct {
	configRepo ConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(configRepo ConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// Get получает настройки локации
// Если настройки не сохранены, возвращаются значения по умолчанию
func (s *Service) Get(ctx context.Context, locationID string) (*models.ConfigResponse, error) {
	s.logger.Info("Get: fetching scheduling config for location=%s", locationID)

	cfg, isDefault, err := s.load(ctx, "Get", locationID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainConfig(cfg, isDefault), nil
}

// Update обновляет настройки локации
// Поддерживает частичное обновление - обновляются только указанные поля
func (s *Service) Update(ctx context.Context, locationID string, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating scheduling config for location=%s by staff=%s", locationID, req.StaffID)

	if req.SlotGranularityMinutes == nil && req.AdvanceBookingDays == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	cfg, _, err := s.load(ctx, "Update", locationID)
	if err != nil {
		return nil, err
	}

	if req.SlotGranularityMinutes != nil {
		cfg.SlotGranularityMinutes = *req.SlotGranularityMinutes
	}
	if req.AdvanceBookingDays != nil {
		cfg.AdvanceBookingDays = *req.AdvanceBookingDays
	}

	if err := cfg.Validate(); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.configRepo.Upsert(ctx, cfg)
	if err != nil {
		s.logger.Error("Update: repository error for location=%s: %v", locationID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: scheduling config for location=%s saved (granularity=%d, advanceDays=%d)",
		locationID, saved.SlotGranularityMinutes, saved.AdvanceBookingDays)
	return models.FromDomainConfig(saved, false), nil
}

func (s *Service) load(ctx context.Context, op, locationID string) (*domain.LocationSchedulingConfig, bool, error) {
	if strings.TrimSpace(locationID) == "" {
		return nil, false, fmt.Errorf("%w: locationId is required", ErrInvalidInput)
	}

	cfg, err := s.configRepo.Get(ctx, locationID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return domain.DefaultSchedulingConfig(locationID), true, nil
		}
		s.logger.Error("%s: repository error for location=%s: %v", op, locationID, err)
		return nil, false, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return cfg, false, nil
}

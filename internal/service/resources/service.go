package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-ReservationService/internal/service/resources/models"
)

// Service сервис каталога ресурсов
type Service struct {
	resourceRepo ResourceRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(resourceRepo ResourceRepository, logger Logger) *Service {
	return &Service{
		resourceRepo: resourceRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// ListAvailable возвращает ресурсы, доступные для бронирования
func (s *Service) ListAvailable(ctx context.Context) (*models.ResourceListResponse, error) {
	return s.list(ctx, true)
}

// ListAll возвращает весь каталог, включая ресурсы на обслуживании и выведенные из эксплуатации
func (s *Service) ListAll(ctx context.Context) (*models.ResourceListResponse, error) {
	return s.list(ctx, false)
}

func (s *Service) list(ctx context.Context, onlyAvailable bool) (*models.ResourceListResponse, error) {
	list, err := s.resourceRepo.List(ctx, onlyAvailable)
	if err != nil {
		s.logger.Error("ListResources: repository error (onlyAvailable=%t): %v", onlyAvailable, err)
		return nil, fmt.Errorf("%w: ListResources - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListResources: fetched %d resources (onlyAvailable=%t)", len(list), onlyAvailable)
	return models.FromDomainResourceList(list), nil
}

// Get возвращает ресурс по ID
func (s *Service) Get(ctx context.Context, id int64) (*models.ResourceResponse, error) {
	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("GetResource: resource id=%d not found", id)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("GetResource: repository error for resource id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetResource - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainResource(resource), nil
}

// Create добавляет ресурс в каталог в статусе available
func (s *Service) Create(ctx context.Context, req *models.CreateResourceRequest) (*models.ResourceResponse, error) {
	name := strings.TrimSpace(req.Name)
	category := strings.TrimSpace(req.Category)

	if name == "" || utf8.RuneCountInString(name) > domain.MaxResourceNameLength {
		return nil, fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxResourceNameLength)
	}
	if category == "" || utf8.RuneCountInString(category) > domain.MaxResourceCategoryLength {
		return nil, fmt.Errorf("%w: category must be 1..%d characters", ErrInvalidInput, domain.MaxResourceCategoryLength)
	}
	if req.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}

	now := s.timeProvider.Now().UTC()
	created, err := s.resourceRepo.Create(ctx, &domain.Resource{
		Name:              name,
		Category:          category,
		Capacity:          req.Capacity,
		OperationalStatus: domain.ResourceAvailable,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		if errors.Is(err, resourceRepo.ErrDuplicateName) {
			s.logger.Warn("CreateResource: name=%q already exists", name)
			return nil, ErrDuplicateName
		}
		s.logger.Error("CreateResource: repository error for name=%q: %v", name, err)
		return nil, fmt.Errorf("%w: CreateResource - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateResource: created resource id=%d, name=%q", created.ID, created.Name)
	return models.FromDomainResource(created), nil
}

// SetOperationalStatus переводит ресурс в указанный эксплуатационный статус
// Существующие бронирования не затрагиваются, новые на ресурс вне available не принимаются
func (s *Service) SetOperationalStatus(ctx context.Context, id int64, req *models.SetStatusRequest) (*models.ResourceResponse, error) {
	status, err := domain.ParseOperationalStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.resourceRepo.UpdateStatus(ctx, id, status, s.timeProvider.Now().UTC()); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("SetOperationalStatus: resource id=%d not found", id)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("SetOperationalStatus: repository error for resource id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: SetOperationalStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetOperationalStatus: resource id=%d is now %s", id, status)
	return s.Get(ctx, id)
}

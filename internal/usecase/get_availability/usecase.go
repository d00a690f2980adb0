package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
)

// UseCase use case для получения доступности ресурса
// Результат вычисляется из хранилища при каждом вызове и не кэшируется
type UseCase struct {
	resourceRepo ResourceRepository
	bookingRepo  BookingRepository
	slots        domain.SlotConfig
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resourceRepo ResourceRepository,
	bookingRepo BookingRepository,
	slots domain.SlotConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		resourceRepo: resourceRepo,
		bookingRepo:  bookingRepo,
		slots:        slots,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	resource, err := uc.resourceRepo.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("GetAvailability: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.ListOccupying(ctx, req.ResourceID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list bookings for resource id=%d, date=%s: %v",
			req.ResourceID, req.Date, err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	availability := domain.ComputeAvailability(uc.slots, resource, req.Date, bookings)

	resp := &Response{
		ResourceID:        resource.ID,
		Date:              req.Date,
		OperationalStatus: string(resource.OperationalStatus),
		Free:              availability.Free,
		Occupied:          availability.Occupied,
		Slots:             make([]Slot, 0, uc.slots.Count()),
	}
	for s := range domain.SlotsForDay(uc.slots, req.Date) {
		resp.Slots = append(resp.Slots, Slot{
			Index: s.Index,
			Label: domain.SlotLabel(uc.slots, s),
			Free:  availability.IsFree(s.Index),
		})
	}

	uc.logger.Info("GetAvailability: resource id=%d, date=%s, free=%d, occupied=%d",
		req.ResourceID, req.Date, len(resp.Free), len(resp.Occupied))
	return resp, nil
}

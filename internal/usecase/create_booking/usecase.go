package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notification"
)

// Исходы попытки бронирования для метрик
const (
	outcomeCreated     = "created"
	outcomeConflict    = "conflict"
	outcomeUnavailable = "unavailable"
	outcomeInvalid     = "invalid"
	outcomeError       = "error"
)

// UseCase use case для создания бронирования
type UseCase struct {
	resourceRepo ResourceRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	slots        domain.SlotConfig
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	resourceRepo ResourceRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	slots domain.SlotConfig,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		resourceRepo: resourceRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		slots:        slots,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Проверка занятости и запись выполняются атомарно уникальным индексом хранилища:
// из конкурирующих запросов на один слот успешен ровно один, остальные получают ErrSlotAlreadyTaken
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: requester=%s, resource=%d, date=%s, slot=%d",
		req.RequesterID, req.ResourceID, req.Date, req.SlotIndex)

	result, err := uc.execute(ctx, req)
	uc.metrics.BookingAttempt(outcomeOf(err))
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, status=%s", result.ID, result.Status)

	if err := uc.notifier.Dispatch(notification.FromBooking(result, uc.slots, result.CreatedAt)); err != nil {
		uc.logger.Warn("CreateBooking: notification for booking id=%s not queued: %v", result.ID, err)
	}

	return &Response{
		Booking:   result,
		SlotLabel: domain.SlotLabel(uc.slots, result.Slot()),
	}, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req, uc.slots, uc.opts.MaxPurposeLength); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем дату и время слота относительно текущего момента
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, uc.slots.Today(now), uc.opts.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	slot := domain.Slot{Date: req.Date, Index: req.SlotIndex}
	if err := validateSlotNotStarted(slot, uc.slots, now); err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
		return nil, err
	}

	status := domain.StatusPending
	if uc.opts.AutoApprove {
		status = domain.StatusApproved
	}

	booking := &domain.Booking{
		ID:          uuid.NewString(),
		ResourceID:  req.ResourceID,
		Date:        req.Date,
		SlotIndex:   req.SlotIndex,
		RequesterID: req.RequesterID,
		Purpose:     strings.TrimSpace(req.Purpose),
		Status:      status,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}

	// 3. Проверка ресурса, вставка и запись истории в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		resource, err := uc.resourceRepo.GetByID(txCtx, req.ResourceID)
		if err != nil {
			if errors.Is(err, resourceRepo.ErrResourceNotFound) {
				uc.logger.Warn("CreateBooking: resource id=%d not found", req.ResourceID)
				return ErrResourceNotFound
			}
			uc.logger.Error("CreateBooking: failed to get resource id=%d: %v", req.ResourceID, err)
			return fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
		}

		if !resource.IsBookable() {
			uc.logger.Warn("CreateBooking: resource id=%d is %s", resource.ID, resource.OperationalStatus)
			return fmt.Errorf("%w: resource is %s", ErrResourceUnavailable, resource.OperationalStatus)
		}

		if err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %d of resource id=%d on %s is already taken",
					req.SlotIndex, req.ResourceID, req.Date)
				return ErrSlotAlreadyTaken
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		if err := uc.bookingRepo.AppendEvent(txCtx, &domain.StatusEvent{
			BookingID: booking.ID,
			ToStatus:  booking.Status,
			ActorID:   booking.RequesterID,
			CreatedAt: booking.CreatedAt,
		}); err != nil {
			uc.logger.Error("CreateBooking: failed to append status event: %v", err)
			return fmt.Errorf("%w: failed to append status event: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeCreated
	case errors.Is(err, ErrSlotAlreadyTaken):
		return outcomeConflict
	case errors.Is(err, ErrResourceUnavailable), errors.Is(err, ErrResourceNotFound):
		return outcomeUnavailable
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidSlot), errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrDateTooFarInFuture), errors.Is(err, ErrSlotAlreadyStarted):
		return outcomeInvalid
	default:
		return outcomeError
	}
}

package transition_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notification"
)

// Исходы перехода для метрик
const (
	outcomeApplied   = "applied"
	outcomeNoop      = "noop"
	outcomeForbidden = "forbidden"
	outcomeInvalid   = "invalid"
	outcomeConflict  = "conflict"
	outcomeError     = "error"
)

// UseCase use case для смены статуса бронирования
type UseCase struct {
	resourceRepo ResourceRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	slots        domain.SlotConfig
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
	logger Logger,
) *UseCase {
	return &UseCase{
		resourceRepo: resourceRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		slots:        slots,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case смены статуса
// Переход проверяется по статусу строки на момент записи: если статус успел измениться,
// возвращается ErrInvalidTransition и бронирование не меняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionBooking: booking=%s, action=%s, actor=%s (admin=%t, system=%t)",
		req.BookingID, req.Action, req.Actor.ID, req.Actor.IsAdmin, req.Actor.IsSystem)

	action, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("TransitionBooking: validation failed: %v", err)
		uc.metrics.BookingTransition(req.Action, outcomeInvalid)
		return nil, err
	}

	booking, changed, err := uc.apply(ctx, req, action)
	uc.metrics.BookingTransition(string(action), outcomeOf(err, changed))
	if err != nil {
		return nil, err
	}

	if changed {
		uc.logger.Info("TransitionBooking: booking id=%s is now %s", booking.ID, booking.Status)
		if err := uc.notifier.Dispatch(notification.FromBooking(booking, uc.slots, booking.UpdatedAt)); err != nil {
			uc.logger.Warn("TransitionBooking: notification for booking id=%s not queued: %v", booking.ID, err)
		}
	} else {
		uc.logger.Info("TransitionBooking: booking id=%s is already %s", booking.ID, booking.Status)
	}

	return &Response{
		Booking:   booking,
		SlotLabel: domain.SlotLabel(uc.slots, booking.Slot()),
		Changed:   changed,
	}, nil
}

func (uc *UseCase) apply(ctx context.Context, req *Request, action domain.Action) (*domain.Booking, bool, error) {
	var (
		result  *domain.Booking
		changed bool
	)

	reason := normalizeReason(req.Reason)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование (в транзакции строка блокируется)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("TransitionBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("TransitionBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Повторное завершение не является ошибкой
		if action == domain.ActionComplete && booking.Status == domain.StatusCompleted {
			if !req.Actor.CanPerform(action, booking) {
				uc.logger.Warn("TransitionBooking: actor=%s may not %s booking id=%s", req.Actor.ID, action, booking.ID)
				return ErrForbidden
			}
			result = booking
			return nil
		}

		// 3. Проверяем допустимость перехода (до проверки прав)
		to, ok := domain.NextStatus(booking.Status, action)
		if !ok {
			uc.logger.Warn("TransitionBooking: cannot %s booking id=%s in status %s", action, booking.ID, booking.Status)
			return fmt.Errorf("%w: cannot %s a %s booking", ErrInvalidTransition, action, booking.Status)
		}

		// 4. Проверяем права инициатора
		if !req.Actor.CanPerform(action, booking) {
			uc.logger.Warn("TransitionBooking: actor=%s may not %s booking id=%s", req.Actor.ID, action, booking.ID)
			return ErrForbidden
		}

		// 5. Подтверждение повторно проверяет ресурс и единственность удержания слота
		if action == domain.ActionApprove {
			if err := uc.revalidate(txCtx, booking); err != nil {
				return err
			}
		}

		// 6. Условное обновление по текущему статусу
		var rejectionReason *string
		if to == domain.StatusRejected {
			rejectionReason = reason
		}

		now := uc.timeProvider.Now().UTC()
		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, booking.Status, to, rejectionReason, now); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrStatusChanged):
				uc.logger.Warn("TransitionBooking: booking id=%s changed concurrently", booking.ID)
				return fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
			case errors.Is(err, bookingRepo.ErrSlotTaken):
				return ErrSlotAlreadyTaken
			default:
				uc.logger.Error("TransitionBooking: failed to update booking id=%s: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
			}
		}

		// 7. История статусов
		from := booking.Status
		if err := uc.bookingRepo.AppendEvent(txCtx, &domain.StatusEvent{
			BookingID:  booking.ID,
			FromStatus: &from,
			ToStatus:   to,
			ActorID:    req.Actor.ID,
			Reason:     reason,
			CreatedAt:  now,
		}); err != nil {
			uc.logger.Error("TransitionBooking: failed to append status event: %v", err)
			return fmt.Errorf("%w: failed to append status event: %v", ErrInternal, err)
		}

		booking.Status = to
		booking.UpdatedAt = now
		if rejectionReason != nil {
			booking.RejectionReason = rejectionReason
		}

		result = booking
		changed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return result, changed, nil
}

func (uc *UseCase) revalidate(ctx context.Context, booking *domain.Booking) error {
	resource, err := uc.resourceRepo.GetByID(ctx, booking.ResourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			return fmt.Errorf("%w: resource id=%d not found", ErrResourceUnavailable, booking.ResourceID)
		}
		uc.logger.Error("TransitionBooking: failed to get resource id=%d: %v", booking.ResourceID, err)
		return fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	if !resource.IsBookable() {
		uc.logger.Warn("TransitionBooking: resource id=%d is %s", resource.ID, resource.OperationalStatus)
		return fmt.Errorf("%w: resource is %s", ErrResourceUnavailable, resource.OperationalStatus)
	}

	occupying, err := uc.bookingRepo.ListOccupying(ctx, booking.ResourceID, booking.Date)
	if err != nil {
		uc.logger.Error("TransitionBooking: failed to list bookings: %v", err)
		return fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	for _, other := range occupying {
		if other.SlotIndex == booking.SlotIndex && other.ID != booking.ID {
			uc.logger.Warn("TransitionBooking: slot of booking id=%s is held by booking id=%s", booking.ID, other.ID)
			return ErrSlotAlreadyTaken
		}
	}

	return nil
}

func outcomeOf(err error, changed bool) string {
	switch {
	case err == nil && changed:
		return outcomeApplied
	case err == nil:
		return outcomeNoop
	case errors.Is(err, ErrForbidden):
		return outcomeForbidden
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrBookingNotFound):
		return outcomeInvalid
	case errors.Is(err, ErrSlotAlreadyTaken), errors.Is(err, ErrResourceUnavailable):
		return outcomeConflict
	default:
		return outcomeError
	}
}

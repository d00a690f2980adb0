package complete_expired

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/transition_booking"
)

// UseCase завершает одобренные бронирования, слот которых уже закончился
type UseCase struct {
	bookingRepo  BookingRepository
	transitioner Transitioner
	slots        domain.SlotConfig
	batchSize    int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	transitioner Transitioner,
	slots domain.SlotConfig,
	batchSize int,
	logger Logger,
) *UseCase {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		transitioner: transitioner,
		slots:        slots,
		batchSize:    batchSize,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет один проход
// Бронирования выбираются по (дата, слот, id) с курсором, поэтому проход останавливается
// на первом еще не закончившемся слоте, а неудачные бронирования не блокируют следующие
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()
	today := uc.slots.Today(now)
	resp := &Response{}

	var cursor *domain.BookingCursor
	for {
		batch, err := uc.bookingRepo.ListApprovedUpTo(ctx, today, cursor, uc.batchSize)
		if err != nil {
			uc.logger.Error("CompleteExpired: failed to list approved bookings: %v", err)
			return resp, fmt.Errorf("%w: failed to list approved bookings: %v", ErrInternal, err)
		}

		reachedFuture := false

		for _, b := range batch {
			if _, end := b.Slot().Bounds(uc.slots); end.After(now) {
				reachedFuture = true
				break
			}

			next := b.Cursor()
			cursor = &next

			_, err := uc.transitioner.Execute(ctx, &transition_booking.Request{
				BookingID: b.ID,
				Action:    string(domain.ActionComplete),
				Actor:     domain.SystemActor(),
			})
			if err != nil {
				uc.logger.Warn("CompleteExpired: failed to complete booking id=%s: %v", b.ID, err)
				resp.Failed++
				continue
			}
			resp.Completed++
		}

		// Неудачные бронирования остаются approved и будут повторены следующим проходом
		if reachedFuture || len(batch) < uc.batchSize || ctx.Err() != nil {
			break
		}
	}

	if resp.Completed > 0 || resp.Failed > 0 {
		uc.logger.Info("CompleteExpired: completed=%d, failed=%d", resp.Completed, resp.Failed)
	}

	return resp, nil
}

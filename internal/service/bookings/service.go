package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo  BookingRepository
	resourceRepo ResourceRepository
	slots        domain.SlotConfig
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	resourceRepo ResourceRepository,
	slots domain.SlotConfig,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		slots:        slots,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование, администратор любое
func (s *Service) GetByID(ctx context.Context, id string, actor domain.Actor) (*models.BookingResponse, error) {
	booking, err := s.getVisible(ctx, "GetByID", id, actor)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: fetched booking id=%s for actor=%s", id, actor.ID)
	return models.FromDomainBooking(booking, s.slots), nil
}

// GetRequesterBookings получает бронирования пользователя, опционально с фильтром по статусу
func (s *Service) GetRequesterBookings(ctx context.Context, req *models.GetRequesterBookingsRequest, actor domain.Actor) (*models.BookingListResponse, error) {
	list, err := s.listForRequester(ctx, "GetRequesterBookings", req, actor)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBookingList(list, s.slots), nil
}

// GetHistory возвращает историю статусов бронирования
func (s *Service) GetHistory(ctx context.Context, id string, actor domain.Actor) (*models.HistoryResponse, error) {
	if _, err := s.getVisible(ctx, "GetHistory", id, actor); err != nil {
		return nil, err
	}

	events, err := s.bookingRepo.ListEvents(ctx, id)
	if err != nil {
		s.logger.Error("GetHistory: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetHistory - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHistory(id, events), nil
}

func (s *Service) getVisible(ctx context.Context, op, id string, actor domain.Actor) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !actor.CanView(booking.RequesterID) {
		s.logger.Warn("%s: access denied for actor=%s to booking id=%s", op, actor.ID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

func (s *Service) listForRequester(ctx context.Context, op string, req *models.GetRequesterBookingsRequest, actor domain.Actor) ([]*domain.Booking, error) {
	if req.RequesterID == "" {
		return nil, fmt.Errorf("%w: requester id is required", ErrInvalidInput)
	}

	if !actor.CanView(req.RequesterID) {
		s.logger.Warn("%s: access denied for actor=%s to requester=%s", op, actor.ID, req.RequesterID)
		return nil, ErrAccessDenied
	}

	var status *domain.BookingStatus
	if req.Status != nil {
		st, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("%s: invalid status=%s for requester=%s", op, *req.Status, req.RequesterID)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		status = &st
	}

	list, err := s.bookingRepo.ListByRequester(ctx, req.RequesterID, status)
	if err != nil {
		s.logger.Error("%s: repository error for requester=%s: %v", op, req.RequesterID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d bookings for requester=%s", op, len(list), req.RequesterID)
	return list, nil
}

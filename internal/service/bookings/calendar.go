package bookings

import (
	"context"
	"fmt"

	ics "github.com/arran4/golang-ical"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

const calendarProductID = "-//SMC//Reservation Service//RU"

// RequesterCalendar формирует iCalendar фид бронирований пользователя
// В фид попадают только занимающие слот и завершенные бронирования
func (s *Service) RequesterCalendar(ctx context.Context, requesterID string, actor domain.Actor) ([]byte, error) {
	list, err := s.listForRequester(ctx, "RequesterCalendar", &models.GetRequesterBookingsRequest{RequesterID: requesterID}, actor)
	if err != nil {
		return nil, err
	}

	resources, err := s.resourceRepo.List(ctx, false)
	if err != nil {
		s.logger.Error("RequesterCalendar: failed to list resources: %v", err)
		return nil, fmt.Errorf("%w: RequesterCalendar - failed to list resources: %v", ErrInternal, err)
	}
	names := make(map[int64]string, len(resources))
	for _, r := range resources {
		names[r.ID] = r.Name
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)

	for _, b := range list {
		status, ok := calendarStatus(b.Status)
		if !ok {
			continue
		}

		start, end := b.Slot().Bounds(s.slots)
		name := names[b.ResourceID]
		if name == "" {
			name = fmt.Sprintf("resource #%d", b.ResourceID)
		}

		event := cal.AddEvent(b.ID)
		event.SetDtStampTime(b.UpdatedAt)
		event.SetCreatedTime(b.CreatedAt)
		event.SetModifiedAt(b.UpdatedAt)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("%s: %s", name, b.Purpose))
		event.SetLocation(name)
		event.SetDescription(fmt.Sprintf("status: %s", b.Status))
		event.SetStatus(status)
	}

	s.logger.Info("RequesterCalendar: rendered calendar for requester=%s", requesterID)
	return []byte(cal.Serialize()), nil
}

func calendarStatus(st domain.BookingStatus) (ics.ObjectStatus, bool) {
	switch st {
	case domain.StatusPending:
		return ics.ObjectStatusTentative, true
	case domain.StatusApproved, domain.StatusCompleted:
		return ics.ObjectStatusConfirmed, true
	default:
		return "", false
	}
}

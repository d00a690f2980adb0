package export_schedule

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// UseCase use case выгрузки расписания в xlsx: один лист на ресурс
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

// Execute выполняет выгрузку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExportSchedule: from=%s, to=%s, includeInactive=%t", req.From, req.To, req.IncludeInactive)

	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}
	if req.From.AddDays(MaxRangeDays).Before(req.To) {
		return nil, fmt.Errorf("%w: range must not exceed %d days", ErrInvalidInput, MaxRangeDays)
	}

	resources, err := uc.resourceRepo.List(ctx, false)
	if err != nil {
		uc.logger.Error("ExportSchedule: failed to list resources: %v", err)
		return nil, fmt.Errorf("%w: failed to list resources: %v", ErrInternal, err)
	}

	filter := domain.BookingsFilter{From: &req.From, To: &req.To}
	if !req.IncludeInactive {
		filter.Statuses = []domain.BookingStatus{domain.StatusPending, domain.StatusApproved, domain.StatusCompleted}
	}

	bookings, err := uc.bookingRepo.ListByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("ExportSchedule: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	byResource := make(map[int64][]*domain.Booking, len(resources))
	for _, b := range bookings {
		byResource[b.ResourceID] = append(byResource[b.ResourceID], b)
	}

	content, err := uc.render(resources, byResource)
	if err != nil {
		uc.logger.Error("ExportSchedule: failed to render workbook: %v", err)
		return nil, fmt.Errorf("%w: failed to render workbook: %v", ErrInternal, err)
	}

	uc.logger.Info("ExportSchedule: exported %d bookings of %d resources", len(bookings), len(resources))
	return &Response{
		FileName: fmt.Sprintf("schedule_%s_%s.xlsx", req.From, req.To),
		Content:  content,
		Rows:     len(bookings),
	}, nil
}

func (uc *UseCase) render(resources []*domain.Resource, byResource map[int64][]*domain.Booking) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	if len(resources) == 0 {
		if err := writeSheet(f, defaultSheet, headerStyle, nil, uc.slots); err != nil {
			return nil, err
		}
	}

	for i, r := range resources {
		name := sheetName(r)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}

		if err := writeSheet(f, name, headerStyle, byResource[r.ID], uc.slots); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

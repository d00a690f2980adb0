package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/sqlstate"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var bookingColumns = []string{
	"id",
	"resource_id",
	"booking_date",
	"slot_index",
	"requester_id",
	"purpose",
	"status",
	"rejection_reason",
	"created_at",
	"updated_at",
}

var eventColumns = []string{
	"id",
	"booking_id",
	"from_status",
	"to_status",
	"actor_id",
	"reason",
	"created_at",
}

// Repository репозиторий для работы с бронированиями и историей их статусов
type Repository struct {
	db      DBExecutor
	builder *psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, builder *psqlbuilder.Builder) *Repository {
	return &Repository{db: db, builder: builder}
}

// Create сохраняет новое бронирование
// Проверка занятости слота и вставка выполняются одной операцией: частичный уникальный индекс
// bookings_occupying_slot_uq не пропустит второе занимающее бронирование на тот же слот,
// и конкурирующая вставка получит ErrSlotTaken
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Insert("bookings").
		Columns(
			"id",
			"resource_id",
			"booking_date",
			"slot_index",
			"requester_id",
			"purpose",
			"status",
			"rejection_reason",
			"created_at",
			"updated_at",
		).
		Values(
			booking.ID,
			booking.ResourceID,
			booking.Date,
			booking.SlotIndex,
			booking.RequesterID,
			booking.Purpose,
			booking.Status,
			booking.RejectionReason,
			booking.CreatedAt,
			booking.UpdatedAt,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if sqlstate.IsUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется FOR UPDATE
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.builder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = r.builder.LockForUpdate(selectBuilder)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListOccupying возвращает бронирования ресурса на дату, занимающие слоты (pending, approved)
func (r *Repository) ListOccupying(ctx context.Context, resourceID int64, date types.Date) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"resource_id":  resourceID,
			"booking_date": date,
			"status":       statusStrings(domain.OccupyingStatuses),
		}).
		OrderBy("slot_index ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupying - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupying - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListByRequester получает бронирования пользователя, новые первыми
// Опционально фильтрует по статусу
func (r *Repository) ListByRequester(ctx context.Context, requesterID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.builder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"requester_id": requesterID}).
		OrderBy("booking_date DESC", "slot_index DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRequester - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRequester - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListByFilter получает бронирования по фильтру, упорядоченные по ресурсу, дате и слоту
func (r *Repository) ListByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.builder.Select(bookingColumns...).
		From("bookings").
		OrderBy("resource_id ASC", "booking_date ASC", "slot_index ASC")

	if filter.ResourceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": *filter.ResourceID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.To})
	}
	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListApprovedUpTo возвращает одобренные бронирования с датой не позже date
// в порядке (дата, слот, id), начиная строго после after (nil - с начала)
// Используется воркером завершения прошедших бронирований
func (r *Repository) ListApprovedUpTo(
	ctx context.Context,
	date types.Date,
	after *domain.BookingCursor,
	limit int,
) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.builder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusApproved}).
		Where(squirrel.LtOrEq{"booking_date": date})

	if after != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Gt{"booking_date": after.Date},
			squirrel.And{
				squirrel.Eq{"booking_date": after.Date},
				squirrel.Gt{"slot_index": after.SlotIndex},
			},
			squirrel.And{
				squirrel.Eq{"booking_date": after.Date, "slot_index": after.SlotIndex},
				squirrel.Gt{"id": after.ID},
			},
		})
	}

	query, args, err := selectBuilder.
		OrderBy("booking_date ASC", "slot_index ASC", "id ASC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListApprovedUpTo - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListApprovedUpTo - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus переводит бронирование из статуса from в статус to
// Обновление условное (WHERE status = from): если статус уже изменился, возвращается ErrStatusChanged
// и строка не меняется. Переход в занимающий статус может нарушить уникальный индекс, тогда ErrSlotTaken
func (r *Repository) UpdateStatus(
	ctx context.Context,
	id string,
	from, to domain.BookingStatus,
	rejectionReason *string,
	updatedAt time.Time,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := r.builder.Update("bookings").
		Set("status", to).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id, "status": from})

	if rejectionReason != nil {
		updateBuilder = updateBuilder.Set("rejection_reason", *rejectionReason)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if sqlstate.IsUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

// AppendEvent добавляет запись в историю статусов бронирования
func (r *Repository) AppendEvent(ctx context.Context, event *domain.StatusEvent) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Insert("booking_status_events").
		Columns(
			"booking_id",
			"from_status",
			"to_status",
			"actor_id",
			"reason",
			"created_at",
		).
		Values(
			event.BookingID,
			event.FromStatus,
			event.ToStatus,
			event.ActorID,
			event.Reason,
			event.CreatedAt,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AppendEvent - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&event.ID); err != nil {
		return fmt.Errorf("%w: AppendEvent - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListEvents возвращает историю статусов бронирования в хронологическом порядке
func (r *Repository) ListEvents(ctx context.Context, bookingID string) ([]*domain.StatusEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Select(eventColumns...).
		From("booking_status_events").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListEvents - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEvents - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.StatusEvent, 0)
	for rows.Next() {
		var event domain.StatusEvent
		var createdAt sql.NullTime

		err := rows.Scan(
			&event.ID,
			&event.BookingID,
			&event.FromStatus,
			&event.ToStatus,
			&event.ActorID,
			&event.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListEvents - scan row: %v", ErrScanRow, err)
		}

		event.CreatedAt = createdAt.Time
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListEvents - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ResourceID,
		&booking.Date,
		&booking.SlotIndex,
		&booking.RequesterID,
		&booking.Purpose,
		&booking.Status,
		&booking.RejectionReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// statusStrings конвертирует статусы в строки для условия IN
func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

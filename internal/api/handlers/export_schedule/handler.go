package export_schedule

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	exportSchedule "github.com/m04kA/SMC-ReservationService/internal/usecase/export_schedule"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	msgInvalidRange = "некорректный период, ожидаются from и to в формате YYYY-MM-DD"
)

type Handler struct {
	useCase ExportScheduleUseCase
	logger  Logger
}

func NewHandler(useCase ExportScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/export?from=YYYY-MM-DD&to=YYYY-MM-DD[&includeInactive=true]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, errFrom := types.ParseDate(query.Get("from"))
	to, errTo := types.ParseDate(query.Get("to"))
	if errFrom != nil || errTo != nil {
		h.logger.Warn("GET /schedule/export - Invalid range: from=%q, to=%q", query.Get("from"), query.Get("to"))
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	includeInactive, _ := strconv.ParseBool(query.Get("includeInactive"))

	result, err := h.useCase.Execute(r.Context(), &exportSchedule.Request{
		From:            from,
		To:              to,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		if errors.Is(err, exportSchedule.ErrInvalidInput) {
			h.logger.Warn("GET /schedule/export - Invalid range: from=%s, to=%s, error=%v", from, to, err)
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		h.logger.Error("GET /schedule/export - Failed to export schedule: from=%s, to=%s, error=%v", from, to, err)
		handlers.RespondInternalError(w)
		return
	}

	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Content); err != nil {
		h.logger.Warn("GET /schedule/export - Failed to write response: %v", err)
		return
	}

	h.logger.Info("GET /schedule/export - Schedule exported: from=%s, to=%s, rows=%d", from, to, result.Rows)
}

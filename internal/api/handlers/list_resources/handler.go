package list_resources

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/resources/models"
)

const (
	msgAdminOnly = "полный каталог доступен только администратору"
)

type Handler struct {
	service ResourceService
	logger  Logger
}

func NewHandler(service ResourceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources
// По умолчанию отдает только доступные для бронирования ресурсы, ?all=true отдает весь каталог
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	all := r.URL.Query().Get("all") == "true"

	var (
		result *models.ResourceListResponse
		err    error
	)

	if all {
		actor, ok := middleware.GetActor(r.Context())
		if !ok || !actor.IsAdmin {
			h.logger.Warn("GET /resources - Full catalog requested without admin role: actor=%s", actor.ID)
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		result, err = h.service.ListAll(r.Context())
	} else {
		result, err = h.service.ListAvailable(r.Context())
	}

	if err != nil {
		h.logger.Error("GET /resources - Failed to list resources: all=%t, error=%v", all, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /resources - Resources listed: all=%t, count=%d", all, len(result.Resources))
	handlers.RespondJSON(w, http.StatusOK, result)
}

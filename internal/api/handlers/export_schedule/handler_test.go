package export_schedule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exportSchedule "github.com/m04kA/SMC-ReservationService/internal/usecase/export_schedule"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type stubUseCase struct {
	got *exportSchedule.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *exportSchedule.Request) (*exportSchedule.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &exportSchedule.Response{
		FileName: "schedule_" + req.From.String() + "_" + req.To.String() + ".xlsx",
		Content:  []byte("PK"),
		Rows:     1,
	}, nil
}

func serve(uc ExportScheduleUseCase, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Attachment(t *testing.T) {
	uc := &stubUseCase{}
	rec := serve(uc, "/schedule/export?from=2030-03-01&to=2030-03-31&includeInactive=true")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="schedule_2030-03-01_2030-03-31.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK", rec.Body.String())
	require.NotNil(t, uc.got)
	assert.True(t, uc.got.IncludeInactive)
}

func TestHandle_InvalidRange(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&stubUseCase{}, "/schedule/export?from=2030-03-01").Code)
	assert.Equal(t, http.StatusBadRequest,
		serve(&stubUseCase{err: exportSchedule.ErrInvalidInput}, "/schedule/export?from=2030-03-31&to=2030-03-01").Code)
}

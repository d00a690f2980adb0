package get_availability

import (
	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ResourceID        int64          `json:"resourceId"`
	Date              string         `json:"date"`
	OperationalStatus string         `json:"operationalStatus"`
	Free              []int          `json:"free"`
	Occupied          []int          `json:"occupied"`
	Slots             []SlotResponse `json:"slots"`
}

// SlotResponse временной слот дня
type SlotResponse struct {
	Index int    `json:"index"`
	Label string `json:"label"` // "8:00 - 9:00"
	Free  bool   `json:"free"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Index: s.Index,
			Label: s.Label,
			Free:  s.Free,
		})
	}

	return &AvailabilityResponse{
		ResourceID:        resp.ResourceID,
		Date:              resp.Date.String(),
		OperationalStatus: resp.OperationalStatus,
		Free:              nonNil(resp.Free),
		Occupied:          nonNil(resp.Occupied),
		Slots:             slots,
	}
}

// nonNil гарантирует [] вместо null в JSON
func nonNil(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}

package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// CreateResourceRequest запрос на добавление ресурса в каталог
type CreateResourceRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Capacity int    `json:"capacity"`
}

// SetStatusRequest запрос на смену эксплуатационного статуса
type SetStatusRequest struct {
	Status string `json:"status"`
}

// ResourceResponse ответ с данными ресурса
type ResourceResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	Capacity          int       `json:"capacity"`
	OperationalStatus string    `json:"operationalStatus"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ResourceListResponse ответ со списком ресурсов
type ResourceListResponse struct {
	Resources []ResourceResponse `json:"resources"`
}

// FromDomainResource конвертирует domain модель в DTO
func FromDomainResource(r *domain.Resource) *ResourceResponse {
	if r == nil {
		return nil
	}

	return &ResourceResponse{
		ID:                r.ID,
		Name:              r.Name,
		Category:          r.Category,
		Capacity:          r.Capacity,
		OperationalStatus: string(r.OperationalStatus),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// FromDomainResourceList конвертирует список domain моделей в DTO
func FromDomainResourceList(resources []*domain.Resource) *ResourceListResponse {
	resp := &ResourceListResponse{
		Resources: make([]ResourceResponse, 0, len(resources)),
	}

	for _, r := range resources {
		resp.Resources = append(resp.Resources, *FromDomainResource(r))
	}

	return resp
}

package domain

import (
	"fmt"
	"time"
)

// OperationalStatus is the administrative state of a resource
type OperationalStatus string

const (
	ResourceAvailable   OperationalStatus = "available"
	ResourceMaintenance OperationalStatus = "maintenance"
	ResourceRetired     OperationalStatus = "retired"
)

// Resource is a bookable room or lab
type Resource struct {
	ID                int64
	Name              string
	Category          string
	Capacity          int
	OperationalStatus OperationalStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsBookable returns true if new bookings may be placed on the resource
func (r *Resource) IsBookable() bool {
	return r.OperationalStatus == ResourceAvailable
}

// ParseOperationalStatus validates a raw status string
func ParseOperationalStatus(s string) (OperationalStatus, error) {
	switch st := OperationalStatus(s); st {
	case ResourceAvailable, ResourceMaintenance, ResourceRetired:
		return st, nil
	default:
		return "", fmt.Errorf("unknown operational status %q", s)
	}
}

// Package store contains the PostgreSQL persistence layer for donation
// records and administrator accounts.
package store

import (
	"context"
	"time"

	"github.com/eagd-org/donation-server/internal/domain"
)

// SortOrder direction for donation listings.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListDonationsParams narrows and pages a donation listing. Zero values fall
// back to: no status filter, page 1, limit 10, created_at descending.
type ListDonationsParams struct {
	Status    domain.Status
	Page      int
	Limit     int
	SortBy    string
	SortOrder SortOrder
}

// UpdateDonationParams carries a partial donation update. Only non-nil fields
// are written; updated_at is refreshed on every call regardless.
type UpdateDonationParams struct {
	FullName        *string
	Phone           *string
	Email           *string
	City            *string
	Address         *string
	HelpOptions     *[]string
	DeviceType      *domain.DeviceType
	DeviceCondition *domain.DeviceCondition
	DeviceBrand     *string
	DeviceModel     *string
	DeviceContent   *string
	EstimatedValue  *domain.EstimatedValue
	DeviceAge       *domain.DeviceAge
	Message         *string
	Status          *domain.Status
	AdminNotes      *string
}

// Empty reports whether the update carries no fields at all.
func (p UpdateDonationParams) Empty() bool {
	return p == UpdateDonationParams{}
}

// DonationRepository is the persistence contract for donation records.
type DonationRepository interface {
	Create(ctx context.Context, donation *domain.Donation) error
	List(ctx context.Context, params ListDonationsParams) ([]domain.Donation, int64, error)
	Get(ctx context.Context, id string) (*domain.Donation, error)
	Update(ctx context.Context, id string, params UpdateDonationParams) (*domain.Donation, error)
	Delete(ctx context.Context, id string) error
	StatsSummary(ctx context.Context) (domain.StatsSummary, error)
}

// AdminRepository is the persistence contract for administrator accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	FindByUsername(ctx context.Context, username string) (*domain.Admin, error)
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	Count(ctx context.Context) (int64, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

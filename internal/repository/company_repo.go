package repository

import (
	"context"
	"fmt"

	"github.com/andy/invoicepro/internal/api"
	"github.com/andy/invoicepro/internal/domain"
)

// CompanyRepo is a REST implementation of CompanyRepository
type CompanyRepo struct {
	api *api.Client
}

// NewCompanyRepo creates a new CompanyRepo
func NewCompanyRepo(apiClient *api.Client) *CompanyRepo {
	return &CompanyRepo{api: apiClient}
}

// Get fetches the company profile; a profile that has never been
// saved comes back with empty fields rather than an error.
func (r *CompanyRepo) Get(ctx context.Context) (*domain.CompanyProfile, error) {
	var dto companyDTO
	if err := r.api.Get(ctx, "/company", &dto); err != nil {
		return nil, fmt.Errorf("failed to fetch company profile: %w", err)
	}
	return dto.toDomain(), nil
}

// Save validates and upserts the profile
func (r *CompanyRepo) Save(ctx context.Context, profile *domain.CompanyProfile) (*domain.CompanyProfile, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	var dto companyDTO
	payload := companyDTO{
		BusinessName: profile.BusinessName,
		Address:      profile.Address,
		Phone:        profile.Phone,
		Logo:         profile.Logo,
	}
	if err := r.api.Put(ctx, "/company", payload, &dto); err != nil {
		return nil, fmt.Errorf("failed to save company profile: %w", err)
	}
	return dto.toDomain(), nil
}

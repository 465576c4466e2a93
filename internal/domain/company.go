package domain

import "strings"

// CompanyProfile is the singleton business profile for the account.
// It is created implicitly on first save and never deleted.
type CompanyProfile struct {
	BusinessName string
	Address      string
	Phone        string
	Logo         string // reference (URL or path), rendering is the backend's job
}

// Validate returns an error if the profile is invalid
func (p *CompanyProfile) Validate() error {
	if strings.TrimSpace(p.BusinessName) == "" {
		return invalid("businessName", "business name is required")
	}
	return nil
}

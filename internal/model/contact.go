// Package model defines the domain types served by the CRM API.
package model

// Contact is a person record, optionally linked to a Company.
// Optional columns are pointers so absent values serialize as JSON null.
type Contact struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Company        *string `json:"company"`
	CompanyID      *int64  `json:"company_id"`
	Title          *string `json:"title"`
	Website        *string `json:"website"`
	AdditionalInfo *string `json:"additional_info"`
	CreatedAt      string  `json:"created_at"`

	// Joined from companies on list reads; null when unlinked.
	CompanyName *string `json:"company_name,omitempty"`
}

// ContactUpdate carries a partial contact mutation. Nil fields are left
// unchanged.
type ContactUpdate struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Company        *string `json:"company"`
	CompanyID      *int64  `json:"company_id"`
	Title          *string `json:"title"`
	Website        *string `json:"website"`
	AdditionalInfo *string `json:"additional_info"`
}

// Company groups contacts under one organization.
type Company struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Website   *string `json:"website"`
	Industry  *string `json:"industry"`
	Notes     *string `json:"notes"`
	CreatedAt string  `json:"created_at"`

	// Populated on list reads.
	ContactCount int `json:"contact_count,omitempty"`
}

// CompanyUpdate carries a partial company mutation.
type CompanyUpdate struct {
	Name     *string `json:"name"`
	Website  *string `json:"website"`
	Industry *string `json:"industry"`
	Notes    *string `json:"notes"`
}

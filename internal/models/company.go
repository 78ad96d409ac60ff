package models

import "time"

// Company описывает фирму из справочника.
type Company struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Sector        string    `json:"sector"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email,omitempty"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	ContactPhone  string    `json:"contactPhone,omitempty"`
	Address       string    `json:"address,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CompanyPatch содержит изменяемые поля фирмы. nil означает «не менять».
type CompanyPatch struct {
	Name          *string `json:"name"`
	Sector        *string `json:"sector"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	ContactPerson *string `json:"contactPerson"`
	ContactPhone  *string `json:"contactPhone"`
	Address       *string `json:"address"`
}

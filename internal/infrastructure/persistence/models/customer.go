package models

import (
	"time"

	"github.com/optica/backend/internal/domain/partner"
	"github.com/optica/backend/internal/domain/shared/valueobject"
)

// CustomerModel is the persistence model for the Customer domain entity.
// The address is stored flattened so CEP and city can be indexed.
type CustomerModel struct {
	AggregateModel
	Name         string                 `gorm:"type:varchar(200);not null"`
	TaxID        string                 `gorm:"type:char(11);uniqueIndex"`
	Phone        string                 `gorm:"type:varchar(11)"`
	Email        string                 `gorm:"type:varchar(200)"`
	Street       string                 `gorm:"type:varchar(200)"`
	Number       string                 `gorm:"type:varchar(20)"`
	Complement   string                 `gorm:"type:varchar(200)"`
	Neighborhood string                 `gorm:"type:varchar(100)"`
	City         string                 `gorm:"type:varchar(100)"`
	State        string                 `gorm:"type:char(2)"`
	PostalCode   string                 `gorm:"type:char(8)"`
	Status       partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	BirthDate    *time.Time             `gorm:"type:date"`
	Notes        string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		TaxID:             valueobject.RestoreTaxID(m.TaxID),
		Phone:             m.Phone,
		Email:             m.Email,
		Address: valueobject.RestoreAddress(
			m.Street, m.Number, m.Complement, m.Neighborhood, m.City, m.State, m.PostalCode,
		),
		BirthDate: m.BirthDate,
		Notes:     m.Notes,
		Status:    m.Status,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.TaxID = c.TaxID.Digits()
	m.Phone = c.Phone
	m.Email = c.Email
	m.Street = c.Address.Street()
	m.Number = c.Address.Number()
	m.Complement = c.Address.Complement()
	m.Neighborhood = c.Address.Neighborhood()
	m.City = c.Address.City()
	m.State = c.Address.State()
	m.PostalCode = c.Address.PostalCode()
	m.Status = c.Status
	m.BirthDate = c.BirthDate
	m.Notes = c.Notes
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

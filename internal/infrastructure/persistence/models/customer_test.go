package models

import (
	"testing"
	"time"

	"github.com/optica/backend/internal/domain/partner"
	"github.com/optica/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerModel_RoundTrip(t *testing.T) {
	c, err := partner.NewCustomer("Maria da Silva", valueobject.MustNewTaxID("52998224725"))
	require.NoError(t, err)
	require.NoError(t, c.SetContact("(11) 98765-4321", "maria@example.com"))
	c.SetAddress(valueobject.MustNewAddress("Praça da Sé", "Sé", "São Paulo", "SP",
		valueobject.WithNumber("100"), valueobject.WithComplement("lado ímpar"), valueobject.WithPostalCode("01001-000")))
	born := time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, c.SetBirthDate(&born))

	m := CustomerModelFromDomain(c)
	assert.Equal(t, c.ID, m.ID)
	assert.Equal(t, "52998224725", m.TaxID)
	assert.Equal(t, "01001000", m.PostalCode)
	assert.Equal(t, "SP", m.State)
	assert.Equal(t, c.Version, m.Version)
	assert.Equal(t, "customers", m.TableName())

	back := m.ToDomain()
	assert.Equal(t, c.ID, back.ID)
	assert.Equal(t, c.Name, back.Name)
	assert.True(t, c.TaxID.Equals(back.TaxID))
	assert.True(t, c.Address.Equals(back.Address))
	assert.Equal(t, c.Phone, back.Phone)
	assert.Equal(t, c.Status, back.Status)
	assert.Equal(t, c.Version, back.Version)
	assert.Equal(t, born, *back.BirthDate)
	assert.Empty(t, back.GetDomainEvents())
}

func TestCustomerModel_EmptyAddress(t *testing.T) {
	m := &CustomerModel{Name: "João", TaxID: "11144477735", Status: partner.CustomerStatusActive}
	c := m.ToDomain()

	assert.True(t, c.Address.IsEmpty())
	assert.Equal(t, "111.444.777-35", c.FormattedTaxID())
}

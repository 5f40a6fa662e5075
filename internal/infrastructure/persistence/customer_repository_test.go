package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/optica/backend/internal/domain/partner"
	"github.com/optica/backend/internal/domain/shared"
	"github.com/optica/backend/internal/domain/shared/valueobject"
	"github.com/optica/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupCustomerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)

	// Each pooled connection would get its own in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.CustomerModel{}))
	return db
}

func newCustomer(t *testing.T, name, cpf, city, state string) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer(name, valueobject.MustNewTaxID(cpf))
	require.NoError(t, err)
	if city != "" {
		c.SetAddress(valueobject.MustNewAddress("", "", city, state))
	}
	c.ClearDomainEvents()
	return c
}

func TestGormCustomerRepository_SaveAndFind(t *testing.T) {
	db := setupCustomerTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()

	c := newCustomer(t, "Maria da Silva", "52998224725", "", "")
	require.NoError(t, c.SetContact("(11) 98765-4321", "maria@example.com"))
	c.SetAddress(valueobject.MustNewAddress("Praça da Sé", "Sé", "São Paulo", "SP",
		valueobject.WithNumber("100"), valueobject.WithPostalCode("01001-000")))
	born := time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, c.SetBirthDate(&born))

	require.NoError(t, repo.Save(ctx, c))

	t.Run("by id", func(t *testing.T) {
		got, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)

		assert.Equal(t, "Maria da Silva", got.Name)
		assert.Equal(t, "529.982.247-25", got.FormattedTaxID())
		assert.Equal(t, "(11) 98765-4321", got.FormattedPhone())
		assert.True(t, c.Address.Equals(got.Address))
		assert.Equal(t, c.Version, got.Version)
		require.NotNil(t, got.BirthDate)
		assert.Equal(t, "1990-03-15", got.BirthDate.Format("2006-01-02"))
	})

	t.Run("by masked tax id", func(t *testing.T) {
		got, err := repo.FindByTaxID(ctx, "529.982.247-25")
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := repo.ExistsByTaxID(ctx, "52998224725")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.ExistsByTaxID(ctx, "11144477735")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByTaxID(ctx, "11144477735")
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByTaxID(ctx, "")
		assert.Error(t, err)
	})
}

func TestGormCustomerRepository_FindAll(t *testing.T) {
	db := setupCustomerTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()

	maria := newCustomer(t, "Maria da Silva", "52998224725", "São Paulo", "SP")
	joao := newCustomer(t, "João Pereira", "11144477735", "Rio de Janeiro", "RJ")
	ana := newCustomer(t, "Ana Souza", "39053344705", "São Paulo", "SP")
	require.NoError(t, ana.Deactivate())

	for _, c := range []*partner.Customer{maria, joao, ana} {
		require.NoError(t, repo.Save(ctx, c))
	}

	t.Run("default order is by name", func(t *testing.T) {
		all, err := repo.FindAll(ctx, partner.CustomerFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "Ana Souza", all[0].Name)
		assert.Equal(t, "João Pereira", all[1].Name)
		assert.Equal(t, "Maria da Silva", all[2].Name)
	})

	t.Run("by state and status", func(t *testing.T) {
		filter := partner.CustomerFilter{State: "sp", Status: partner.CustomerStatusActive}
		found, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, maria.ID, found[0].ID)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("by city ignoring case", func(t *testing.T) {
		count, err := repo.Count(ctx, partner.CustomerFilter{City: "são paulo"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("search by name", func(t *testing.T) {
		found, err := repo.FindAll(ctx, partner.CustomerFilter{Filter: shared.Filter{Search: "SOUZA"}})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, ana.ID, found[0].ID)
	})

	t.Run("search by masked cpf prefix", func(t *testing.T) {
		found, err := repo.FindAll(ctx, partner.CustomerFilter{Filter: shared.Filter{Search: "111.444"}})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, joao.ID, found[0].ID)
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := repo.FindAll(ctx, partner.CustomerFilter{Filter: shared.Filter{Page: 2, PageSize: 2}})
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "Maria da Silva", page[0].Name)

		count, err := repo.Count(ctx, partner.CustomerFilter{Filter: shared.Filter{Page: 2, PageSize: 2}})
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("unknown sort field falls back to name", func(t *testing.T) {
		found, err := repo.FindAll(ctx, partner.CustomerFilter{Filter: shared.Filter{OrderBy: "name; DROP TABLE customers", OrderDir: "desc"}})
		require.NoError(t, err)
		require.Len(t, found, 3)
		assert.Equal(t, "Maria da Silva", found[0].Name)
	})
}

func TestGormCustomerRepository_SaveWithLock(t *testing.T) {
	db := setupCustomerTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()

	c := newCustomer(t, "Maria da Silva", "52998224725", "", "")
	require.NoError(t, repo.Save(ctx, c))

	first, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)

	require.NoError(t, first.SetContact("11987654321", ""))
	require.NoError(t, repo.SaveWithLock(ctx, first))

	require.NoError(t, second.SetNotes("Cliente desde 2019"))
	err = repo.SaveWithLock(ctx, second)
	assert.ErrorIs(t, err, shared.ErrConcurrentModification)

	stored, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "11987654321", stored.Phone)
	assert.Empty(t, stored.Notes)
	assert.Equal(t, 2, stored.Version)
}

func TestGormCustomerRepository_Delete(t *testing.T) {
	db := setupCustomerTestDB(t)
	repo := NewGormCustomerRepository(db)
	ctx := context.Background()

	c := newCustomer(t, "Maria da Silva", "52998224725", "", "")
	require.NoError(t, repo.Save(ctx, c))

	require.NoError(t, repo.Delete(ctx, c.ID))
	assert.ErrorIs(t, repo.Delete(ctx, c.ID), shared.ErrNotFound)

	_, err := repo.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

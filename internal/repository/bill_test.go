package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/002sathwik/vs-billings/internal/apperr"
	"github.com/002sathwik/vs-billings/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pool of in-memory connections would each see their own database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(&models.Bill{}, &models.Item{}))
	return db
}

func newTestRepo(t *testing.T) (*BillRepository, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewBillRepository(db), db
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestCreateAndGetByID(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	bill := models.Bill{
		CustomerName: "Ramesh",
		Date:         date(2024, time.March, 5),
		// A caller-supplied total is never trusted.
		TotalAmount: decimal.NewFromInt(9999),
		Items: []models.Item{
			{Name: "Flyers", Quantity: 2, Price: decimal.NewFromInt(10)},
			{Name: "Cards", Quantity: 1, Price: decimal.NewFromInt(5)},
		},
	}

	require.NoError(t, repo.Create(ctx, &bill))
	require.NotZero(t, bill.ID)
	assert.True(t, bill.TotalAmount.Equal(decimal.NewFromInt(25)),
		"total must be recomputed from items, got %s", bill.TotalAmount)

	got, err := repo.GetByID(ctx, bill.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Flyers", got.Items[0].Name)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, "Cards", got.Items[1].Name)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(25)))
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), 42)
	var nferr *apperr.NotFoundError
	require.True(t, errors.As(err, &nferr))
	assert.Equal(t, uint(42), nferr.ID)
}

func TestUpdateReplacesItemsAndRecomputesTotal(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	bill := models.Bill{
		CustomerName: "Ramesh",
		Date:         date(2024, time.March, 5),
		Items: []models.Item{
			{Name: "Flyers", Quantity: 2, Price: decimal.NewFromInt(10)},
		},
	}
	require.NoError(t, repo.Create(ctx, &bill))

	name := "Suresh"
	newItems := []models.Item{
		{Name: "Posters", Quantity: 3, Price: decimal.NewFromInt(4)},
		{Name: "Banners", Quantity: 1, Price: decimal.NewFromInt(8)},
	}
	updated, err := repo.Update(ctx, bill.ID, BillChanges{
		CustomerName: &name,
		Items:        &newItems,
	})
	require.NoError(t, err)

	assert.Equal(t, "Suresh", updated.CustomerName)
	require.Len(t, updated.Items, 2, "old items must be replaced, not kept")
	assert.Equal(t, "Posters", updated.Items[0].Name)
	assert.Equal(t, "Banners", updated.Items[1].Name)
	assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(20)))
}

func TestUpdateScalarsOnlyKeepsItems(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	bill := models.Bill{
		CustomerName: "Ramesh",
		Date:         date(2024, time.March, 5),
		Items: []models.Item{
			{Name: "Flyers", Quantity: 2, Price: decimal.NewFromInt(10)},
		},
	}
	require.NoError(t, repo.Create(ctx, &bill))

	newDate := date(2024, time.April, 1)
	updated, err := repo.Update(ctx, bill.ID, BillChanges{Date: &newDate})
	require.NoError(t, err)

	assert.Equal(t, "Ramesh", updated.CustomerName)
	assert.True(t, updated.Date.Equal(newDate))
	require.Len(t, updated.Items, 1)
	assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(20)))
}

func TestUpdateNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Update(context.Background(), 42, BillChanges{})
	var nferr *apperr.NotFoundError
	assert.True(t, errors.As(err, &nferr))
}

func TestAppendItemsAddsToExistingSet(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	bill := models.Bill{
		CustomerName: "Ramesh",
		Date:         date(2024, time.March, 5),
		Items: []models.Item{
			{Name: "Flyers", Quantity: 1, Price: decimal.NewFromInt(10)},
		},
	}
	require.NoError(t, repo.Create(ctx, &bill))

	got, err := repo.AppendItems(ctx, bill.ID, []models.Item{
		{Name: "X", Quantity: 2, Price: decimal.NewFromInt(5)},
	})
	require.NoError(t, err)

	require.Len(t, got.Items, 2, "append must keep the existing item")
	assert.Equal(t, "Flyers", got.Items[0].Name)
	assert.Equal(t, "X", got.Items[1].Name)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(20)),
		"total must cover all items after the append, got %s", got.TotalAmount)
}

func TestAppendItemsNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.AppendItems(context.Background(), 42, []models.Item{
		{Name: "X", Quantity: 1, Price: decimal.NewFromInt(5)},
	})
	var nferr *apperr.NotFoundError
	assert.True(t, errors.As(err, &nferr))
}

func TestDeleteCascadesToItems(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	bill := models.Bill{
		CustomerName: "Ramesh",
		Date:         date(2024, time.March, 5),
		Items: []models.Item{
			{Name: "Flyers", Quantity: 1, Price: decimal.NewFromInt(10)},
			{Name: "Cards", Quantity: 1, Price: decimal.NewFromInt(5)},
		},
	}
	require.NoError(t, repo.Create(ctx, &bill))

	require.NoError(t, repo.Delete(ctx, bill.ID))

	_, err := repo.GetByID(ctx, bill.ID)
	var nferr *apperr.NotFoundError
	assert.True(t, errors.As(err, &nferr))

	var itemCount int64
	require.NoError(t, db.Model(&models.Item{}).Count(&itemCount).Error)
	assert.Zero(t, itemCount, "items must be removed with their bill")
}

func TestDeleteNotFound(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.Delete(context.Background(), 42)
	var nferr *apperr.NotFoundError
	assert.True(t, errors.As(err, &nferr))
}

func TestListOrdersByDateDescWithoutItems(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	for _, b := range []models.Bill{
		{CustomerName: "A", Date: date(2024, time.January, 10), Items: []models.Item{{Name: "x", Quantity: 1, Price: decimal.NewFromInt(1)}}},
		{CustomerName: "B", Date: date(2024, time.March, 1)},
		{CustomerName: "C", Date: date(2024, time.February, 15)},
	} {
		bill := b
		require.NoError(t, repo.Create(ctx, &bill))
	}

	bills, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 3)

	assert.Equal(t, "B", bills[0].CustomerName)
	assert.Equal(t, "C", bills[1].CustomerName)
	assert.Equal(t, "A", bills[2].CustomerName)

	for _, b := range bills {
		assert.Empty(t, b.Items, "list view must not load items")
	}
}

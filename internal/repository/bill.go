package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/002sathwik/vs-billings/internal/apperr"
	"github.com/002sathwik/vs-billings/internal/models"
)

// BillChanges carries the fields of an update request. Nil pointers mean
// "leave unchanged". A non-nil Items slice replaces the bill's whole item set;
// appending is a separate operation (AppendItems).
type BillChanges struct {
	CustomerName *string
	Date         *time.Time
	Items        *[]models.Item
}

type BillRepository struct {
	db *gorm.DB
}

func NewBillRepository(db *gorm.DB) *BillRepository {
	return &BillRepository{db: db}
}

// Create inserts the bill row and one item row per supplied item in a single
// transaction: either everything persists or nothing does. The total is
// recomputed from the items before insert regardless of what the caller set.
func (r *BillRepository) Create(ctx context.Context, bill *models.Bill) error {
	bill.TotalAmount = models.ComputeTotal(bill.Items)

	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return apperr.Store("begin create bill", tx.Error)
	}

	items := bill.Items
	bill.Items = nil

	if err := tx.Create(bill).Error; err != nil {
		tx.Rollback()
		return apperr.Store("create bill", err)
	}

	for i := range items {
		items[i].BillID = bill.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return apperr.Store("create bill item", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return apperr.Store("commit create bill", err)
	}

	bill.Items = items
	return nil
}

// Update applies the supplied scalar changes and, when Items is present,
// replaces the existing item set. The total is always recomputed from the
// items the bill ends up with.
func (r *BillRepository) Update(ctx context.Context, id uint, changes BillChanges) (*models.Bill, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperr.Store("begin update bill", tx.Error)
	}

	var bill models.Bill
	if err := tx.Preload("Items", itemOrder).First(&bill, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.BillNotFound(id)
		}
		return nil, apperr.Store("load bill", err)
	}

	if changes.CustomerName != nil {
		bill.CustomerName = *changes.CustomerName
	}
	if changes.Date != nil {
		bill.Date = *changes.Date
	}

	if changes.Items != nil {
		if err := tx.Where("bill_id = ?", id).Delete(&models.Item{}).Error; err != nil {
			tx.Rollback()
			return nil, apperr.Store("delete bill items", err)
		}
		newItems := *changes.Items
		for i := range newItems {
			newItems[i].ID = 0
			newItems[i].BillID = id
			if err := tx.Create(&newItems[i]).Error; err != nil {
				tx.Rollback()
				return nil, apperr.Store("create bill item", err)
			}
		}
		bill.Items = newItems
	}

	bill.TotalAmount = models.ComputeTotal(bill.Items)

	updates := map[string]interface{}{
		"customer_name": bill.CustomerName,
		"date":          bill.Date,
		"total_amount":  bill.TotalAmount,
	}
	if err := tx.Model(&models.Bill{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Store("update bill", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperr.Store("commit update bill", err)
	}

	return r.GetByID(ctx, id)
}

// AppendItems adds the given items to the bill's existing set and recomputes
// the total over all items. This keeps the legacy "update adds items"
// behavior available, but under its own name instead of hiding inside Update.
func (r *BillRepository) AppendItems(ctx context.Context, id uint, items []models.Item) (*models.Bill, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperr.Store("begin append items", tx.Error)
	}

	var bill models.Bill
	if err := tx.First(&bill, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.BillNotFound(id)
		}
		return nil, apperr.Store("load bill", err)
	}

	for i := range items {
		items[i].ID = 0
		items[i].BillID = id
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return nil, apperr.Store("create bill item", err)
		}
	}

	var all []models.Item
	if err := tx.Where("bill_id = ?", id).Order("id").Find(&all).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Store("load bill items", err)
	}

	total := models.ComputeTotal(all)
	if err := tx.Model(&models.Bill{}).Where("id = ?", id).Update("total_amount", total).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Store("update bill total", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperr.Store("commit append items", err)
	}

	return r.GetByID(ctx, id)
}

// Delete removes the bill row; its items go with it via the FK cascade.
// Deleting an id that does not exist is an error, not a no-op.
func (r *BillRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Bill{}, id)
	if res.Error != nil {
		return apperr.Store("delete bill", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.BillNotFound(id)
	}
	return nil
}

// List returns all bills newest-dated first, without their items. The app
// serves a single business; the bill count stays small enough that
// pagination is not worth its complexity here.
func (r *BillRepository) List(ctx context.Context) ([]models.Bill, error) {
	var bills []models.Bill
	if err := r.db.WithContext(ctx).Order("date desc").Find(&bills).Error; err != nil {
		return nil, apperr.Store("list bills", err)
	}
	return bills, nil
}

// GetByID returns one bill with its items in insertion order.
func (r *BillRepository) GetByID(ctx context.Context, id uint) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).Preload("Items", itemOrder).First(&bill, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.BillNotFound(id)
		}
		return nil, apperr.Store("get bill", err)
	}
	return &bill, nil
}

func itemOrder(db *gorm.DB) *gorm.DB {
	return db.Order("items.id")
}

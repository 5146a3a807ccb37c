package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/002sathwik/vs-billings/internal/invoice"
	"github.com/002sathwik/vs-billings/internal/models"
	"github.com/002sathwik/vs-billings/internal/repository"
	"github.com/002sathwik/vs-billings/internal/validation"
)

type BillHandler struct {
	Repo     *repository.BillRepository
	Merchant invoice.Merchant
}

// ItemInput is one line item on the wire. Quantity is a pointer so an absent
// quantity (defaults to 1) is distinguishable from an explicit 0 (rejected).
type ItemInput struct {
	Name     string          `json:"name" validate:"required"`
	Quantity *int            `json:"quantity" validate:"omitempty,gt=0"`
	Price    decimal.Decimal `json:"price" validate:"gte=0"`
}

// NewBillRequest requires the items key (an explicit empty array is fine) and
// totalAmount. The total is mandatory on the wire for contract compatibility
// but never persisted verbatim; the server recomputes it from the items.
type NewBillRequest struct {
	CustomerName string           `json:"customerName" validate:"required"`
	Date         *time.Time       `json:"date"`
	TotalAmount  *decimal.Decimal `json:"totalAmount" validate:"required,gte=0"`
	Items        []ItemInput      `json:"items" validate:"required,dive"`
}

// UpdateBillRequest leaves absent fields untouched. TotalAmount stays
// mandatory-and-validated on the wire for contract compatibility even though
// the server recomputes it. A present Items slice replaces the item set.
type UpdateBillRequest struct {
	CustomerName *string          `json:"customerName" validate:"omitempty,min=1"`
	Date         *time.Time       `json:"date"`
	TotalAmount  *decimal.Decimal `json:"totalAmount" validate:"required,gte=0"`
	Items        *[]ItemInput     `json:"items" validate:"omitempty,dive"`
}

type AppendItemsRequest struct {
	Items []ItemInput `json:"items" validate:"required,min=1,dive"`
}

// toItems converts wire items to model items, defaulting absent quantities
// to 1. An explicit quantity is taken as-is (validation already rejected 0).
func toItems(inputs []ItemInput) []models.Item {
	items := make([]models.Item, 0, len(inputs))
	for _, in := range inputs {
		qty := 1
		if in.Quantity != nil {
			qty = *in.Quantity
		}
		items = append(items, models.Item{
			Name:     in.Name,
			Quantity: qty,
			Price:    in.Price,
		})
	}
	return items
}

func (h *BillHandler) NewBill(c *gin.Context) {
	var req NewBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := validation.Struct(&req); err != nil {
		respondError(c, err)
		return
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	bill := models.Bill{
		CustomerName: req.CustomerName,
		Date:         date,
		Items:        toItems(req.Items),
	}

	if err := h.Repo.Create(c.Request.Context(), &bill); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bill)
}

func (h *BillHandler) UpdateBill(c *gin.Context) {
	id, ok := billID(c)
	if !ok {
		return
	}

	var req UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := validation.Struct(&req); err != nil {
		respondError(c, err)
		return
	}

	changes := repository.BillChanges{
		CustomerName: req.CustomerName,
		Date:         req.Date,
	}
	if req.Items != nil {
		items := toItems(*req.Items)
		changes.Items = &items
	}

	bill, err := h.Repo.Update(c.Request.Context(), id, changes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

// AppendBillItems adds items to an existing bill. This is the old
// update-appends behavior, kept as its own explicitly named operation.
func (h *BillHandler) AppendBillItems(c *gin.Context) {
	id, ok := billID(c)
	if !ok {
		return
	}

	var req AppendItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := validation.Struct(&req); err != nil {
		respondError(c, err)
		return
	}

	bill, err := h.Repo.AppendItems(c.Request.Context(), id, toItems(req.Items))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

func (h *BillHandler) DeleteBill(c *gin.Context) {
	id, ok := billID(c)
	if !ok {
		return
	}

	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BillHandler) GetAllBills(c *gin.Context) {
	bills, err := h.Repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bills)
}

func (h *BillHandler) GetBillByID(c *gin.Context) {
	id, ok := billID(c)
	if !ok {
		return
	}

	bill, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

func billID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bill id"})
		return 0, false
	}
	return uint(id), true
}

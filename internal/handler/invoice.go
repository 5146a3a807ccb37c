package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/002sathwik/vs-billings/internal/invoice"
)

const (
	defaultQRSize = 256
	maxQRSize     = 1024
)

// GetInvoice returns the printable-invoice payload for a bill: a freshly
// minted invoice number, the merchant identity and the UPI payment URI.
func (h *BillHandler) GetInvoice(c *gin.Context) {
	id, ok := billID(c)
	if !ok {
		return
	}

	bill, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice.Build(h.Merchant, *bill, time.Now()))
}

// GetInvoiceQR renders the bill's UPI payment URI as a PNG QR code.
func (h *BillHandler) GetInvoiceQR(c *gin.Context) {
	id, ok := billID(c)
	if !ok {
		return
	}

	bill, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	size := defaultQRSize
	if s := c.Query("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > maxQRSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid qr size"})
			return
		}
		size = n
	}

	inv := invoice.Build(h.Merchant, *bill, time.Now())
	png, err := invoice.QRPNG(inv.UPIURI, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

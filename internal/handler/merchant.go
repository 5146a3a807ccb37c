package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/002sathwik/vs-billings/internal/invoice"
)

type MerchantHandler struct {
	Merchant invoice.Merchant
}

// GetMerchant exposes the configured merchant identity (name, UPI VPA,
// currency) so the invoice preview can render the payee block.
func (h *MerchantHandler) GetMerchant(c *gin.Context) {
	c.JSON(http.StatusOK, h.Merchant)
}

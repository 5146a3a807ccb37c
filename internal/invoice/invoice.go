package invoice

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/002sathwik/vs-billings/internal/models"
)

// Merchant identifies the payee on the generated invoice: display name, UPI
// virtual payment address and ISO currency code.
type Merchant struct {
	Name     string `json:"name"`
	VPA      string `json:"vpa"`
	Currency string `json:"currency"`
}

// Invoice is the printable-invoice payload built on demand from a stored bill.
// It is never persisted; the number and URI are minted at request time.
type Invoice struct {
	Number   string          `json:"number"`
	Merchant Merchant        `json:"merchant"`
	Bill     models.Bill     `json:"bill"`
	Amount   decimal.Decimal `json:"amount"`
	UPIURI   string          `json:"upiUri"`
}

// Number derives an invoice number from the last six digits of the current
// millisecond timestamp: INV-123456.
func Number(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	return "INV-" + ms[len(ms)-6:]
}

// UPIURI builds the upi://pay deep link a payment app scans from the QR code.
// Parameter order matters to some UPI apps, so the query string is assembled
// by hand rather than through url.Values (which sorts keys).
func UPIURI(m Merchant, amount decimal.Decimal, number string) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=%s&tn=%s",
		escape(m.VPA),
		escape(m.Name),
		amount.StringFixed(2),
		escape(m.Currency),
		escape("Invoice "+number),
	)
}

// escape is url.QueryEscape with %20 for spaces; UPI apps are stricter about
// '+' than the RFC allows.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Build assembles the invoice payload for a bill. The amount is the bill's
// stored total, which every write path keeps equal to the item sum.
func Build(m Merchant, bill models.Bill, now time.Time) Invoice {
	number := Number(now)
	return Invoice{
		Number:   number,
		Merchant: m,
		Bill:     bill,
		Amount:   bill.TotalAmount,
		UPIURI:   UPIURI(m, bill.TotalAmount, number),
	}
}

// QRPNG renders the UPI URI as a PNG of the given pixel size.
func QRPNG(uri string, size int) ([]byte, error) {
	return qrcode.Encode(uri, qrcode.Medium, size)
}

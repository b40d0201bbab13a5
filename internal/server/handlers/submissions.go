package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"slices"
	"sync"

	"github.com/agentstation/storefront/internal/server/response"
	"github.com/agentstation/storefront/pkg/cart"
	"github.com/agentstation/storefront/pkg/constants"
	"github.com/agentstation/storefront/pkg/errors"
	"github.com/agentstation/storefront/pkg/logging"
	"github.com/agentstation/storefront/pkg/receipt"
)

// Submissions keeps what clients have posted: the latest cart and every
// receipt, in memory.
type Submissions struct {
	mu       sync.RWMutex
	cart     []cart.Entry
	carts    int
	receipts []receipt.Receipt
}

// NewSubmissions creates an empty store.
func NewSubmissions() *Submissions {
	return &Submissions{}
}

// SaveCart replaces the latest cart.
func (s *Submissions) SaveCart(entries []cart.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = slices.Clone(entries)
	s.carts++
}

// AddReceipt records a receipt.
func (s *Submissions) AddReceipt(r receipt.Receipt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts = append(s.receipts, r)
}

// LatestCart returns the most recently saved cart.
func (s *Submissions) LatestCart() []cart.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cart)
}

// Receipts returns every recorded receipt.
func (s *Submissions) Receipts() []receipt.Receipt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.receipts)
}

// Counts returns how many carts and receipts were submitted.
func (s *Submissions) Counts() (carts, receipts int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.carts, len(s.receipts)
}

// HandleCart handles POST /api/cart.
func (h *Handlers) HandleCart(w http.ResponseWriter, r *http.Request) {
	var entries []cart.Entry
	if err := decodeBody(w, r, &entries); err != nil {
		response.TextError(w, err)
		return
	}
	if entries == nil {
		response.Text(w, http.StatusBadRequest, "cart must be a JSON array")
		return
	}
	if err := validateEntries(entries); err != nil {
		response.TextError(w, err)
		return
	}

	h.store.SaveCart(entries)
	logging.FromContext(r.Context()).Info().
		Int("entries", len(entries)).
		Str("total", cart.Total(entries).StringFixed(2)).
		Msg("Cart saved")
	response.Text(w, http.StatusCreated, "cart saved")
}

// HandleReceipt handles POST /api/receipt.
func (h *Handlers) HandleReceipt(w http.ResponseWriter, r *http.Request) {
	var rec receipt.Receipt
	if err := decodeBody(w, r, &rec); err != nil {
		response.TextError(w, err)
		return
	}
	if err := rec.Validate(); err != nil {
		response.TextError(w, err)
		return
	}

	h.store.AddReceipt(rec)
	logging.FromContext(r.Context()).Info().
		Int("items", len(rec.Items)).
		Str("total", rec.Total.StringFixed(2)).
		Msg("Receipt saved")
	response.Text(w, http.StatusCreated, "receipt saved")
}

// HandleListReceipts handles GET /api/receipts.
func (h *Handlers) HandleListReceipts(w http.ResponseWriter, _ *http.Request) {
	receipts := h.store.Receipts()
	if receipts == nil {
		receipts = []receipt.Receipt{}
	}
	response.OK(w, receipts)
}

// decodeBody reads a size-capped JSON body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBodySize)

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r.Body); err != nil {
		return err
	}
	if err := json.Unmarshal(buf.Bytes(), v); err != nil {
		return errors.NewParseError("json", r.URL.Path, "invalid JSON body", err)
	}
	return nil
}

func validateEntries(entries []cart.Entry) error {
	seen := make(map[int]bool, len(entries))
	for _, e := range entries {
		if e.Quantity < 1 {
			return errors.NewValidationError("quantity", e.Quantity, "must be at least 1")
		}
		if err := e.Product.Validate(); err != nil {
			return err
		}
		if seen[e.Product.ID] {
			return errors.NewValidationError("product", e.Product.ID, "appears more than once")
		}
		seen[e.Product.ID] = true
	}
	return nil
}

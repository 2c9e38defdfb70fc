package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	applog "dsfs/internal/log"
	"dsfs/internal/middleware"
	"dsfs/internal/stellar"
	"dsfs/internal/validate"
)

type fundRequest struct {
	// Amount accepts a JSON number or the raw text typed into a form.
	Amount json.RawMessage `json:"amount"`
}

type fundResponse struct {
	TransactionID string `json:"transactionId,omitempty"`
	State         any    `json:"state"`
}

func (f fundRequest) parse() (float64, error) {
	raw := bytes.TrimSpace(f.Amount)
	if len(raw) > 0 && raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, validate.ErrInvalidAmount
		}
		return validate.ParseFundingAmount(text)
	}
	var amount float64
	if err := json.Unmarshal(raw, &amount); err != nil {
		return 0, validate.ErrInvalidAmount
	}
	if err := validate.FundingAmount(amount); err != nil {
		return 0, err
	}
	return amount, nil
}

// readFunding decodes and validates a funding body, writing the error
// response itself when it returns false.
func readFunding(w http.ResponseWriter, r *http.Request) (string, float64, bool) {
	id := chi.URLParam(r, "id")
	var req fundRequest
	if !decodeJSON(w, r, &req) {
		return "", 0, false
	}
	amount, err := req.parse()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_amount", err.Error())
		return "", 0, false
	}
	return id, amount, true
}

// pay submits the transfer. Failures are logged; the optimistic update
// still goes ahead.
func (h *Handlers) pay(r *http.Request, to string, amount float64) string {
	if h.payments == nil {
		return ""
	}
	receipt, err := h.payments.SendPayment(r.Context(), stellar.Payment{
		From:   middleware.ClientIDFromContext(r.Context()),
		To:     to,
		Amount: amount,
	})
	if err != nil {
		applog.Warn(r.Context(), "payment submission failed", "to", to, "amount", amount, "error", err)
		return ""
	}
	return receipt.TransactionID
}

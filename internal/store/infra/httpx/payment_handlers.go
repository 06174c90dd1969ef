package httpx

import (
	"net/http"

	"github.com/jcmexdev/menswear-store/internal/store/core/ports"
	"github.com/jcmexdev/menswear-store/internal/store/core/services"
)

// ChargeCard answers 201 with the charge, or 402 with the decline reason.
func (h *Handler) ChargeCard(w http.ResponseWriter, r *http.Request) {
	var req CardChargeRequest
	if !decode(w, r, &req) {
		return
	}
	charge, err := h.payments.ChargeCard(r.Context(), customer(r).ID, services.CardChargeInput{
		Token:       req.Token,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		OrderID:     req.OrderID,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapCharge(charge))
}

func (h *Handler) CardPublicKey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PublicKeyResponse{PublicKey: h.payments.CardPublicKey()})
}

func (h *Handler) ChargeMobileMoney(w http.ResponseWriter, r *http.Request) {
	var req MobileChargeRequest
	if !decode(w, r, &req) {
		return
	}
	tx, err := h.payments.InitiateMobileMoney(r.Context(), customer(r).ID, services.MobileMoneyInput{
		Phone:       req.Phone,
		Amount:      req.Amount,
		Reference:   req.Reference,
		Description: req.Description,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, mapMobileMoney(tx))
}

func (h *Handler) MobileMoneyCallback(w http.ResponseWriter, r *http.Request) {
	var req MobileCallbackRequest
	if !decode(w, r, &req) {
		return
	}
	tx, err := h.payments.CompleteMobileMoney(r.Context(), req.TransactionID, req.Status)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapMobileMoney(tx))
}

func (h *Handler) MobilePublicKey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PublicKeyResponse{PublicKey: h.payments.MobilePublicKey()})
}

func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req EmailRequest
	if !decode(w, r, &req) {
		return
	}
	err := h.mail.Send(r.Context(), ports.Email{To: req.To, Subject: req.Subject, Body: req.Body})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

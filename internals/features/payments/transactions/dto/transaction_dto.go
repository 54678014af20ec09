// file: internals/features/payments/transactions/dto/transaction_dto.go
package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	helper "referralku_backend/internals/helpers"
)

/* =========================================================
   FlexID: terima 42, "42", "" atau null
========================================================= */

type FlexID struct {
	Value int64
	Set   bool
}

func (f *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	var s string
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
	} else {
		s = string(b)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return errors.New("log_id harus berupa angka")
	}
	f.Value, f.Set = n, true
	return nil
}

/* =========================================================
   REQUEST: CreateTransaction
========================================================= */

type CreateTransactionRequest struct {
	Name          string  `json:"name" validate:"required,min=2"`
	Phone         string  `json:"phone" validate:"required,idphone"`
	Address       string  `json:"address"`
	Amount        float64 `json:"amount" validate:"gt=0"`
	ItemName      string  `json:"item_name" validate:"required,notblank"`
	ReferralCode  string  `json:"referral_code" validate:"omitempty,max=100"`
	CustomerEmail string  `json:"customer_email" validate:"omitempty,email"`
	LogID         FlexID  `json:"log_id"`
}

// DecodeCreateTransaction membaca body per field supaya tipe yang salah
// (mis. amount:"150000", name:12, log_id:"abc") dilaporkan sebagai FieldError.
// err != nil hanya kalau body bukan JSON object.
func DecodeCreateTransaction(body []byte) (CreateTransactionRequest, []helper.FieldError, error) {
	var req CreateTransactionRequest

	var raw map[string]json.RawMessage
	if err := sonic.Unmarshal(body, &raw); err != nil {
		return req, nil, err
	}

	fields := []struct {
		name    string
		dst     any
		message string
	}{
		{"name", &req.Name, "name harus berupa teks"},
		{"phone", &req.Phone, "phone harus berupa teks"},
		{"address", &req.Address, "address harus berupa teks"},
		{"amount", &req.Amount, "amount harus berupa angka"},
		{"item_name", &req.ItemName, "item_name harus berupa teks"},
		{"referral_code", &req.ReferralCode, "referral_code harus berupa teks"},
		{"customer_email", &req.CustomerEmail, "customer_email harus berupa teks"},
		{"log_id", &req.LogID, "log_id harus berupa angka"},
	}

	var errs []helper.FieldError
	for _, f := range fields {
		v, ok := raw[f.name]
		if !ok {
			continue
		}
		if err := sonic.Unmarshal(v, f.dst); err != nil {
			errs = append(errs, helper.FieldError{Field: f.name, Message: f.message})
		}
	}
	return req, errs, nil
}

// Normalize trim semua string sebelum validasi.
func (r *CreateTransactionRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
	r.ItemName = strings.TrimSpace(r.ItemName)
	r.ReferralCode = strings.TrimSpace(r.ReferralCode)
	r.CustomerEmail = strings.TrimSpace(r.CustomerEmail)
}

// GrossAmount dalam rupiah; valid hanya kalau Amount bilangan bulat positif.
func (r CreateTransactionRequest) GrossAmount() (int64, bool) {
	n := int64(r.Amount)
	if r.Amount <= 0 || float64(n) != r.Amount {
		return 0, false
	}
	return n, true
}

type CancelTransactionRequest struct {
	OrderID string `json:"order_id" validate:"required,notblank"`
}

/* =========================================================
   RESPONSE
========================================================= */

type CreateTransactionResponse struct {
	OrderID      string `json:"order_id"`
	Token        string `json:"token"`
	RedirectURL  string `json:"redirect_url"`
	ClientKey    string `json:"client_key"`
	IsProduction bool   `json:"is_production"`
}

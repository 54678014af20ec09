// file: internals/features/referrals/logs/dto/referral_log_dto.go
package dto

import (
	"encoding/json"
	"strings"
	"time"

	"referralku_backend/internals/features/referrals/logs/model"
	"referralku_backend/internals/features/referrals/logs/repository"
	"referralku_backend/internals/helpers/dbtime"
)

/* =========================================================
   PatchField tri-state (Unset / Null / Set(value))
========================================================= */

type PatchField[T any] struct {
	Set   bool `json:"-"`
	Null  bool `json:"-"`
	Value *T   `json:"-"`
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Set = true
	if string(b) == "null" {
		p.Null = true
		p.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

func Ptr[T any](v T) *T { return &v }

/* =========================================================
   REQUEST: LogClick (publik)
========================================================= */

type LogClickRequest struct {
	BookTitle    string  `json:"book_title" validate:"required,notblank,max=255"`
	ReferralCode *string `json:"referral_code" validate:"omitempty,max=100"`
	UserAgent    *string `json:"user_agent"`
	BuyerName    *string `json:"buyer_name" validate:"omitempty,max=255"`
	Address      *string `json:"address"`
	BuyerPhone   *string `json:"buyer_phone" validate:"omitempty,max=50"`
	Price        *int64  `json:"price" validate:"omitempty,gte=0"`
}

func (r LogClickRequest) ToModel(ip string, fallbackUA string) model.ReferralLogModel {
	m := model.ReferralLogModel{
		BookTitle:    strings.TrimSpace(r.BookTitle),
		ReferralCode: trimPtr(r.ReferralCode),
		UserAgent:    trimPtr(r.UserAgent),
		BuyerName:    trimPtr(r.BuyerName),
		Address:      trimPtr(r.Address),
		BuyerPhone:   trimPtr(r.BuyerPhone),
		Price:        r.Price,
		Status:       model.LogStatusUnpurchased,
	}
	if m.UserAgent == nil && fallbackUA != "" {
		m.UserAgent = Ptr(fallbackUA)
	}
	if ip != "" {
		m.IPAddress = Ptr(ip)
	}
	return m
}

/* =========================================================
   REQUEST: PatchLog (admin override)
   Field yang tidak dikirim (atau null) tidak disentuh.
========================================================= */

type PatchLogRequest struct {
	Status        PatchField[string] `json:"status"`
	OrderID       PatchField[string] `json:"order_id"`
	PaymentType   PatchField[string] `json:"payment_type"`
	PaidAt        PatchField[string] `json:"paid_at"`
	FailureReason PatchField[string] `json:"failure_reason"`
}

// ToUpdate memvalidasi & menerjemahkan ke repository.LogUpdate (tanpa guard terminal).
// Pesan error dikembalikan per field.
func (r PatchLogRequest) ToUpdate() (repository.LogUpdate, map[string]string) {
	var upd repository.LogUpdate
	bad := map[string]string{}

	if r.Status.Set {
		if r.Status.Value == nil {
			bad["status"] = "status tidak boleh null"
		} else if st, ok := model.ParseLogStatus(strings.TrimSpace(*r.Status.Value)); ok {
			upd.Status = &st
		} else {
			bad["status"] = "Status tidak valid"
		}
	}
	if v := setString(r.OrderID); v != nil {
		upd.GatewayOrderID = v
	}
	if v := setString(r.PaymentType); v != nil {
		upd.PaymentType = v
	}
	if v := setString(r.FailureReason); v != nil {
		upd.FailureReason = v
	}
	if r.PaidAt.Set && r.PaidAt.Value != nil {
		if t, ok := parsePaidAt(*r.PaidAt.Value); ok {
			upd.PaidAt = &t
		} else {
			bad["paid_at"] = "paid_at harus RFC3339 atau 'YYYY-MM-DD HH:MM:SS'"
		}
	}
	return upd, bad
}

func parsePaidAt(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return dbtime.ParseGatewayTime(s)
}

func setString(f PatchField[string]) *string {
	if !f.Set || f.Value == nil {
		return nil
	}
	v := strings.TrimSpace(*f.Value)
	if v == "" {
		return nil
	}
	return &v
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

/* =========================================================
   RESPONSE
========================================================= */

type ReferralLogResponse struct {
	ID                int64      `json:"id"`
	BookTitle         string     `json:"book_title"`
	ReferralCode      *string    `json:"referral_code"`
	UserAgent         *string    `json:"user_agent"`
	IPAddress         *string    `json:"ip_address"`
	WhatsappClickTime time.Time  `json:"whatsapp_click_time"`
	Status            string     `json:"status"`
	BuyerName         *string    `json:"buyer_name"`
	Address           *string    `json:"address"`
	BuyerPhone        *string    `json:"buyer_phone"`
	Price             *int64     `json:"price"`
	OrderID           *string    `json:"order_id"`
	PaymentType       *string    `json:"payment_type"`
	PaidAt            *time.Time `json:"paid_at"`
	FailureReason     *string    `json:"failure_reason"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func FromModel(m model.ReferralLogModel) ReferralLogResponse {
	return ReferralLogResponse{
		ID:                m.ID,
		BookTitle:         m.BookTitle,
		ReferralCode:      m.ReferralCode,
		UserAgent:         m.UserAgent,
		IPAddress:         m.IPAddress,
		WhatsappClickTime: m.WhatsappClickTime,
		Status:            string(m.Status),
		BuyerName:         m.BuyerName,
		Address:           m.Address,
		BuyerPhone:        m.BuyerPhone,
		Price:             m.Price,
		OrderID:           m.GatewayOrderID,
		PaymentType:       m.PaymentType,
		PaidAt:            m.PaidAt,
		FailureReason:     m.FailureReason,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func FromModels(rows []model.ReferralLogModel) []ReferralLogResponse {
	out := make([]ReferralLogResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}

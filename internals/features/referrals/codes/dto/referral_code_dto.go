package dto

import (
	"strings"
	"time"

	"referralku_backend/internals/features/referrals/codes/model"
)

type CreateReferralCodeRequest struct {
	Code     string `json:"kode_referal" validate:"notblank,max=100"`
	Username string `json:"username" validate:"notblank,max=100"`
}

func (r CreateReferralCodeRequest) ToModel() model.ReferralCodeModel {
	return model.ReferralCodeModel{
		Code:     strings.TrimSpace(r.Code),
		Username: strings.TrimSpace(r.Username),
	}
}

type ReferralCodeResponse struct {
	ID        int64     `json:"id"`
	Code      string    `json:"kode_referal"`
	Username  string    `json:"username"`
	Usage     int64     `json:"usage"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModel(m model.ReferralCodeModel) ReferralCodeResponse {
	return ReferralCodeResponse{
		ID:        m.ID,
		Code:      m.Code,
		Username:  m.Username,
		Usage:     m.Usage,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromModels(rows []model.ReferralCodeModel) []ReferralCodeResponse {
	out := make([]ReferralCodeResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, FromModel(m))
	}
	return out
}

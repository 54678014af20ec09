package model

import "time"

// referral_codes: kode referal milik affiliate + counter pemakaian.
type ReferralCodeModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code      string    `gorm:"column:code;size:100;not null;uniqueIndex" json:"kode_referal"`
	Username  string    `gorm:"column:username;size:100;not null" json:"username"`
	Usage     int64     `gorm:"column:usage;not null;default:0" json:"usage"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (ReferralCodeModel) TableName() string {
	return "referral_codes"
}

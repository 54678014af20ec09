package model

import "time"

// TokenBlacklist menyimpan jti token yang sudah logout sampai token itu kadaluarsa.
type TokenBlacklist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JTI       string    `gorm:"column:jti;size:64;not null;uniqueIndex" json:"jti"`
	ExpiredAt time.Time `gorm:"column:expired_at;not null;index" json:"expired_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}

package model

import "time"

// admin_users: akun dashboard admin (username + bcrypt hash).
type AdminUserModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"column:username;size:100;not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"column:password;size:255;not null" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
}

func (AdminUserModel) TableName() string {
	return "admin_users"
}

// file: internals/features/referrals/logs/model/referral_log_model.go
package model

import "time"

/*
  referral_logs = satu baris per klik link referral / percobaan beli.
  - id di-embed ke gateway order id (ORDER-<ts>-<id>) untuk korelasi webhook.
  - order_id diisi sekali saat transaksi Midtrans dibuat.
*/

type ReferralLogModel struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`

	BookTitle         string    `gorm:"column:book_title;size:255;not null" json:"book_title"`
	ReferralCode      *string   `gorm:"column:referral_code;size:100;index" json:"referral_code"`
	UserAgent         *string   `gorm:"column:user_agent;type:text" json:"user_agent"`
	IPAddress         *string   `gorm:"column:ip_address;size:100" json:"ip_address"`
	WhatsappClickTime time.Time `gorm:"column:whatsapp_click_time;not null;default:now()" json:"whatsapp_click_time"`

	Status LogStatus `gorm:"column:status;size:20;not null;default:'unpurchased';index" json:"status"`

	BuyerName  *string `gorm:"column:buyer_name;size:255" json:"buyer_name"`
	Address    *string `gorm:"column:address;type:text" json:"address"`
	BuyerPhone *string `gorm:"column:buyer_phone;size:50" json:"buyer_phone"`
	Price      *int64  `gorm:"column:price" json:"price"`

	// Payment (diisi transaction initiator & reconciler)
	GatewayOrderID *string    `gorm:"column:order_id;size:100;uniqueIndex" json:"order_id"`
	PaymentType    *string    `gorm:"column:payment_type;size:50" json:"payment_type"`
	PaidAt         *time.Time `gorm:"column:paid_at" json:"paid_at"`
	FailureReason  *string    `gorm:"column:failure_reason;size:100" json:"failure_reason"`

	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (ReferralLogModel) TableName() string {
	return "referral_logs"
}

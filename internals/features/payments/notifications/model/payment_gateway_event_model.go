// file: internals/features/payments/notifications/model/payment_gateway_event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
  payment_gateway_events = LOG WEBHOOK / NOTIFIKASI MIDTRANS
  - Satu row per panggilan webhook (termasuk yang ditolak).
  - Nyimpen raw payload, signature, dan hasil processing.
*/

type GatewayEventStatus string

const (
	GatewayEventStatusReceived  GatewayEventStatus = "received"
	GatewayEventStatusProcessed GatewayEventStatus = "processed"
	GatewayEventStatusIgnored   GatewayEventStatus = "ignored"
	GatewayEventStatusRejected  GatewayEventStatus = "rejected"
	GatewayEventStatusFailed    GatewayEventStatus = "failed"
)

const GatewayProviderMidtrans = "midtrans"

type PaymentGatewayEventModel struct {
	GatewayEventID uuid.UUID `gorm:"column:gateway_event_id;type:uuid;primaryKey" json:"gateway_event_id"`

	GatewayEventProvider   string  `gorm:"column:gateway_event_provider;size:30;not null" json:"gateway_event_provider"`
	GatewayEventType       *string `gorm:"column:gateway_event_type;size:50" json:"gateway_event_type"`
	GatewayEventExternalID *string `gorm:"column:gateway_event_external_id;size:100;index" json:"gateway_event_external_id"`
	GatewayEventLogID      *int64  `gorm:"column:gateway_event_log_id;index" json:"gateway_event_log_id"`

	GatewayEventGrossAmount decimal.NullDecimal `gorm:"column:gateway_event_gross_amount;type:numeric(18,2)" json:"gateway_event_gross_amount"`

	// Raw data (buat debug / replay)
	GatewayEventPayload   datatypes.JSON `gorm:"column:gateway_event_payload;type:jsonb" json:"gateway_event_payload"`
	GatewayEventSignature *string        `gorm:"column:gateway_event_signature" json:"gateway_event_signature"`

	// Status processing internal
	GatewayEventStatus GatewayEventStatus `gorm:"column:gateway_event_status;size:20;not null;default:'received'" json:"gateway_event_status"`
	GatewayEventError  *string            `gorm:"column:gateway_event_error" json:"gateway_event_error"`

	GatewayEventReceivedAt  time.Time  `gorm:"column:gateway_event_received_at;not null" json:"gateway_event_received_at"`
	GatewayEventProcessedAt *time.Time `gorm:"column:gateway_event_processed_at" json:"gateway_event_processed_at"`
}

func (PaymentGatewayEventModel) TableName() string {
	return "payment_gateway_events"
}

func (m *PaymentGatewayEventModel) BeforeCreate(tx *gorm.DB) error {
	if m.GatewayEventID == uuid.Nil {
		m.GatewayEventID = uuid.New()
	}
	if m.GatewayEventReceivedAt.IsZero() {
		m.GatewayEventReceivedAt = time.Now()
	}
	return nil
}

// file: internals/features/payments/notifications/dto/notification_dto.go
package dto

import "github.com/midtrans/midtrans-go/coreapi"

// Notification = payload HTTP notification Midtrans (field yang dipakai saja).
type Notification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	TransactionTime   string `json:"transaction_time"`
	TransactionID     string `json:"transaction_id"`
}

// FromStatusResponse: hasil GET status (coreapi) diperlakukan sama seperti notifikasi.
func FromStatusResponse(r *coreapi.TransactionStatusResponse) Notification {
	if r == nil {
		return Notification{}
	}
	return Notification{
		OrderID:           r.OrderID,
		StatusCode:        r.StatusCode,
		GrossAmount:       r.GrossAmount,
		SignatureKey:      r.SignatureKey,
		TransactionStatus: r.TransactionStatus,
		FraudStatus:       r.FraudStatus,
		PaymentType:       r.PaymentType,
		TransactionTime:   r.TransactionTime,
		TransactionID:     r.TransactionID,
	}
}

type WebhookAck struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	LogID   int64  `json:"log_id,omitempty"`
	Status  string `json:"status,omitempty"`
}

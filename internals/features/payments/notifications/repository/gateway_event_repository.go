package repository

import (
	"context"

	"gorm.io/gorm"

	"referralku_backend/internals/features/payments/notifications/model"
)

//go:generate mockgen -source=gateway_event_repository.go -destination=../../../../mocks/gateway_events/event_store_mock.go -package=gatewayeventsmock
type EventStore interface {
	Record(ctx context.Context, ev *model.PaymentGatewayEventModel) error
}

type GatewayEventRepository struct {
	db *gorm.DB
}

func NewGatewayEventRepository(db *gorm.DB) *GatewayEventRepository {
	return &GatewayEventRepository{db: db}
}

var _ EventStore = (*GatewayEventRepository)(nil)

func (r *GatewayEventRepository) Record(ctx context.Context, ev *model.PaymentGatewayEventModel) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"referralku_backend/internals/features/payments/gateway"
	notifController "referralku_backend/internals/features/payments/notifications/controller"
	"referralku_backend/internals/features/payments/notifications/repository"
	"referralku_backend/internals/features/payments/notifications/service"
	logRepo "referralku_backend/internals/features/referrals/logs/repository"
)

/*
Mount (prefix /api):
- public: POST /notification (webhook Midtrans, auth via signature)
- public: POST /midtrans/callback (alias URL lama)
- admin : POST /transaction-status/:order_id/sync
*/
func NotificationRoutes(
	r fiber.Router,
	store logRepo.Store,
	events repository.EventStore,
	gw gateway.Gateway,
	opt notifController.Options,
	requireAdmin fiber.Handler,
	log *zap.Logger,
) {
	rec := service.NewReconciler(store, log)
	ctl := notifController.NewNotificationController(rec, events, gw, opt, log)

	r.Post("/notification", ctl.Webhook)
	r.Post("/midtrans/callback", ctl.Webhook)
	r.Post("/transaction-status/:order_id/sync", requireAdmin, ctl.Sync)
}

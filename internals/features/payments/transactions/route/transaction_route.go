package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	trxController "referralku_backend/internals/features/payments/transactions/controller"
	"referralku_backend/internals/features/payments/transactions/service"
)

/*
Mount (prefix /api):
- public: POST /transaction (alias /create-transaction)
- admin : GET /transaction-status/:order_id, POST /cancel-transaction
*/
func TransactionRoutes(r fiber.Router, svc *service.TransactionService, requireAdmin fiber.Handler, log *zap.Logger) {
	ctl := trxController.NewTransactionController(svc, log)

	r.Post("/transaction", ctl.Create)
	r.Post("/create-transaction", ctl.Create) // alias lama

	r.Get("/transaction-status/:order_id", requireAdmin, ctl.Status)
	r.Post("/cancel-transaction", requireAdmin, ctl.Cancel)
}

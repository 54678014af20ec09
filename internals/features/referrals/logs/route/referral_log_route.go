package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	logController "referralku_backend/internals/features/referrals/logs/controller"
	"referralku_backend/internals/features/referrals/logs/repository"
)

/*
Mount (prefix /api):
- public: POST /log-click
- admin : GET /logs, GET /logs/:id, PATCH /logs/:id
*/
func ReferralLogRoutes(api fiber.Router, store repository.Store, requireAdmin fiber.Handler, log *zap.Logger) {
	ctl := logController.NewReferralLogController(store, log)

	api.Post("/log-click", ctl.LogClick)

	logs := api.Group("/logs", requireAdmin)
	logs.Get("/", ctl.List)
	logs.Get("/:id", ctl.Get)
	logs.Patch("/:id", ctl.Patch)
}

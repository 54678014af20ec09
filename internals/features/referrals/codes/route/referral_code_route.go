package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	codeController "referralku_backend/internals/features/referrals/codes/controller"
	"referralku_backend/internals/features/referrals/codes/repository"
)

/*
Mount (prefix /api/referal):
- public: PUT /use/:kode_referal
- admin : GET /, POST /, DELETE /:id
*/
func ReferralCodeRoutes(r fiber.Router, store repository.CodeStore, requireAdmin fiber.Handler, log *zap.Logger) {
	ctl := codeController.NewReferralCodeController(store, log)

	r.Put("/use/:kode_referal", ctl.Use)

	r.Get("/", requireAdmin, ctl.List)
	r.Post("/", requireAdmin, ctl.Create)
	r.Delete("/:id", requireAdmin, ctl.Delete)
}

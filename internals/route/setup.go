// file: internals/route/setup.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"referralku_backend/internals/configs"
	"referralku_backend/internals/features/payments/gateway"
	notifController "referralku_backend/internals/features/payments/notifications/controller"
	notifRepo "referralku_backend/internals/features/payments/notifications/repository"
	notifRoute "referralku_backend/internals/features/payments/notifications/route"
	txRoute "referralku_backend/internals/features/payments/transactions/route"
	txService "referralku_backend/internals/features/payments/transactions/service"
	codeRepo "referralku_backend/internals/features/referrals/codes/repository"
	codeRoute "referralku_backend/internals/features/referrals/codes/route"
	logRepo "referralku_backend/internals/features/referrals/logs/repository"
	logRoute "referralku_backend/internals/features/referrals/logs/route"
	authRepo "referralku_backend/internals/features/users/auth/repository"
	authRoute "referralku_backend/internals/features/users/auth/route"
	authService "referralku_backend/internals/features/users/auth/service"
	authMw "referralku_backend/internals/middlewares/auth"
)

var startTime time.Time

// Deps = semua yang dibutuhkan route, dibangun sekali di main.
type Deps struct {
	DB      *gorm.DB
	Cfg     configs.Config
	Log     *zap.Logger
	Gateway gateway.Gateway
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	log := d.Log

	// ===================== STORES & SERVICES =====================
	logs := logRepo.NewReferralLogRepository(d.DB)
	codes := codeRepo.NewReferralCodeRepository(d.DB)
	events := notifRepo.NewGatewayEventRepository(d.DB)

	authSvc := authService.NewAuthService(
		authRepo.NewAuthRepository(d.DB),
		authService.NewTokenService(d.Cfg.JWTSecret, d.Cfg.JWTTTL),
		log,
	)
	txSvc := txService.NewTransactionService(d.Gateway, logs, txService.Options{
		ClientKey:    d.Cfg.MidtransClientKey,
		IsProduction: d.Cfg.MidtransProduction,
		ReturnURL:    d.Cfg.MidtransReturnURL,
		Timeout:      d.Cfg.GatewayTimeout,
	}, log)

	requireAdmin := authMw.AuthMiddleware(authSvc.Tokens(), authSvc, log)

	// ===================== BASE =====================
	BaseRoutes(app, d.DB, d.Cfg)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// ===================== API =====================
	api := app.Group("/api")

	log.Info("[INFO] Mounting auth routes...")
	authRoute.AuthRoutes(api, authSvc, log)

	log.Info("[INFO] Mounting referral routes...")
	logRoute.ReferralLogRoutes(api, logs, requireAdmin, log)
	codeRoute.ReferralCodeRoutes(api.Group("/referal"), codes, requireAdmin, log)

	log.Info("[INFO] Mounting payment routes...")
	txRoute.TransactionRoutes(api, txSvc, requireAdmin, log)
	notifRoute.NotificationRoutes(api, logs, events, d.Gateway, notifController.Options{
		ServerKey: d.Cfg.MidtransServerKey,
		Timeout:   d.Cfg.WebhookTimeout,
	}, requireAdmin, log)
}

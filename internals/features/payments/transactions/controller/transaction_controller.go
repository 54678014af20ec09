// file: internals/features/payments/transactions/controller/transaction_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"referralku_backend/internals/features/payments/gateway"
	"referralku_backend/internals/features/payments/transactions/dto"
	"referralku_backend/internals/features/payments/transactions/service"
	logRepo "referralku_backend/internals/features/referrals/logs/repository"
	helper "referralku_backend/internals/helpers"
)

type TransactionController struct {
	Svc *service.TransactionService
	Log *zap.Logger
}

func NewTransactionController(svc *service.TransactionService, log *zap.Logger) *TransactionController {
	if log == nil {
		log = zap.NewNop()
	}
	return &TransactionController{Svc: svc, Log: log.Named("transactions")}
}

// POST /api/transaction
func (h *TransactionController) Create(c *fiber.Ctx) error {
	req, typeErrs, err := dto.DecodeCreateTransaction(c.Body())
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if len(typeErrs) > 0 {
		return helper.JsonValidationError(c, typeErrs)
	}

	res, err := h.Svc.Create(c.UserContext(), req)

	var pe *service.PersistError
	if errors.As(err, &pe) {
		return helper.JsonAccepted(c, "ORDER_ID_NOT_PERSISTED",
			"Transaksi dibuat, tetapi order id gagal disimpan ke log", res)
	}
	if err != nil {
		return h.writeError(c, err)
	}
	return helper.JsonCreated(c, "Transaksi berhasil dibuat", res)
}

// GET /api/transaction-status/:order_id
func (h *TransactionController) Status(c *fiber.Ctx) error {
	orderID := strings.TrimSpace(c.Params("order_id"))
	if orderID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Order ID diperlukan")
	}
	res, err := h.Svc.CheckStatus(c.UserContext(), orderID)
	if err != nil {
		return h.writeError(c, err)
	}
	return helper.JsonOK(c, "ok", res)
}

// POST /api/cancel-transaction
func (h *TransactionController) Cancel(c *fiber.Ctx) error {
	var req dto.CancelTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := helper.Validator().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Order ID diperlukan")
	}
	res, err := h.Svc.Cancel(c.UserContext(), req.OrderID)
	if err != nil {
		return h.writeError(c, err)
	}
	h.Log.Info("transaction cancelled", zap.String("order_id", req.OrderID), zap.Any("admin", c.Locals("user_id")))
	return helper.JsonOK(c, "Transaksi berhasil dibatalkan", res)
}

// writeError: ValidationError 400, not found 404, duplikat 409,
// gateway 400/401/500 sesuai klasifikasi.
func (h *TransactionController) writeError(c *fiber.Ctx, err error) error {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return helper.JsonValidationError(c, ve.Fields)
	}
	if errors.Is(err, logRepo.ErrLogNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Log tidak ditemukan")
	}
	if errors.Is(err, service.ErrTransactionExists) {
		return helper.JsonError(c, fiber.StatusConflict, "Transaksi untuk log ini sudah dibuat")
	}

	var ge *gateway.Error
	if errors.As(err, &ge) {
		switch ge.Kind {
		case gateway.KindRejected:
			return helper.JsonErrorCode(c, fiber.StatusBadRequest, "UPSTREAM_REJECTED", ge.Message)
		case gateway.KindUnauthorized:
			return helper.JsonErrorCode(c, fiber.StatusUnauthorized, "GATEWAY_UNAUTHORIZED", ge.Message)
		default:
			c.Set(fiber.HeaderRetryAfter, "5")
			return helper.JsonErrorCode(c, fiber.StatusInternalServerError, "UPSTREAM_UNAVAILABLE", ge.Message)
		}
	}

	h.Log.Error("[ERROR] transaction", zap.Error(err))
	return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses transaksi Midtrans")
}

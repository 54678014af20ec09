// file: internals/features/referrals/logs/controller/referral_log_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"referralku_backend/internals/features/referrals/logs/dto"
	"referralku_backend/internals/features/referrals/logs/model"
	"referralku_backend/internals/features/referrals/logs/repository"
	helper "referralku_backend/internals/helpers"
	"referralku_backend/internals/metrics"
)

type ReferralLogController struct {
	Store     repository.Store
	Validator *validator.Validate
	Log       *zap.Logger
}

func NewReferralLogController(store repository.Store, log *zap.Logger) *ReferralLogController {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReferralLogController{
		Store:     store,
		Validator: helper.Validator(),
		Log:       log.Named("referral_logs"),
	}
}

// POST /api/log-click
func (h *ReferralLogController) LogClick(c *fiber.Ctx) error {
	var req dto.LogClickRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	m := req.ToModel(clientIP(c), c.Get(fiber.HeaderUserAgent))
	if err := h.Store.Create(c.UserContext(), &m); err != nil {
		h.Log.Error("[ERROR] insert referral log", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Database error")
	}
	metrics.ReferralClicksTotal.Inc()

	return helper.JsonCreated(c, "Click logged successfully", fiber.Map{"id": m.ID})
}

// GET /api/logs?status=&referral_code=&page=&per_page=
func (h *ReferralLogController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)

	status := strings.TrimSpace(c.Query("status"))
	if status != "" {
		if _, ok := model.ParseLogStatus(status); !ok {
			return helper.JsonError(c, fiber.StatusBadRequest, "Status tidak valid")
		}
	}

	rows, total, err := h.Store.List(c.UserContext(), repository.ListFilter{
		Status:       status,
		ReferralCode: c.Query("referral_code"),
		Offset:       p.Offset,
		Limit:        p.Limit,
	})
	if err != nil {
		h.Log.Error("[ERROR] list referral logs", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Database error")
	}

	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p.Page, p.PerPage))
}

// GET /api/logs/:id
func (h *ReferralLogController) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	m, err := h.Store.FindByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repository.ErrLogNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Log tidak ditemukan")
		}
		h.Log.Error("[ERROR] get referral log", zap.Int64("id", id), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Database error")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(*m))
}

// PATCH /api/logs/:id
// Override manual oleh admin; boleh keluar dari status terminal.
func (h *ReferralLogController) Patch(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.PatchLogRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	upd, bad := req.ToUpdate()
	if len(bad) > 0 {
		return helper.JsonValidationError(c, toFieldErrors(bad))
	}

	m, err := h.Store.ApplyUpdate(c.UserContext(), id, upd)
	switch {
	case errors.Is(err, repository.ErrEmptyUpdate):
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	case errors.Is(err, repository.ErrLogNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Log tidak ditemukan")
	case errors.Is(err, repository.ErrOrderIDConflict):
		return helper.JsonError(c, fiber.StatusConflict, "Log sudah punya order_id lain")
	case errors.Is(err, repository.ErrOrderIDTaken):
		return helper.JsonError(c, fiber.StatusConflict, "order_id sudah dipakai log lain")
	case err != nil:
		h.Log.Error("[ERROR] patch referral log", zap.Int64("id", id), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Database error")
	}

	h.Log.Info("referral log updated manually",
		zap.Int64("id", id),
		zap.String("status", string(m.Status)),
		zap.Any("admin", c.Locals("user_id")),
	)
	return helper.JsonUpdated(c, "Status berhasil diperbarui", dto.FromModel(*m))
}

/* ===================== helpers ===================== */

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// clientIP: X-Forwarded-For (hop pertama) lalu IP socket.
func clientIP(c *fiber.Ctx) string {
	if xff := strings.TrimSpace(c.Get(fiber.HeaderXForwardedFor)); xff != "" {
		return strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
	}
	return c.IP()
}

func toFieldErrors(bad map[string]string) []helper.FieldError {
	out := make([]helper.FieldError, 0, len(bad))
	for _, f := range []string{"status", "paid_at"} {
		if msg, ok := bad[f]; ok {
			out = append(out, helper.FieldError{Field: f, Message: msg})
		}
	}
	return out
}

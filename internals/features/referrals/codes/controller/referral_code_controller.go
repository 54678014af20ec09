package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"referralku_backend/internals/features/referrals/codes/dto"
	"referralku_backend/internals/features/referrals/codes/repository"
	helper "referralku_backend/internals/helpers"
)

type ReferralCodeController struct {
	Store repository.CodeStore
	Log   *zap.Logger
}

func NewReferralCodeController(store repository.CodeStore, log *zap.Logger) *ReferralCodeController {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReferralCodeController{Store: store, Log: log.Named("referral_codes")}
}

// GET /api/referal
func (h *ReferralCodeController) List(c *fiber.Ctx) error {
	rows, err := h.Store.List(c.UserContext())
	if err != nil {
		h.Log.Error("[ERROR] list referral codes", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kode referal")
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

// POST /api/referal
func (h *ReferralCodeController) Create(c *fiber.Ctx) error {
	var req dto.CreateReferralCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := helper.Validator().Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}

	m := req.ToModel()
	if err := h.Store.Create(c.UserContext(), &m); err != nil {
		if errors.Is(err, repository.ErrCodeDuplicate) {
			return helper.JsonError(c, fiber.StatusConflict, "Kode referal sudah digunakan")
		}
		h.Log.Error("[ERROR] create referral code", zap.String("code", m.Code), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan kode referal")
	}
	return helper.JsonCreated(c, "Kode referal berhasil ditambahkan", dto.FromModel(m))
}

// DELETE /api/referal/:id
func (h *ReferralCodeController) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := h.Store.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kode referal tidak ditemukan")
		}
		h.Log.Error("[ERROR] delete referral code", zap.Int64("id", id), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus kode referal")
	}
	return helper.JsonDeleted(c, "Kode referal berhasil dihapus", fiber.Map{"id": id})
}

// PUT /api/referal/use/:kode_referal
func (h *ReferralCodeController) Use(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("kode_referal"))
	if code == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Kode referal tidak valid")
	}

	m, err := h.Store.IncrementUsage(c.UserContext(), code)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kode referal tidak ditemukan")
		}
		h.Log.Error("[ERROR] increment usage", zap.String("code", code), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menambah usage")
	}
	return helper.JsonUpdated(c, "Usage berhasil ditambahkan", dto.FromModel(*m))
}

package controller_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"referralku_backend/internals/features/referrals/codes/controller"
	"referralku_backend/internals/features/referrals/codes/model"
	"referralku_backend/internals/features/referrals/codes/repository"
	codesMock "referralku_backend/internals/mocks/referral_codes"
)

func setupApp(t *testing.T) (*fiber.App, *codesMock.MockCodeStore) {
	t.Helper()
	store := codesMock.NewMockCodeStore(gomock.NewController(t))
	ctl := controller.NewReferralCodeController(store, nil)

	app := fiber.New()
	app.Get("/referal", ctl.List)
	app.Post("/referal", ctl.Create)
	app.Delete("/referal/:id", ctl.Delete)
	app.Put("/referal/use/:kode_referal", ctl.Use)
	return app, store
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestReferralCodeController_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		app, store := setupApp(t)
		store.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *model.ReferralCodeModel) error {
				assert.Equal(t, "RIZKI10", m.Code)
				assert.Equal(t, "rizki", m.Username)
				m.ID = 7
				return nil
			}).Times(1)

		code, env := do(t, app, fiber.MethodPost, "/referal", `{"kode_referal":" RIZKI10 ","username":"rizki"}`)
		assert.Equal(t, fiber.StatusCreated, code)
		assert.True(t, env.Success)
		assert.Contains(t, string(env.Data), `"kode_referal":"RIZKI10"`)
	})

	t.Run("missing_fields_400", func(t *testing.T) {
		app, store := setupApp(t)
		store.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		code, env := do(t, app, fiber.MethodPost, "/referal", `{"kode_referal":"RIZKI10"}`)
		assert.Equal(t, fiber.StatusBadRequest, code)
		assert.False(t, env.Success)
	})

	t.Run("duplicate_409", func(t *testing.T) {
		app, store := setupApp(t)
		store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(repository.ErrCodeDuplicate).Times(1)

		code, _ := do(t, app, fiber.MethodPost, "/referal", `{"kode_referal":"RIZKI10","username":"rizki"}`)
		assert.Equal(t, fiber.StatusConflict, code)
	})
}

func TestReferralCodeController_Delete(t *testing.T) {
	t.Run("non_numeric_400", func(t *testing.T) {
		app, store := setupApp(t)
		store.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

		code, _ := do(t, app, fiber.MethodDelete, "/referal/abc", "")
		assert.Equal(t, fiber.StatusBadRequest, code)
	})

	t.Run("absent_404", func(t *testing.T) {
		app, store := setupApp(t)
		store.EXPECT().Delete(gomock.Any(), int64(5)).Return(repository.ErrCodeNotFound).Times(1)

		code, _ := do(t, app, fiber.MethodDelete, "/referal/5", "")
		assert.Equal(t, fiber.StatusNotFound, code)
	})

	t.Run("deleted", func(t *testing.T) {
		app, store := setupApp(t)
		store.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil).Times(1)

		code, env := do(t, app, fiber.MethodDelete, "/referal/5", "")
		assert.Equal(t, fiber.StatusOK, code)
		assert.True(t, env.Success)
	})
}

func TestReferralCodeController_Use(t *testing.T) {
	t.Run("incremented", func(t *testing.T) {
		app, store := setupApp(t)
		store.EXPECT().IncrementUsage(gomock.Any(), "RIZKI10").
			Return(&model.ReferralCodeModel{ID: 7, Code: "RIZKI10", Usage: 4}, nil).Times(1)

		code, env := do(t, app, fiber.MethodPut, "/referal/use/RIZKI10", "")
		assert.Equal(t, fiber.StatusOK, code)
		assert.Contains(t, string(env.Data), `"usage":4`)
	})

	t.Run("unknown_404", func(t *testing.T) {
		app, store := setupApp(t)
		store.EXPECT().IncrementUsage(gomock.Any(), "NOPE").Return(nil, repository.ErrCodeNotFound).Times(1)

		code, _ := do(t, app, fiber.MethodPut, "/referal/use/NOPE", "")
		assert.Equal(t, fiber.StatusNotFound, code)
	})
}

func TestReferralCodeController_List(t *testing.T) {
	app, store := setupApp(t)
	store.EXPECT().List(gomock.Any()).Return([]model.ReferralCodeModel{{ID: 1, Code: "A"}}, nil).Times(1)

	code, env := do(t, app, fiber.MethodGet, "/referal", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, string(env.Data), `"kode_referal":"A"`)
}

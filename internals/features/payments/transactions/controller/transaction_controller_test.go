package controller_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"referralku_backend/internals/features/payments/gateway"
	"referralku_backend/internals/features/payments/transactions/controller"
	"referralku_backend/internals/features/payments/transactions/service"
	"referralku_backend/internals/features/referrals/logs/model"
	gatewayMock "referralku_backend/internals/mocks/gateway"
	storeMock "referralku_backend/internals/mocks/referral_logs"
)

const validBody = `{"name":"Budi","phone":"08123456789","address":"Jl. Merdeka","amount":150000,"item_name":"Buku","log_id":"42"}`

func setupApp(t *testing.T) (*fiber.App, *gatewayMock.MockGateway, *storeMock.MockStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	gw := gatewayMock.NewMockGateway(ctrl)
	store := storeMock.NewMockStore(ctrl)

	svc := service.NewTransactionService(gw, store, service.Options{ClientKey: "client", Timeout: time.Second}, nil)
	ctl := controller.NewTransactionController(svc, nil)

	app := fiber.New()
	app.Post("/transaction", ctl.Create)
	return app, gw, store
}

type envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
	Errors    []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
	Data struct {
		OrderID string `json:"order_id"`
		Token   string `json:"token"`
	} `json:"data"`
}

func post(t *testing.T, app *fiber.App, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/transaction", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func existingLog(store *storeMock.MockStore) {
	store.EXPECT().FindByID(gomock.Any(), int64(42)).Return(&model.ReferralLogModel{ID: 42}, nil).Times(1)
}

func TestTransactionController_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		app, gw, store := setupApp(t)
		existingLog(store)
		gw.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(&snap.Response{Token: "tok"}, nil).Times(1)
		store.EXPECT().AttachGatewayOrderID(gomock.Any(), int64(42), gomock.Any()).Return(nil).Times(1)

		code, env := post(t, app, validBody)
		assert.Equal(t, fiber.StatusCreated, code)
		assert.True(t, env.Success)
		assert.Equal(t, "tok", env.Data.Token)
		assert.True(t, strings.HasSuffix(env.Data.OrderID, "-42"))
	})

	t.Run("validation_errors_listed", func(t *testing.T) {
		app, gw, _ := setupApp(t)
		gw.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Times(0)

		code, env := post(t, app, `{"name":"B","phone":"08123456789","amount":0,"item_name":"Buku","customer_email":"nope"}`)
		assert.Equal(t, fiber.StatusBadRequest, code)
		assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)
		fields := []string{}
		for _, e := range env.Errors {
			fields = append(fields, e.Field)
		}
		assert.ElementsMatch(t, []string{"name", "amount", "customer_email"}, fields)
	})

	t.Run("wrong_json_types_listed_per_field", func(t *testing.T) {
		cases := []struct {
			body  string
			field string
		}{
			{`{"name":"Budi","phone":"08123456789","amount":"150000","item_name":"Buku"}`, "amount"},
			{`{"name":"Budi","phone":"08123456789","amount":150000,"item_name":"Buku","log_id":"abc"}`, "log_id"},
			{`{"name":12,"phone":"08123456789","amount":150000,"item_name":"Buku"}`, "name"},
		}
		for _, tc := range cases {
			app, gw, store := setupApp(t)
			gw.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Times(0)
			store.EXPECT().FindByID(gomock.Any(), gomock.Any()).Times(0)

			code, env := post(t, app, tc.body)
			assert.Equal(t, fiber.StatusBadRequest, code, tc.field)
			assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode, tc.field)
			require.Len(t, env.Errors, 1, tc.field)
			assert.Equal(t, tc.field, env.Errors[0].Field)
		}
	})

	t.Run("non_object_body_400", func(t *testing.T) {
		app, gw, _ := setupApp(t)
		gw.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Times(0)

		code, env := post(t, app, `[1,2]`)
		assert.Equal(t, fiber.StatusBadRequest, code)
		assert.Equal(t, "BAD_REQUEST", env.ErrorCode)
	})

	t.Run("gateway_unauthorized_401", func(t *testing.T) {
		app, gw, store := setupApp(t)
		existingLog(store)
		gw.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
			Return(nil, &gateway.Error{Kind: gateway.KindUnauthorized, StatusCode: 401, Message: "API Key tidak valid"}).Times(1)

		code, env := post(t, app, validBody)
		assert.Equal(t, fiber.StatusUnauthorized, code)
		assert.Equal(t, "GATEWAY_UNAUTHORIZED", env.ErrorCode)
	})

	t.Run("gateway_rejected_400", func(t *testing.T) {
		app, gw, store := setupApp(t)
		existingLog(store)
		gw.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
			Return(nil, &gateway.Error{Kind: gateway.KindRejected, StatusCode: 400, Message: "gross_amount invalid"}).Times(1)

		code, env := post(t, app, validBody)
		assert.Equal(t, fiber.StatusBadRequest, code)
		assert.Equal(t, "UPSTREAM_REJECTED", env.ErrorCode)
		assert.Equal(t, "gross_amount invalid", env.Message)
	})

	t.Run("gateway_unavailable_500", func(t *testing.T) {
		app, gw, store := setupApp(t)
		existingLog(store)
		gw.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).
			Return(nil, &gateway.Error{Kind: gateway.KindUnavailable, Message: "Request timeout ke server Midtrans"}).Times(1)

		code, env := post(t, app, validBody)
		assert.Equal(t, fiber.StatusInternalServerError, code)
		assert.Equal(t, "UPSTREAM_UNAVAILABLE", env.ErrorCode)
	})

	t.Run("persist_failure_202", func(t *testing.T) {
		app, gw, store := setupApp(t)
		existingLog(store)
		gw.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(&snap.Response{Token: "tok"}, nil).Times(1)
		store.EXPECT().AttachGatewayOrderID(gomock.Any(), int64(42), gomock.Any()).Return(errors.New("db down")).Times(1)

		code, env := post(t, app, validBody)
		assert.Equal(t, fiber.StatusAccepted, code)
		assert.Equal(t, "ORDER_ID_NOT_PERSISTED", env.ErrorCode)
		assert.Equal(t, "tok", env.Data.Token)
	})

	t.Run("duplicate_transaction_409", func(t *testing.T) {
		app, gw, store := setupApp(t)
		oid := "ORDER-1-42"
		store.EXPECT().FindByID(gomock.Any(), int64(42)).Return(&model.ReferralLogModel{ID: 42, GatewayOrderID: &oid}, nil).Times(1)
		gw.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Times(0)

		code, _ := post(t, app, validBody)
		assert.Equal(t, fiber.StatusConflict, code)
	})
}

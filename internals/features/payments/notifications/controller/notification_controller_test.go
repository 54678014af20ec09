package controller_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"referralku_backend/internals/features/payments/gateway"
	"referralku_backend/internals/features/payments/notifications/controller"
	eventModel "referralku_backend/internals/features/payments/notifications/model"
	"referralku_backend/internals/features/payments/notifications/service"
	logModel "referralku_backend/internals/features/referrals/logs/model"
	logRepo "referralku_backend/internals/features/referrals/logs/repository"
	gatewayMock "referralku_backend/internals/mocks/gateway"
	eventsMock "referralku_backend/internals/mocks/gateway_events"
	storeMock "referralku_backend/internals/mocks/referral_logs"
)

const serverKey = "SB-Mid-server-test"

type fixture struct {
	app    *fiber.App
	store  *storeMock.MockStore
	events *eventsMock.MockEventStore
	gw     *gatewayMock.MockGateway
}

func setupApp(t *testing.T) fixture {
	t.Helper()
	return setupAppWithTimeout(t, time.Second)
}

func setupAppWithTimeout(t *testing.T, timeout time.Duration) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := storeMock.NewMockStore(ctrl)
	events := eventsMock.NewMockEventStore(ctrl)
	gw := gatewayMock.NewMockGateway(ctrl)

	rec := service.NewReconciler(store, nil)
	ctl := controller.NewNotificationController(rec, events, gw, controller.Options{
		ServerKey: serverKey,
		Timeout:   timeout,
	}, nil)

	app := fiber.New()
	app.Post("/notification", ctl.Webhook)
	app.Post("/transaction-status/:order_id/sync", ctl.Sync)
	return fixture{app: app, store: store, events: events, gw: gw}
}

func body(orderID, ts, sig string) string {
	return fmt.Sprintf(`{"order_id":%q,"status_code":"200","gross_amount":"150000.00","signature_key":%q,"transaction_status":%q,"payment_type":"qris","transaction_time":"2024-11-14 17:05:00"}`,
		orderID, sig, ts)
}

func signed(orderID, ts string) string {
	return body(orderID, ts, gateway.Signature(orderID, "200", "150000.00", serverKey))
}

type ackBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	LogID   int64  `json:"log_id"`
	Status  string `json:"status"`
}

func send(t *testing.T, app *fiber.App, path, payload string) (int, ackBody) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out ackBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func expectEvent(t *testing.T, f fixture, want eventModel.GatewayEventStatus) *eventModel.PaymentGatewayEventModel {
	t.Helper()
	got := &eventModel.PaymentGatewayEventModel{}
	f.events.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev *eventModel.PaymentGatewayEventModel) error {
			assert.Equal(t, want, ev.GatewayEventStatus)
			*got = *ev
			return nil
		}).Times(1)
	return got
}

// ======================= SIGNATURE =======================

func TestWebhook_InvalidSignatureRejectedBeforeStore(t *testing.T) {
	f := setupApp(t)
	f.store.EXPECT().ApplyUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	ev := expectEvent(t, f, eventModel.GatewayEventStatusRejected)

	code, out := send(t, f.app, "/notification", body("ORDER-1700000000000-999999", "settlement", "deadbeef"))
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.False(t, out.Success)
	assert.Equal(t, "Invalid signature", out.Message)
	assert.Equal(t, eventModel.GatewayEventStatusRejected, ev.GatewayEventStatus)
	assert.Nil(t, ev.GatewayEventProcessedAt)
}

func TestWebhook_SignatureOverOtherAmountRejected(t *testing.T) {
	f := setupApp(t)
	f.store.EXPECT().ApplyUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	expectEvent(t, f, eventModel.GatewayEventStatusRejected)

	sig := gateway.Signature("ORDER-1700000000000-42", "200", "1.00", serverKey)
	code, _ := send(t, f.app, "/notification", body("ORDER-1700000000000-42", "settlement", sig))
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestWebhook_MalformedBody403(t *testing.T) {
	f := setupApp(t)
	f.store.EXPECT().ApplyUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	ev := expectEvent(t, f, eventModel.GatewayEventStatusRejected)

	code, out := send(t, f.app, "/notification", `{"order_id":`)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.False(t, out.Success)
	assert.Nil(t, ev.GatewayEventPayload)
}

// ======================= ALWAYS 200 AFTER VERIFY =======================

func TestWebhook_ValidSignatureUnknownLog200(t *testing.T) {
	f := setupApp(t)
	f.store.EXPECT().ApplyUpdate(gomock.Any(), int64(999999), gomock.Any()).
		Return(nil, logRepo.ErrLogNotFound).Times(1)
	ev := expectEvent(t, f, eventModel.GatewayEventStatusIgnored)

	code, out := send(t, f.app, "/notification", signed("ORDER-1700000000000-999999", "settlement"))
	assert.Equal(t, fiber.StatusOK, code)
	assert.True(t, out.Success)
	assert.Equal(t, eventModel.GatewayEventStatusIgnored, ev.GatewayEventStatus)
}

func TestWebhook_Applied(t *testing.T) {
	f := setupApp(t)
	f.store.EXPECT().ApplyUpdate(gomock.Any(), int64(42), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, upd logRepo.LogUpdate) (*logModel.ReferralLogModel, error) {
			return &logModel.ReferralLogModel{ID: 42, Status: *upd.Status}, nil
		}).Times(1)
	ev := expectEvent(t, f, eventModel.GatewayEventStatusProcessed)

	code, out := send(t, f.app, "/notification", signed("ORDER-1700000000000-42", "settlement"))
	assert.Equal(t, fiber.StatusOK, code)
	assert.True(t, out.Success)
	assert.Equal(t, int64(42), out.LogID)
	assert.Equal(t, "purchased", out.Status)

	assert.Equal(t, eventModel.GatewayEventStatusProcessed, ev.GatewayEventStatus)
	require.NotNil(t, ev.GatewayEventLogID)
	assert.Equal(t, int64(42), *ev.GatewayEventLogID)
	assert.True(t, ev.GatewayEventGrossAmount.Valid)
	assert.Equal(t, "150000", ev.GatewayEventGrossAmount.Decimal.String())
	assert.NotNil(t, ev.GatewayEventProcessedAt)
}

func TestWebhook_UnprocessableOrderID200(t *testing.T) {
	f := setupApp(t)
	f.store.EXPECT().ApplyUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	expectEvent(t, f, eventModel.GatewayEventStatusIgnored)

	code, out := send(t, f.app, "/notification", signed("ORDER-1700000000000", "settlement"))
	assert.Equal(t, fiber.StatusOK, code)
	assert.True(t, out.Success)
}

func TestWebhook_StorePanicStill200(t *testing.T) {
	f := setupApp(t)
	f.store.EXPECT().ApplyUpdate(gomock.Any(), int64(42), gomock.Any()).
		DoAndReturn(func(context.Context, int64, logRepo.LogUpdate) (*logModel.ReferralLogModel, error) {
			panic("nil pointer somewhere")
		}).Times(1)
	ev := expectEvent(t, f, eventModel.GatewayEventStatusFailed)

	code, out := send(t, f.app, "/notification", signed("ORDER-1700000000000-42", "pending"))
	assert.Equal(t, fiber.StatusOK, code)
	assert.True(t, out.Success)
	assert.Equal(t, eventModel.GatewayEventStatusFailed, ev.GatewayEventStatus)
	require.NotNil(t, ev.GatewayEventError)
}

func TestWebhook_EventWriteFailureIgnored(t *testing.T) {
	f := setupApp(t)
	f.store.EXPECT().ApplyUpdate(gomock.Any(), int64(42), gomock.Any()).
		Return(&logModel.ReferralLogModel{ID: 42, Status: logModel.LogStatusPending}, nil).Times(1)
	f.events.EXPECT().Record(gomock.Any(), gomock.Any()).Return(errors.New("disk full")).Times(1)

	code, out := send(t, f.app, "/notification", signed("ORDER-1700000000000-42", "pending"))
	assert.Equal(t, fiber.StatusOK, code)
	assert.True(t, out.Success)
}

func TestWebhook_SlowEventStoreDoesNotDelayAck(t *testing.T) {
	f := setupAppWithTimeout(t, 100*time.Millisecond)
	f.store.EXPECT().ApplyUpdate(gomock.Any(), int64(42), gomock.Any()).
		Return(&logModel.ReferralLogModel{ID: 42, Status: logModel.LogStatusPending}, nil).Times(1)

	hadDeadline := make(chan bool, 1)
	f.events.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *eventModel.PaymentGatewayEventModel) error {
			_, ok := ctx.Deadline()
			hadDeadline <- ok
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(3 * time.Second):
				return nil
			}
		}).Times(1)

	start := time.Now()
	code, out := send(t, f.app, "/notification", signed("ORDER-1700000000000-42", "pending"))
	elapsed := time.Since(start)

	assert.Equal(t, fiber.StatusOK, code)
	assert.True(t, out.Success)
	assert.Less(t, elapsed, time.Second)
	assert.True(t, <-hadDeadline)
}

// ======================= SYNC =======================

func TestSync(t *testing.T) {
	t.Run("applied", func(t *testing.T) {
		f := setupApp(t)
		f.gw.EXPECT().CheckStatus(gomock.Any(), "ORDER-1700000000000-42").
			Return(&coreapi.TransactionStatusResponse{
				OrderID:           "ORDER-1700000000000-42",
				StatusCode:        "200",
				GrossAmount:       "150000.00",
				TransactionStatus: "expire",
			}, nil).Times(1)
		f.store.EXPECT().ApplyUpdate(gomock.Any(), int64(42), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, upd logRepo.LogUpdate) (*logModel.ReferralLogModel, error) {
				assert.Equal(t, logModel.LogStatusFailed, *upd.Status)
				return &logModel.ReferralLogModel{ID: 42, Status: *upd.Status}, nil
			}).Times(1)
		ev := expectEvent(t, f, eventModel.GatewayEventStatusProcessed)

		code, out := send(t, f.app, "/transaction-status/ORDER-1700000000000-42/sync", "")
		assert.Equal(t, fiber.StatusOK, code)
		assert.True(t, out.Success)
		require.NotNil(t, ev.GatewayEventType)
		assert.Equal(t, "status_sync", *ev.GatewayEventType)
	})

	t.Run("log_missing_404", func(t *testing.T) {
		f := setupApp(t)
		f.gw.EXPECT().CheckStatus(gomock.Any(), gomock.Any()).
			Return(&coreapi.TransactionStatusResponse{TransactionStatus: "settlement"}, nil).Times(1)
		f.store.EXPECT().ApplyUpdate(gomock.Any(), int64(7), gomock.Any()).
			Return(nil, logRepo.ErrLogNotFound).Times(1)
		expectEvent(t, f, eventModel.GatewayEventStatusIgnored)

		code, _ := send(t, f.app, "/transaction-status/ORDER-1700000000000-7/sync", "")
		assert.Equal(t, fiber.StatusNotFound, code)
	})

	t.Run("gateway_unavailable_500", func(t *testing.T) {
		f := setupApp(t)
		f.gw.EXPECT().CheckStatus(gomock.Any(), gomock.Any()).
			Return(nil, &gateway.Error{Kind: gateway.KindUnavailable, Message: "Request timeout ke server Midtrans"}).Times(1)
		f.store.EXPECT().ApplyUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		f.events.EXPECT().Record(gomock.Any(), gomock.Any()).Times(0)

		code, out := send(t, f.app, "/transaction-status/ORDER-1700000000000-42/sync", "")
		assert.Equal(t, fiber.StatusInternalServerError, code)
		assert.False(t, out.Success)
	})
}

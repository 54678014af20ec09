// file: internals/features/payments/notifications/controller/notification_controller.go
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"referralku_backend/internals/features/payments/gateway"
	"referralku_backend/internals/features/payments/notifications/dto"
	"referralku_backend/internals/features/payments/notifications/model"
	"referralku_backend/internals/features/payments/notifications/repository"
	"referralku_backend/internals/features/payments/notifications/service"
	helper "referralku_backend/internals/helpers"
	"referralku_backend/internals/metrics"
)

const (
	eventTypeNotification = "notification"
	eventTypeStatusSync   = "status_sync"
)

type Options struct {
	ServerKey string
	Timeout   time.Duration
}

type NotificationController struct {
	Reconciler *service.Reconciler
	Events     repository.EventStore
	Gateway    gateway.Gateway
	Log        *zap.Logger

	serverKey string
	timeout   time.Duration
	now       func() time.Time
}

func NewNotificationController(
	rec *service.Reconciler,
	events repository.EventStore,
	gw gateway.Gateway,
	opt Options,
	log *zap.Logger,
) *NotificationController {
	if log == nil {
		log = zap.NewNop()
	}
	if opt.Timeout <= 0 {
		opt.Timeout = 10 * time.Second
	}
	return &NotificationController{
		Reconciler: rec,
		Events:     events,
		Gateway:    gw,
		Log:        log.Named("notifications"),
		serverKey:  opt.ServerKey,
		timeout:    opt.Timeout,
		now:        time.Now,
	}
}

/* =========================================================
   POST /api/notification  (webhook Midtrans)
========================================================= */

// Webhook: body tidak terbaca / signature salah -> 403 tanpa menyentuh DB log.
// Setelah signature valid, respons selalu 200 supaya Midtrans tidak retry terus.
func (h *NotificationController) Webhook(c *fiber.Ctx) error {
	raw := append([]byte(nil), c.Body()...)
	receivedAt := h.now()

	var n dto.Notification
	if err := sonic.Unmarshal(raw, &n); err != nil {
		h.Log.Warn("malformed notification body", zap.Error(err))
		metrics.NotificationsTotal.WithLabelValues("rejected").Inc()
		h.record(c.UserContext(), eventTypeNotification, nil, n, receivedAt,
			model.GatewayEventStatusRejected, "malformed body")
		return helper.JsonError(c, fiber.StatusForbidden, "Invalid notification payload")
	}

	if !gateway.VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, h.serverKey, n.SignatureKey) {
		h.Log.Warn("invalid signature",
			zap.String("order_id", n.OrderID),
			zap.String("transaction_status", n.TransactionStatus),
		)
		metrics.NotificationsTotal.WithLabelValues("rejected").Inc()
		h.record(c.UserContext(), eventTypeNotification, raw, n, receivedAt,
			model.GatewayEventStatusRejected, "invalid signature")
		return helper.JsonError(c, fiber.StatusForbidden, "Invalid signature")
	}

	h.Log.Info("notification received",
		zap.String("order_id", n.OrderID),
		zap.String("transaction_status", n.TransactionStatus),
		zap.String("fraud_status", n.FraudStatus),
	)

	res, err := h.reconcile(c.UserContext(), n)
	metrics.NotificationsTotal.WithLabelValues(string(res.Outcome)).Inc()
	h.record(c.UserContext(), eventTypeNotification, raw, n, receivedAt, eventStatusOf(res.Outcome), errText(err))

	return c.Status(fiber.StatusOK).JSON(ackOf(res))
}

/* =========================================================
   POST /api/transaction-status/:order_id/sync  (admin)
========================================================= */

// Sync menarik status terbaru dari Midtrans lalu menerapkannya seperti notifikasi.
// Data datang dari API server-to-server, jadi tidak ada cek signature.
func (h *NotificationController) Sync(c *fiber.Ctx) error {
	orderID := strings.TrimSpace(c.Params("order_id"))
	if orderID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Order ID diperlukan")
	}
	receivedAt := h.now()

	st, err := h.Gateway.CheckStatus(c.UserContext(), orderID)
	if err != nil {
		var ge *gateway.Error
		if errors.As(err, &ge) {
			switch ge.Kind {
			case gateway.KindRejected:
				return helper.JsonErrorCode(c, fiber.StatusBadRequest, "UPSTREAM_REJECTED", ge.Message)
			case gateway.KindUnauthorized:
				return helper.JsonErrorCode(c, fiber.StatusUnauthorized, "GATEWAY_UNAUTHORIZED", ge.Message)
			}
			c.Set(fiber.HeaderRetryAfter, "5")
			return helper.JsonErrorCode(c, fiber.StatusInternalServerError, "UPSTREAM_UNAVAILABLE", ge.Message)
		}
		h.Log.Error("[ERROR] check status", zap.String("order_id", orderID), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil status transaksi")
	}

	n := dto.FromStatusResponse(st)
	if strings.TrimSpace(n.OrderID) == "" {
		n.OrderID = orderID
	}
	raw, _ := sonic.Marshal(n)

	res, err := h.reconcile(c.UserContext(), n)
	metrics.NotificationsTotal.WithLabelValues(string(res.Outcome)).Inc()
	h.record(c.UserContext(), eventTypeStatusSync, raw, n, receivedAt, eventStatusOf(res.Outcome), errText(err))

	ack := ackOf(res)
	switch res.Outcome {
	case service.OutcomeApplied:
		return helper.JsonUpdated(c, "Status log disinkronkan", ack)
	case service.OutcomeStale:
		return helper.JsonOK(c, "Log sudah berstatus final, tidak diubah", ack)
	case service.OutcomeNotFound:
		return helper.JsonError(c, fiber.StatusNotFound, "Log untuk order ini tidak ditemukan")
	case service.OutcomeUnprocessable:
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Order ID tidak memuat log id")
	case service.OutcomeUnrecognized:
		return helper.JsonOK(c, "Status transaksi tidak dikenali, log tidak diubah", ack)
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyinkronkan status")
	}
}

/* =========================================================
   Helpers
========================================================= */

// reconcile membungkus Reconcile dengan timeout dan recover; panic dianggap failed.
func (h *NotificationController) reconcile(ctx context.Context, n dto.Notification) (res service.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.Log.Error("[PANIC] reconcile notification",
				zap.String("order_id", n.OrderID),
				zap.Any("panic", r),
			)
			res = service.Result{Outcome: service.OutcomeFailed}
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return h.Reconciler.Reconcile(ctx, n)
}

// record menulis audit event; gagal tulis atau timeout hanya di-log.
func (h *NotificationController) record(
	ctx context.Context,
	eventType string,
	raw []byte,
	n dto.Notification,
	receivedAt time.Time,
	status model.GatewayEventStatus,
	errMsg string,
) {
	if h.Events == nil {
		return
	}

	et := eventType
	ev := &model.PaymentGatewayEventModel{
		GatewayEventProvider:   model.GatewayProviderMidtrans,
		GatewayEventType:       &et,
		GatewayEventStatus:     status,
		GatewayEventReceivedAt: receivedAt,
	}
	if len(raw) > 0 {
		ev.GatewayEventPayload = datatypes.JSON(raw)
	}
	if oid := strings.TrimSpace(n.OrderID); oid != "" {
		ev.GatewayEventExternalID = &oid
		if id, ok := gateway.ExtractLogID(oid); ok {
			ev.GatewayEventLogID = &id
		}
	}
	if sig := strings.TrimSpace(n.SignatureKey); sig != "" {
		ev.GatewayEventSignature = &sig
	}
	if g, err := decimal.NewFromString(strings.TrimSpace(n.GrossAmount)); err == nil {
		ev.GatewayEventGrossAmount = decimal.NullDecimal{Decimal: g, Valid: true}
	}
	if errMsg != "" {
		ev.GatewayEventError = &errMsg
	}
	if status != model.GatewayEventStatusRejected {
		processedAt := h.now()
		ev.GatewayEventProcessedAt = &processedAt
	}

	// insert event ikut batas waktu webhook; ack tidak menunggu DB yang macet.
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("panic: %v", r)
			}
		}()
		done <- h.Events.Record(ctx, ev)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		h.Log.Error("[ERROR] record gateway event",
			zap.String("order_id", n.OrderID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}
}

func eventStatusOf(o service.Outcome) model.GatewayEventStatus {
	switch o {
	case service.OutcomeApplied:
		return model.GatewayEventStatusProcessed
	case service.OutcomeFailed:
		return model.GatewayEventStatusFailed
	default:
		return model.GatewayEventStatusIgnored
	}
}

func ackOf(res service.Result) dto.WebhookAck {
	ack := dto.WebhookAck{Success: true, Message: "Notification received", LogID: res.LogID}
	if res.Outcome == service.OutcomeApplied {
		ack.Message = "Notification processed"
		ack.Status = string(res.Status)
	}
	return ack
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"referralku_backend/internals/features/payments/gateway"
	"referralku_backend/internals/features/payments/notifications/dto"
	logModel "referralku_backend/internals/features/referrals/logs/model"
	logRepo "referralku_backend/internals/features/referrals/logs/repository"
	"referralku_backend/internals/helpers/dbtime"
)

var (
	// ErrUnprocessable: order id tidak mengandung id log.
	ErrUnprocessable = errors.New("log id not extractable from order id")
	// ErrUnrecognizedStatus: kombinasi transaction_status/fraud_status tidak dikenal.
	ErrUnrecognizedStatus = errors.New("unrecognized transaction status")
)

type Outcome string

const (
	OutcomeApplied       Outcome = "applied"
	OutcomeUnprocessable Outcome = "unprocessable"
	OutcomeUnrecognized  Outcome = "unrecognized"
	OutcomeNotFound      Outcome = "not_found"
	OutcomeStale         Outcome = "stale"
	OutcomeFailed        Outcome = "failed"
)

type Result struct {
	Outcome Outcome
	LogID   int64
	Status  logModel.LogStatus
}

/* =========================================================
   Status mapping
========================================================= */

// MapStatus memetakan (transaction_status, fraud_status) ke status log.
// ok=false untuk kombinasi di luar tabel; pemanggil tidak boleh meng-update.
func MapStatus(transactionStatus, fraudStatus string) (logModel.LogStatus, bool) {
	ts := strings.ToLower(strings.TrimSpace(transactionStatus))
	fs := strings.ToLower(strings.TrimSpace(fraudStatus))

	switch ts {
	case "capture":
		switch fs {
		case "challenge":
			return logModel.LogStatusChallenge, true
		case "accept":
			return logModel.LogStatusPurchased, true
		}
	case "settlement":
		return logModel.LogStatusPurchased, true
	case "cancel", "deny", "expire":
		return logModel.LogStatusFailed, true
	case "pending":
		return logModel.LogStatusPending, true
	}
	return logModel.LogStatusUnpurchased, false
}

/* =========================================================
   Reconciler
========================================================= */

type Reconciler struct {
	store logRepo.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewReconciler(store logRepo.Store, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{store: store, log: log.Named("reconciler"), now: time.Now}
}

// BuildUpdate menyusun LogUpdate guarded untuk status hasil mapping.
func (r *Reconciler) BuildUpdate(n dto.Notification, st logModel.LogStatus) logRepo.LogUpdate {
	upd := logRepo.LogUpdate{Status: &st, Guarded: true}

	if oid := strings.TrimSpace(n.OrderID); oid != "" {
		upd.FillGatewayOrderID = &oid
	}
	if pt := strings.TrimSpace(n.PaymentType); pt != "" {
		upd.PaymentType = &pt
	}
	switch st {
	case logModel.LogStatusPurchased:
		// paid_at hanya diisi sekali; settlement setelah capture tidak menimpa.
		paidAt := dbtime.GatewayTimeOr(n.TransactionTime, r.now())
		upd.FillPaidAt = &paidAt
	case logModel.LogStatusFailed:
		reason := strings.ToLower(strings.TrimSpace(n.TransactionStatus))
		upd.FailureReason = &reason
	}
	return upd
}

// Reconcile menerapkan notifikasi yang SUDAH terverifikasi ke log terkait.
// Result.Outcome selalu terisi; error dipakai untuk logging oleh pemanggil.
func (r *Reconciler) Reconcile(ctx context.Context, n dto.Notification) (Result, error) {
	logID, ok := gateway.ExtractLogID(strings.TrimSpace(n.OrderID))
	if !ok {
		r.log.Warn("cannot extract log_id from order_id", zap.String("order_id", n.OrderID))
		return Result{Outcome: OutcomeUnprocessable}, ErrUnprocessable
	}

	st, ok := MapStatus(n.TransactionStatus, n.FraudStatus)
	if !ok {
		r.log.Warn("unrecognized transaction status",
			zap.Int64("log_id", logID),
			zap.String("transaction_status", n.TransactionStatus),
			zap.String("fraud_status", n.FraudStatus),
		)
		return Result{Outcome: OutcomeUnrecognized, LogID: logID, Status: st}, ErrUnrecognizedStatus
	}

	res := Result{LogID: logID, Status: st}
	cur, err := r.store.ApplyUpdate(ctx, logID, r.BuildUpdate(n, st))
	switch {
	case errors.Is(err, logRepo.ErrTerminalState):
		res.Outcome = OutcomeStale
		if cur != nil {
			res.Status = cur.Status
		}
		r.log.Info("stale notification ignored",
			zap.Int64("log_id", logID),
			zap.String("incoming", string(st)),
			zap.String("current", string(res.Status)),
		)
		return res, err
	case errors.Is(err, logRepo.ErrLogNotFound):
		res.Outcome = OutcomeNotFound
		r.log.Warn("no rows updated for log_id", zap.Int64("log_id", logID))
		return res, err
	case err != nil:
		res.Outcome = OutcomeFailed
		r.log.Error("[ERROR] apply notification", zap.Int64("log_id", logID), zap.Error(err))
		return res, err
	}

	res.Outcome = OutcomeApplied
	r.log.Info("log status updated",
		zap.Int64("log_id", logID),
		zap.String("status", string(st)),
		zap.String("order_id", n.OrderID),
	)
	return res, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"go.uber.org/zap"

	"referralku_backend/internals/features/payments/gateway"
	"referralku_backend/internals/features/payments/transactions/dto"
	logRepo "referralku_backend/internals/features/referrals/logs/repository"
	helper "referralku_backend/internals/helpers"
	"referralku_backend/internals/metrics"
)

var (
	// ErrTransactionExists: log sudah punya gateway order id, satu transaksi per log.
	ErrTransactionExists = errors.New("transaction already created for this log")
)

// ValidationError membawa daftar error per field; tidak ada efek samping yang sudah terjadi.
type ValidationError struct {
	Fields []helper.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// PersistError: transaksi sudah dibuat di gateway, tapi order id gagal disimpan ke log.
type PersistError struct {
	LogID int64
	Err   error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("order id not persisted for log %d: %v", e.LogID, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

/* =========================================================
   Service
========================================================= */

type Options struct {
	ClientKey    string
	IsProduction bool
	ReturnURL    string
	Timeout      time.Duration // batas tunggu call gateway, default 30s
}

type TransactionService struct {
	gw    gateway.Gateway
	store logRepo.Store
	opt   Options
	log   *zap.Logger
	now   func() time.Time
}

func NewTransactionService(gw gateway.Gateway, store logRepo.Store, opt Options, log *zap.Logger) *TransactionService {
	if opt.Timeout <= 0 {
		opt.Timeout = 30 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &TransactionService{gw: gw, store: store, opt: opt, log: log.Named("transactions"), now: time.Now}
}

// Create memvalidasi input, membuat transaksi Snap, lalu menempelkan order id ke log.
// Saat langkah terakhir gagal, response tetap dikembalikan bersama *PersistError.
func (s *TransactionService) Create(ctx context.Context, req dto.CreateTransactionRequest) (*dto.CreateTransactionResponse, error) {
	req.Normalize()
	gross, err := s.validate(req)
	if err != nil {
		metrics.TransactionsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	var logID int64
	if req.LogID.Set {
		logID = req.LogID.Value
		rec, err := s.store.FindByID(ctx, logID)
		if err != nil {
			return nil, err
		}
		if rec.GatewayOrderID != nil && *rec.GatewayOrderID != "" {
			return nil, ErrTransactionExists
		}
	}

	now := s.now()
	orderID := gateway.BuildOrderID(now, logID)
	snapReq := s.buildSnapRequest(req, orderID, gross, now, logID)

	s.log.Info("creating snap transaction",
		zap.String("order_id", orderID),
		zap.Int64("amount", gross),
		zap.String("customer", req.Name),
	)

	callCtx, cancel := context.WithTimeout(ctx, s.opt.Timeout)
	defer cancel()

	resp, err := s.gw.CreateTransaction(callCtx, snapReq)
	if err != nil {
		metrics.TransactionsTotal.WithLabelValues("gateway_" + gateway.KindOf(err).String()).Inc()
		return nil, err
	}
	if resp == nil || resp.Token == "" {
		metrics.TransactionsTotal.WithLabelValues("gateway_rejected").Inc()
		return nil, &gateway.Error{Kind: gateway.KindRejected, Message: "Gagal membuat transaksi"}
	}

	out := &dto.CreateTransactionResponse{
		OrderID:      orderID,
		Token:        resp.Token,
		RedirectURL:  resp.RedirectURL,
		ClientKey:    s.opt.ClientKey,
		IsProduction: s.opt.IsProduction,
	}

	if logID > 0 {
		if err := s.store.AttachGatewayOrderID(ctx, logID, orderID); err != nil {
			s.log.Error("[ERROR] gagal simpan order id ke log",
				zap.Int64("log_id", logID),
				zap.String("order_id", orderID),
				zap.Error(err),
			)
			metrics.TransactionsTotal.WithLabelValues("not_persisted").Inc()
			return out, &PersistError{LogID: logID, Err: err}
		}
	}

	metrics.TransactionsTotal.WithLabelValues("created").Inc()
	s.log.Info("snap transaction created", zap.String("order_id", orderID))
	return out, nil
}

func (s *TransactionService) CheckStatus(ctx context.Context, orderID string) (*coreapi.TransactionStatusResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.opt.Timeout)
	defer cancel()
	return s.gw.CheckStatus(callCtx, strings.TrimSpace(orderID))
}

func (s *TransactionService) Cancel(ctx context.Context, orderID string) (*coreapi.CancelResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.opt.Timeout)
	defer cancel()
	return s.gw.Cancel(callCtx, strings.TrimSpace(orderID))
}

func (s *TransactionService) validate(req dto.CreateTransactionRequest) (int64, error) {
	var fields []helper.FieldError
	if err := helper.Validator().Struct(req); err != nil {
		fields = append(fields, helper.ValidationErrors(err)...)
	}
	gross, ok := req.GrossAmount()
	if !ok && req.Amount > 0 {
		fields = append(fields, helper.FieldError{Field: "amount", Message: "Amount harus berupa angka bulat positif"})
	}
	if req.LogID.Set && req.LogID.Value <= 0 {
		fields = append(fields, helper.FieldError{Field: "log_id", Message: "log_id tidak valid"})
	}
	if len(fields) > 0 {
		return 0, &ValidationError{Fields: fields}
	}
	return gross, nil
}

/* =========================================================
   Snap request builder
========================================================= */

var enabledPayments = []string{
	"credit_card", "mandiri_clickpay", "cimb_clicks", "bca_klikbca", "bca_klikpay",
	"bri_epay", "echannel", "permata_va", "bca_va", "bni_va", "bri_va", "other_va",
	"gopay", "shopeepay", "indomaret", "danamon_online", "akulaku", "qris",
}

func (s *TransactionService) buildSnapRequest(req dto.CreateTransactionRequest, orderID string, gross int64, now time.Time, logID int64) *snap.Request {
	ts := strconv.FormatInt(now.UnixMilli(), 10)
	phone := NormalizePhone(req.Phone)
	email := req.CustomerEmail
	if email == "" {
		email = "customer_" + ts + "@temp.local"
	}

	addr := &midtrans.CustomerAddress{
		FName:       req.Name,
		Phone:       phone,
		Address:     req.Address,
		City:        "Jakarta",
		Postcode:    "12345",
		CountryCode: "IDN",
	}

	payments := make([]snap.SnapPaymentType, 0, len(enabledPayments))
	for _, p := range enabledPayments {
		payments = append(payments, snap.SnapPaymentType(p))
	}

	customField2 := ""
	if logID > 0 {
		customField2 = strconv.FormatInt(logID, 10)
	}

	return &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName:    req.Name,
			Email:    email,
			Phone:    phone,
			BillAddr: addr,
			ShipAddr: addr,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       "ITEM-" + ts,
				Name:     truncate(req.ItemName, 50),
				Price:    gross,
				Qty:      1,
				Category: "book",
			},
		},
		EnabledPayments: payments,
		Callbacks:       &snap.Callbacks{Finish: s.opt.ReturnURL},
		CustomField1:    req.ReferralCode,
		CustomField2:    customField2,
	}
}

// NormalizePhone: 08xx -> +628xx, 628xx -> +628xx, 8xx -> +628xx.
func NormalizePhone(phone string) string {
	p := strings.TrimSpace(phone)
	switch {
	case strings.HasPrefix(p, "+62"):
		return p
	case strings.HasPrefix(p, "0"):
		return "+62" + p[1:]
	case strings.HasPrefix(p, "62"):
		return "+" + p
	default:
		return "+62" + p
	}
}

// Midtrans membatasi item name 50 karakter.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n])
}

package gateway

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"go.uber.org/zap"

	"referralku_backend/internals/metrics"
)

/* =========================================================
   Midtrans Client
========================================================= */

type MidtransOptions struct {
	ServerKey  string
	Production bool
	Timeout    time.Duration // default 30s
	Logger     *zap.Logger
}

type MidtransGateway struct {
	snap    snap.Client
	core    coreapi.Client
	timeout time.Duration
	log     *zap.Logger
}

var _ Gateway = (*MidtransGateway)(nil)

// NewMidtransGateway menyiapkan client snap & coreapi dengan http timeout eksplisit.
func NewMidtransGateway(opt MidtransOptions) *MidtransGateway {
	if opt.Timeout <= 0 {
		opt.Timeout = 30 * time.Second
	}
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}

	// midtrans-go membaca DefaultGoHttpClient saat New(); set sebelum inisialisasi client.
	midtrans.DefaultGoHttpClient = &http.Client{Timeout: opt.Timeout}

	env := midtrans.Sandbox
	if opt.Production {
		env = midtrans.Production
	}

	g := &MidtransGateway{timeout: opt.Timeout, log: opt.Logger.Named("midtrans")}
	g.snap.New(opt.ServerKey, env)
	g.core.New(opt.ServerKey, env)
	return g
}

func (g *MidtransGateway) CreateTransaction(ctx context.Context, req *snap.Request) (*snap.Response, error) {
	return call(ctx, g, "create_transaction", func() (*snap.Response, *midtrans.Error) {
		return g.snap.CreateTransaction(req)
	})
}

func (g *MidtransGateway) CheckStatus(ctx context.Context, orderID string) (*coreapi.TransactionStatusResponse, error) {
	return call(ctx, g, "check_status", func() (*coreapi.TransactionStatusResponse, *midtrans.Error) {
		return g.core.CheckTransaction(orderID)
	})
}

func (g *MidtransGateway) Cancel(ctx context.Context, orderID string) (*coreapi.CancelResponse, error) {
	return call(ctx, g, "cancel", func() (*coreapi.CancelResponse, *midtrans.Error) {
		return g.core.CancelTransaction(orderID)
	})
}

type result[T any] struct {
	v   *T
	err *midtrans.Error
}

// call menjalankan fn di goroutine agar ctx bisa memutus tunggu lebih awal.
// Goroutine tetap dibatasi oleh timeout http client.
func call[T any](ctx context.Context, g *MidtransGateway, op string, fn func() (*T, *midtrans.Error)) (*T, error) {
	start := time.Now()
	defer func() {
		metrics.GatewayCallDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	ch := make(chan result[T], 1)
	go func() {
		v, err := fn()
		ch <- result[T]{v: v, err: err}
	}()

	select {
	case <-ctx.Done():
		g.log.Warn("gateway call aborted", zap.String("op", op), zap.Error(ctx.Err()))
		return nil, &Error{Kind: KindUnavailable, Message: "Request timeout ke server Midtrans", Err: ctx.Err()}
	case r := <-ch:
		if r.err != nil {
			ge := Classify(r.err)
			g.log.Error("gateway call failed",
				zap.String("op", op),
				zap.String("kind", ge.Kind.String()),
				zap.Int("status_code", ge.StatusCode),
				zap.String("message", ge.Message),
			)
			return nil, ge
		}
		return r.v, nil
	}
}

// Classify memetakan *midtrans.Error ke *Error.
func Classify(me *midtrans.Error) *Error {
	if me == nil {
		return nil
	}
	msg := strings.TrimSpace(me.Message)
	switch {
	case me.StatusCode == 0 || me.StatusCode >= 500:
		return &Error{Kind: KindUnavailable, StatusCode: me.StatusCode, Message: unavailableMessage(me.RawError, msg), Err: me}
	case me.StatusCode == http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized, StatusCode: me.StatusCode, Message: "API Key tidak valid", Err: me}
	default:
		if msg == "" {
			msg = "Data tidak valid"
		}
		return &Error{Kind: KindRejected, StatusCode: me.StatusCode, Message: msg, Err: me}
	}
}

func unavailableMessage(raw error, fallback string) string {
	var ne net.Error
	if errors.As(raw, &ne) && ne.Timeout() {
		return "Request timeout ke server Midtrans"
	}
	var ue *url.Error
	var de *net.DNSError
	if errors.As(raw, &de) || errors.As(raw, &ue) {
		return "Tidak dapat terhubung ke server Midtrans"
	}
	if fallback != "" {
		return fallback
	}
	return "Server Midtrans tidak tersedia"
}

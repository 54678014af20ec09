// file: internals/features/payments/gateway/gateway.go
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

// Gateway = operasi Midtrans yang dipakai aplikasi.
//
//go:generate mockgen -source=gateway.go -destination=../../../mocks/gateway/gateway_mock.go -package=gatewaymock
type Gateway interface {
	CreateTransaction(ctx context.Context, req *snap.Request) (*snap.Response, error)
	CheckStatus(ctx context.Context, orderID string) (*coreapi.TransactionStatusResponse, error)
	Cancel(ctx context.Context, orderID string) (*coreapi.CancelResponse, error)
}

/* =========================================================
   Error classification
========================================================= */

type Kind int

const (
	// KindUnavailable: timeout / host tidak terjangkau / 5xx. Boleh di-retry pemanggil.
	KindUnavailable Kind = iota + 1
	// KindRejected: 4xx dari gateway, retry percuma tanpa ubah input.
	KindRejected
	// KindUnauthorized: 401, server key salah. Urusan operator.
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindRejected:
		return "rejected"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("midtrans %s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("midtrans %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Retryable() bool { return e.Kind == KindUnavailable }

// KindOf mengembalikan Kind dari err (0 kalau bukan *Error).
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return 0
}

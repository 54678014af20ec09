package gateway_test

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"testing"
	"time"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"referralku_backend/internals/features/payments/gateway"
)

// ======================= ORDER ID =======================

func TestBuildOrderID(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	assert.Equal(t, "ORDER-1700000000000-42", gateway.BuildOrderID(now, 42))
	assert.Equal(t, "ORDER-1700000000000", gateway.BuildOrderID(now, 0))

	for _, id := range []int64{1, 7, 42, 123456789} {
		got, ok := gateway.ExtractLogID(gateway.BuildOrderID(now, id))
		require.True(t, ok)
		assert.Equal(t, id, got)
	}
}

func TestExtractLogID(t *testing.T) {
	cases := []struct {
		name    string
		orderID string
		want    int64
		ok      bool
	}{
		{"with_id", "ORDER-1700000000000-42", 42, true},
		{"without_id", "ORDER-1700000000000", 0, false},
		{"empty", "", 0, false},
		{"trailing_garbage", "ORDER-1700000000000-42x", 0, false},
		{"not_numeric_ts", "ORDER-abc-42", 0, false},
		{"zero_id", "ORDER-1700000000000-0", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := gateway.ExtractLogID(tc.orderID)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

// ======================= SIGNATURE =======================

func TestSignature_Deterministic(t *testing.T) {
	a := gateway.Signature("ORDER-1700000000000-42", "200", "150000.00", "SB-Mid-server-xyz")
	b := gateway.Signature("ORDER-1700000000000-42", "200", "150000.00", "SB-Mid-server-xyz")

	assert.Equal(t, a, b)
	assert.Len(t, a, 128)
	assert.True(t, gateway.VerifySignature("ORDER-1700000000000-42", "200", "150000.00", "SB-Mid-server-xyz", a))
}

func TestVerifySignature_SingleCharChange(t *testing.T) {
	const (
		orderID = "ORDER-1700000000000-42"
		code    = "200"
		gross   = "150000.00"
		key     = "SB-Mid-server-xyz"
	)
	sig := gateway.Signature(orderID, code, gross, key)

	assert.False(t, gateway.VerifySignature("ORDER-1700000000000-43", code, gross, key, sig))
	assert.False(t, gateway.VerifySignature(orderID, "201", gross, key, sig))
	assert.False(t, gateway.VerifySignature(orderID, code, "150000.01", key, sig))
	assert.False(t, gateway.VerifySignature(orderID, code, gross, key+"x", sig))
	assert.False(t, gateway.VerifySignature(orderID, code, gross, key, strings.ToUpper(sig)))
	assert.False(t, gateway.VerifySignature(orderID, code, gross, key, ""))
	assert.False(t, gateway.VerifySignature(orderID, code, gross, "", sig))
}

// ======================= CLASSIFY =======================

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestClassify(t *testing.T) {
	t.Run("timeout_is_unavailable", func(t *testing.T) {
		raw := &url.Error{Op: "Post", URL: "https://app.sandbox.midtrans.com", Err: timeoutErr{}}
		ge := gateway.Classify(&midtrans.Error{Message: "timeout", RawError: raw})

		assert.Equal(t, gateway.KindUnavailable, ge.Kind)
		assert.True(t, ge.Retryable())
		assert.Equal(t, "Request timeout ke server Midtrans", ge.Message)
	})

	t.Run("unreachable_is_unavailable", func(t *testing.T) {
		raw := &url.Error{Op: "Post", URL: "https://app.sandbox.midtrans.com", Err: &net.DNSError{Err: "no such host", Name: "app.sandbox.midtrans.com"}}
		ge := gateway.Classify(&midtrans.Error{RawError: raw})

		assert.Equal(t, gateway.KindUnavailable, ge.Kind)
		assert.Equal(t, "Tidak dapat terhubung ke server Midtrans", ge.Message)
	})

	t.Run("5xx_is_unavailable", func(t *testing.T) {
		ge := gateway.Classify(&midtrans.Error{StatusCode: 503, Message: "maintenance"})
		assert.Equal(t, gateway.KindUnavailable, ge.Kind)
	})

	t.Run("401_is_unauthorized", func(t *testing.T) {
		ge := gateway.Classify(&midtrans.Error{StatusCode: 401, Message: "Access denied"})
		assert.Equal(t, gateway.KindUnauthorized, ge.Kind)
		assert.False(t, ge.Retryable())
	})

	t.Run("400_is_rejected_with_gateway_message", func(t *testing.T) {
		ge := gateway.Classify(&midtrans.Error{StatusCode: 400, Message: "transaction_details.gross_amount is not equal to the sum of item_details"})
		assert.Equal(t, gateway.KindRejected, ge.Kind)
		assert.Contains(t, ge.Message, "gross_amount")

		var wrapped error = ge
		assert.Equal(t, gateway.KindRejected, gateway.KindOf(wrapped))
		assert.Equal(t, gateway.Kind(0), gateway.KindOf(errors.New("plain")))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, gateway.Classify(nil))
	})
}

func TestMidtransGateway_ContextCancelled(t *testing.T) {
	g := gateway.NewMidtransGateway(gateway.MidtransOptions{ServerKey: "SB-Mid-server-test", Timeout: 50 * time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.CheckStatus(ctx, "ORDER-1-1")
	require.Error(t, err)
	assert.Equal(t, gateway.KindUnavailable, gateway.KindOf(err))
}

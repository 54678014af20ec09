package gateway

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// Signature = hex(sha512(order_id + status_code + gross_amount + server_key)).
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifySignature membandingkan signature_key dari notifikasi dengan hasil hitung ulang.
func VerifySignature(orderID, statusCode, grossAmount, serverKey, signatureKey string) bool {
	if serverKey == "" || signatureKey == "" {
		return false
	}
	expected := Signature(orderID, statusCode, grossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signatureKey)) == 1
}

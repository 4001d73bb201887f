package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const secret = "test_secret"
	valid := sign("order_ABC", "pay_XYZ", secret)

	assert.True(t, VerifySignature("order_ABC", "pay_XYZ", valid, secret))

	assert.False(t, VerifySignature("order_ABC", "pay_XYZ", valid, "wrong_secret"))
	assert.False(t, VerifySignature("order_DEF", "pay_XYZ", valid, secret))
	assert.False(t, VerifySignature("order_ABC", "pay_OTHER", valid, secret))
	assert.False(t, VerifySignature("order_ABC", "pay_XYZ", "deadbeef", secret))
	assert.False(t, VerifySignature("order_ABC", "pay_XYZ", "", secret))
}

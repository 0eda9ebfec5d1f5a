package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign returns hex(HMAC-SHA256(payload, secret)).
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPayment checks the signature returned to the browser after checkout,
// computed over "orderID|paymentID" with the key secret.
func VerifyPayment(orderID, paymentID, signature, keySecret string) bool {
	return verify([]byte(orderID+"|"+paymentID), signature, keySecret)
}

// VerifyWebhook checks a webhook body against its signature header.
func VerifyWebhook(body []byte, signature, webhookSecret string) bool {
	return verify(body, signature, webhookSecret)
}

func verify(payload []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hmac.Equal(got, mac.Sum(nil))
}

package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyPayment(t *testing.T) {
	sig := Sign([]byte("order_1|pay_1"), "secret")

	assert.True(t, VerifyPayment("order_1", "pay_1", sig, "secret"))
	assert.False(t, VerifyPayment("order_1", "pay_2", sig, "secret"))
	assert.False(t, VerifyPayment("order_1", "pay_1", sig, "other"))
	assert.False(t, VerifyPayment("order_1", "pay_1", "zz-not-hex", "secret"))
	assert.False(t, VerifyPayment("order_1", "pay_1", "", "secret"))
}

func TestVerifyWebhook(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)
	sig := Sign(body, "whsec")

	assert.True(t, VerifyWebhook(body, sig, "whsec"))
	assert.False(t, VerifyWebhook(append(body, ' '), sig, "whsec"))
	assert.False(t, VerifyWebhook(body, sig, ""))
}

func TestSign_KnownVector(t *testing.T) {
	// RFC 4231 test case 2
	got := Sign([]byte("what do ya want for nothing?"), "Jefe")
	assert.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", got)
}

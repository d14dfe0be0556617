package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/MikeRez0/inarashop/internal/core/domain"
)

// Verifier checks signatures issued by the gateway. The key secret signs
// checkout payments, the webhook secret signs callbacks.
type Verifier struct {
	keySecret     string
	webhookSecret string
}

func NewVerifier(keySecret, webhookSecret string) *Verifier {
	return &Verifier{keySecret: keySecret, webhookSecret: webhookSecret}
}

// SignPayment returns hex(HMAC-SHA256(keySecret, orderID + "|" + paymentID)).
func (v *Verifier) SignPayment(orderID, paymentID string) (string, error) {
	if v.keySecret == "" {
		return "", domain.ErrConfiguration
	}
	return sign(v.keySecret, []byte(orderID+"|"+paymentID)), nil
}

func (v *Verifier) VerifyPayment(orderID, paymentID, signature string) (bool, error) {
	expected, err := v.SignPayment(orderID, paymentID)
	if err != nil {
		return false, err
	}
	return hmac.Equal([]byte(expected), []byte(signature)), nil
}

func (v *Verifier) SignWebhook(body []byte) (string, error) {
	if v.webhookSecret == "" {
		return "", domain.ErrConfiguration
	}
	return sign(v.webhookSecret, body), nil
}

func (v *Verifier) VerifyWebhook(body []byte, signature string) (bool, error) {
	expected, err := v.SignWebhook(body)
	if err != nil {
		return false, err
	}
	return hmac.Equal([]byte(expected), []byte(signature)), nil
}

func sign(secret string, data []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

package qr

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// Generator renders payment QR codes for the QR payment method. The encoded
// payload is a payment link the customer-facing frontend resolves.
type Generator struct {
	baseURL string
}

// NewGenerator constructs Generator with the frontend base URL.
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: baseURL}
}

// PaymentPNG encodes a payment reference for the order as a 256px PNG.
func (g *Generator) PaymentPNG(orderID int64, amount int64) ([]byte, error) {
	payload := fmt.Sprintf("%s/pay?order=%d&amount=%d", g.baseURL, orderID, amount)
	return qrcode.Encode(payload, qrcode.Medium, 256)
}

package qr

import (
	"bytes"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestPaymentPNG(t *testing.T) {
	g := NewGenerator("https://pos.example.com")

	png, err := g.PaymentPNG(15, 2500)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("expected non-empty image")
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Fatalf("expected PNG signature, got % x", png[:4])
	}
}

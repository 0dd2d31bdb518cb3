package vector

import (
	"errors"
	"testing"
)

func TestEncodeDecodeEmbedding_RoundTrip(t *testing.T) {
	orig := []float32{0.0, 1.5, -2.25, 3.75}

	b := EncodeEmbedding(orig)
	if len(b) != 16 {
		t.Fatalf("encoded length = %d, want 16", len(b))
	}
	// 1.5 is 0x3FC00000, stored little-endian in the second slot.
	if b[4] != 0x00 || b[5] != 0x00 || b[6] != 0xC0 || b[7] != 0x3F {
		t.Fatalf("unexpected little-endian layout: % x", b[4:8])
	}

	decoded, err := DecodeEmbedding(b)
	if err != nil {
		t.Fatalf("DecodeEmbedding failed: %v", err)
	}
	if len(decoded) != len(orig) {
		t.Fatalf("decoded length = %d, want %d", len(decoded), len(orig))
	}
	for i := range orig {
		if got, want := decoded[i], orig[i]; got != want {
			t.Fatalf("decoded[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestEncodeDecodeEmbedding_Empty(t *testing.T) {
	if b := EncodeEmbedding(nil); len(b) != 0 {
		t.Fatalf("expected empty blob for nil slice, got len=%d", len(b))
	}

	vec, err := DecodeEmbedding(nil)
	if err != nil {
		t.Fatalf("DecodeEmbedding(nil) failed: %v", err)
	}
	if len(vec) != 0 {
		t.Fatalf("expected empty slice for nil blob, got len=%d", len(vec))
	}
}

func TestDecodeEmbedding_InvalidLength(t *testing.T) {
	_, err := DecodeEmbedding([]byte{1, 2, 3})
	if !errors.Is(err, ErrInvalidBlob) {
		t.Fatalf("DecodeEmbedding(3 bytes) err = %v, want ErrInvalidBlob", err)
	}
}

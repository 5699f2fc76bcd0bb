package cryptobox

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestSealOpenRoundtrip(t *testing.T) {
	s, err := NewSealer(testKey)
	if err != nil {
		t.Fatalf("NewSealer: %v", err)
	}

	sealed, err := s.Seal([]byte("blood glucose 5.4 mmol/L"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if !strings.Contains(sealed, ":") {
		t.Fatalf("expected nonce:ciphertext format, got %q", sealed)
	}

	plaintext, err := s.Open(sealed)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(plaintext, []byte("blood glucose 5.4 mmol/L")) {
		t.Fatalf("unexpected plaintext %q", plaintext)
	}
}

func TestSealNonceUniqueness(t *testing.T) {
	s, _ := NewSealer(testKey)

	a, err := s.Seal([]byte("same"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	b, err := s.Seal([]byte("same"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if a == b {
		t.Fatal("expected distinct ciphertexts for the same plaintext")
	}
}

func TestOpenWrongKey(t *testing.T) {
	a, _ := NewSealer(testKey)
	b, _ := NewSealer([]byte("ffffffffffffffffffffffffffffffff"))

	sealed, err := a.Seal([]byte("secret"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if _, err := b.Open(sealed); !errors.Is(err, ErrDecrypt) {
		t.Fatalf("expected ErrDecrypt across keys, got %v", err)
	}
}

func TestOpenTampered(t *testing.T) {
	s, _ := NewSealer(testKey)

	sealed, err := s.Seal([]byte("secret"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	raw := []byte(sealed)
	last := len(raw) - 1
	if raw[last] == '0' {
		raw[last] = '1'
	} else {
		raw[last] = '0'
	}
	if _, err := s.Open(string(raw)); err == nil {
		t.Fatal("expected tampered ciphertext to fail")
	}
}

func TestOpenMalformed(t *testing.T) {
	s, _ := NewSealer(testKey)

	for _, sealed := range []string{
		"",
		"nocolon",
		":",
		"zz:zz",
		"abcd:abcd",
	} {
		if _, err := s.Open(sealed); !errors.Is(err, ErrMalformed) {
			t.Errorf("expected ErrMalformed for %q, got %v", sealed, err)
		}
	}
}

func TestNewSealerKeyLength(t *testing.T) {
	for _, n := range []int{0, 16, 31, 33} {
		if _, err := NewSealer(make([]byte, n)); err == nil {
			t.Errorf("expected error for %d-byte key", n)
		}
	}
}

package password

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	"golang.org/x/crypto/pbkdf2"
)

func testConfig() Config {
	return Config{
		Iterations:       1000,
		LegacyIterations: 1000,
		SaltLength:       16,
		KeyLength:        32,
	}
}

func TestHashVerifyRoundtrip(t *testing.T) {
	h, err := NewHasher(testConfig())
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}

	encoded, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !h.Verify("correct horse battery staple", encoded) {
		t.Fatal("expected matching password to verify")
	}
	if h.Verify("correct horse battery stable", encoded) {
		t.Fatal("expected wrong password to fail")
	}
	if h.Verify("", encoded) {
		t.Fatal("expected empty password to fail")
	}
}

func TestHashFormat(t *testing.T) {
	h, _ := NewHasher(testConfig())

	encoded, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	parts := strings.Split(encoded, ":")
	if len(parts) != 3 {
		t.Fatalf("expected 3 segments, got %d in %q", len(parts), encoded)
	}
	if parts[1] != "1000" {
		t.Fatalf("expected iteration segment 1000, got %q", parts[1])
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil || len(salt) != 16 {
		t.Fatalf("bad salt segment %q: %v", parts[0], err)
	}
	key, err := hex.DecodeString(parts[2])
	if err != nil || len(key) != 32 {
		t.Fatalf("bad key segment %q: %v", parts[2], err)
	}
}

func TestSaltUniqueness(t *testing.T) {
	h, _ := NewHasher(testConfig())

	a, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a == b {
		t.Fatal("expected distinct hashes for the same password")
	}
}

func TestVerifyLegacyFormat(t *testing.T) {
	h, _ := NewHasher(testConfig())

	salt := []byte("0123456789abcdef")
	key := pbkdf2.Key([]byte("legacy password"), salt, 1000, 32, sha512.New)
	encoded := hex.EncodeToString(salt) + ":" + hex.EncodeToString(key)

	if !h.Verify("legacy password", encoded) {
		t.Fatal("expected legacy two-field hash to verify")
	}
	if h.Verify("wrong password", encoded) {
		t.Fatal("expected wrong password to fail against legacy hash")
	}
	if !h.NeedsUpgrade(encoded) {
		t.Fatal("expected legacy format to need upgrade")
	}
}

func TestVerifyMalformed(t *testing.T) {
	h, _ := NewHasher(testConfig())

	for _, encoded := range []string{
		"",
		":",
		"::",
		"nothex:1000:nothex",
		"abcd",
		"abcd:1000",
		"abcd:notanumber:abcd",
		"abcd:-5:abcd",
		"abcd:1000:",
		":1000:abcd",
		"abcd:1000:abcd:extra",
	} {
		if h.Verify("pw", encoded) {
			t.Errorf("expected malformed hash %q to fail verification", encoded)
		}
	}
}

func TestNeedsUpgrade(t *testing.T) {
	strong, _ := NewHasher(Config{Iterations: 10000, LegacyIterations: 1000, SaltLength: 16, KeyLength: 32})
	weak, _ := NewHasher(testConfig())

	weakHash, err := weak.Hash("pw")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strong.NeedsUpgrade(weakHash) {
		t.Fatal("expected hash below configured iterations to need upgrade")
	}

	strongHash, err := strong.Hash("pw")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if strong.NeedsUpgrade(strongHash) {
		t.Fatal("expected current-format hash to not need upgrade")
	}
	if strong.NeedsUpgrade("garbage") {
		t.Fatal("expected malformed hash to not report upgrade")
	}
}

func TestNewHasherRejectsWeakParams(t *testing.T) {
	cases := []Config{
		{Iterations: 999, LegacyIterations: 1000, SaltLength: 16, KeyLength: 32},
		{Iterations: 1000, LegacyIterations: 0, SaltLength: 16, KeyLength: 32},
		{Iterations: 1000, LegacyIterations: 1000, SaltLength: 8, KeyLength: 32},
		{Iterations: 1000, LegacyIterations: 1000, SaltLength: 16, KeyLength: 16},
	}
	for i, cfg := range cases {
		if _, err := NewHasher(cfg); err == nil {
			t.Errorf("case %d: expected error for config %+v", i, cfg)
		}
	}
}

package common

import (
	"encoding/hex"
	"regexp"
	"testing"
)

// ---------- MakeRandHexString ----------

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n*2 {
		t.Fatalf("expected hex length %d, got %d", n*2, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("string is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

// ---------- GenerateRandByteArray ----------

func TestGenerateRandByteArray_Basic(t *testing.T) {
	const n = 24
	buf := GenerateRandByteArray(n)
	if len(buf) != n {
		t.Fatalf("expected length %d, got %d", n, len(buf))
	}
}

// ---------- NewActivationKey ----------

func TestNewActivationKey_Format(t *testing.T) {
	re := regexp.MustCompile(`^[A-HJ-NP-Z2-9]{4}(-[A-HJ-NP-Z2-9]{4}){3}$`)

	for i := 0; i < 20; i++ {
		k, err := NewActivationKey()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !re.MatchString(k) {
			t.Fatalf("unexpected key format: %q", k)
		}
	}
}

func TestNewActivationKey_EntropyHint(t *testing.T) {
	a, _ := NewActivationKey()
	b, _ := NewActivationKey()
	if a == b {
		t.Logf("warning: two activation keys are identical; extremely unlikely")
	}
}

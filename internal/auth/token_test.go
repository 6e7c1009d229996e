package auth

import (
	"encoding/base64"
	"testing"
)

func TestGenerateSessionToken(t *testing.T) {
	a, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	b, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}

	if a == b {
		t.Fatal("expected distinct tokens")
	}

	raw, err := base64.RawURLEncoding.DecodeString(a)
	if err != nil {
		t.Fatalf("token is not URL-safe base64: %v", err)
	}
	if len(raw) != SessionTokenBytes {
		t.Fatalf("expected %d bytes of entropy, got %d", SessionTokenBytes, len(raw))
	}
}

func TestGenerateActivationCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateActivationCode()

		if len(code) != ActivationCodeLength {
			t.Fatalf("expected length %d, got %d (%q)", ActivationCodeLength, len(code), code)
		}
		for _, r := range code {
			if !(r >= '0' && r <= '9' || r >= 'A' && r <= 'F') {
				t.Fatalf("expected upper-case hex, got %q", code)
			}
		}

		seen[code] = true
	}

	if len(seen) != 100 {
		t.Fatalf("expected 100 unique codes, got %d", len(seen))
	}
}

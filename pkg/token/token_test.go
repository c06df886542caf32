// Package token provides URL-safe random identifier generation.
package token

import (
	"encoding/base64"
	"testing"
)

func TestGenerate(t *testing.T) {
	token, err := Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Should be non-empty
	if token == "" {
		t.Error("Generate() returned empty token")
	}

	// Should be base64 RawURL encoded
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Errorf("Generate() returned invalid base64: %v", err)
	}

	// Should be DefaultLength bytes when decoded
	if len(decoded) != DefaultLength {
		t.Errorf("Generate() decoded length = %d, want %d", len(decoded), DefaultLength)
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	tokens := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if tokens[token] {
			t.Errorf("Generate() produced duplicate token: %s", token)
		}
		tokens[token] = true
	}
}

func TestGenerateWithLength(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{"16 bytes", 16},
		{"32 bytes", 32},
		{"64 bytes", 64},
		{"128 bytes", 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateWithLength(tt.length)
			if err != nil {
				t.Fatalf("GenerateWithLength(%d) error = %v", tt.length, err)
			}

			decoded, err := base64.RawURLEncoding.DecodeString(token)
			if err != nil {
				t.Errorf("GenerateWithLength(%d) returned invalid base64: %v", tt.length, err)
			}

			if len(decoded) != tt.length {
				t.Errorf("GenerateWithLength(%d) decoded length = %d", tt.length, len(decoded))
			}
		})
	}
}

func TestGenerateBytes(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{"16 bytes", 16},
		{"32 bytes", 32},
		{"64 bytes", 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bytes, err := GenerateBytes(tt.length)
			if err != nil {
				t.Fatalf("GenerateBytes(%d) error = %v", tt.length, err)
			}

			if len(bytes) != tt.length {
				t.Errorf("GenerateBytes(%d) length = %d", tt.length, len(bytes))
			}
		})
	}
}

func TestGenerateBytes_Uniqueness(t *testing.T) {
	results := make(map[string]bool)
	for i := 0; i < 100; i++ {
		bytes, err := GenerateBytes(32)
		if err != nil {
			t.Fatalf("GenerateBytes() error = %v", err)
		}
		key := string(bytes)
		if results[key] {
			t.Error("GenerateBytes() produced duplicate bytes")
		}
		results[key] = true
	}
}

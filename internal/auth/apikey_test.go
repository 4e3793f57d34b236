package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/ferraz/discovery-go/internal/store"
)

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid key", "sk-0123456789abcdef", false},
		{"exactly minimum length", "0123456789", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too short", "short", true},
		{"trimmed before check", "  sk-0123456789  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestKeyLifecycle(t *testing.T) {
	st := store.NewMemStore()

	if HasKey(st) {
		t.Error("HasKey() = true on empty store")
	}
	if _, err := LoadKey(st); !errors.Is(err, ErrNoCredential) {
		t.Errorf("LoadKey() error = %v, want ErrNoCredential", err)
	}

	if err := SaveKey(st, "  sk-0123456789  "); err != nil {
		t.Fatalf("SaveKey() error = %v", err)
	}
	key, err := LoadKey(st)
	if err != nil {
		t.Fatalf("LoadKey() error = %v", err)
	}
	if key != "sk-0123456789" {
		t.Errorf("LoadKey() = %q, want trimmed key", key)
	}
	if !HasKey(st) {
		t.Error("HasKey() = false after SaveKey")
	}

	if err := SaveKey(st, "bad"); err == nil {
		t.Error("SaveKey() accepted an invalid key")
	}

	if err := ClearKey(st); err != nil {
		t.Fatalf("ClearKey() error = %v", err)
	}
	if HasKey(st) {
		t.Error("HasKey() = true after ClearKey")
	}
}

func TestRedact(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"sk-0123456789abcdef", "sk-0" + strings.Repeat("*", 11) + "cdef"},
		{"short", "*****"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Redact(tt.key); got != tt.want {
			t.Errorf("Redact(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

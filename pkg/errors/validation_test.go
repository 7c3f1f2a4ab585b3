package errors

import (
	"strings"
	"testing"
)

func TestValidateIdentity(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		input   string
		wantErr bool
		code    Code
	}{
		{"valid node", "node", "srv-01", false, ""},
		{"valid edge", "edge", "e1", false, ""},
		{"valid unicode", "node", "Lager-Böblingen", false, ""},

		{"empty node", "node", "", true, ErrCodeInvalidNode},
		{"blank node", "node", "   ", true, ErrCodeInvalidNode},
		{"empty edge", "edge", "", true, ErrCodeInvalidEdge},
		{"long identity", "node", strings.Repeat("a", 300), false, ""},
		{"control char", "node", "tab\tid", false, ""},
		{"newline", "edge", "foo\nbar", false, ""},
		{"blank edge", "edge", "\t\n", true, ErrCodeInvalidEdge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentity(tt.kind, tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateIdentity(%q, %q) error = %v, wantErr %v", tt.kind, tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !Is(err, tt.code) {
				t.Errorf("ValidateIdentity(%q, %q) code = %v, want %v", tt.kind, tt.input, GetCode(err), tt.code)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "inventory.json", false},
		{"absolute", "/etc/assetmap/config.toml", false},
		{"nested", "data/inventory.hcl", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 600), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

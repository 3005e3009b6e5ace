package errors

import (
	"strings"
	"testing"
)

func TestValidateColumnName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		code    Code
	}{
		{"simple", "source", false, ""},
		{"with spaces", "Source Account", false, ""},
		{"unicode", "Quelle", false, ""},

		{"empty", "", true, ErrCodeMissingColumn},
		{"control char", "src\x01", true, ErrCodeInvalidInput},
		{"too long", strings.Repeat("a", 257), true, ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColumnName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateColumnName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !Is(err, tt.code) {
				t.Errorf("ValidateColumnName(%q) code = %v, want %v", tt.input, GetCode(err), tt.code)
			}
		})
	}
}

func TestValidateInputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"csv", "flows.csv", false},
		{"tsv", "data/flows.tsv", false},
		{"json uppercase", "FLOWS.JSON", false},
		{"nested dirs with dots", "./v1.2/flows.csv", false},

		{"empty", "", true},
		{"null byte", "flows\x00.csv", true},
		{"no extension", "flows", true},
		{"dotted dir without extension", "v1.2/flows", true},
		{"unsupported", "flows.xlsx", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

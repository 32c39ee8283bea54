package api

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
)

// TestGuestRequestDisplayNameValidation exercises GuestRequest's binding
// tag directly, the same validator ShouldBindJSON invokes inside Guest,
// without standing up an HTTP server: displayName is optional, but when
// supplied must be at most 50 characters (RegisterRequest's
// minimum of 2 does not apply here — a guest has no password to pair a
// short name with).
func TestGuestRequestDisplayNameValidation(t *testing.T) {
	tests := []struct {
		name        string
		displayName string
		wantErr     bool
	}{
		{"omitted entirely", "", false},
		{"single character", "p", false},
		{"a typical name", "TileWrangler", false},
		{"exactly 50 characters", strings.Repeat("x", 50), false},
		{"51 characters is rejected", strings.Repeat("x", 51), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := []byte(`{"displayName":` + quoteJSON(tt.displayName) + `}`)
			var req GuestRequest
			if err := json.Unmarshal(body, &req); err != nil {
				t.Fatalf("json.Unmarshal: %v", err)
			}

			err := binding.Validator.ValidateStruct(&req)
			if tt.wantErr && err == nil {
				t.Errorf("displayName %q: expected a validation error, got none", tt.displayName)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("displayName %q: unexpected validation error: %v", tt.displayName, err)
			}
		})
	}
}

// TestGuestRequestIgnoresUnknownFields documents that a stray field (e.g.
// a client mistakenly sending "username" instead of "displayName") is
// silently dropped by JSON binding rather than rejected, leaving
// DisplayName at its zero value so Guest's default-name generation kicks
// in.
func TestGuestRequestIgnoresUnknownFields(t *testing.T) {
	var req GuestRequest
	if err := json.Unmarshal([]byte(`{"username":"Someone"}`), &req); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if req.DisplayName != "" {
		t.Errorf("expected DisplayName to stay empty, got %q", req.DisplayName)
	}
}

func quoteJSON(s string) string {
	out, _ := json.Marshal(s)
	return string(out)
}

package middleware

import "testing"

func TestValidateVideoID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{"valid short", "kc2024-0451", "kc2024-0451", false},
		{"valid with dash", "abc-def_123", "abc-def_123", false},
		{"trims whitespace", "  abc  ", "abc", false},
		{"empty", "", "", true},
		{"too long", "12345678901234567", "", true},
		{"exactly 16", "1234567890123456", "1234567890123456", false},
		{"invalid chars", "abc def", "", true},
		{"sql injection", "a'; DROP--", "", true},
		{"unicode", "abcédef", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateVideoID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.wantID {
				t.Errorf("got %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid sha256", "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2", "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2", false},
		{"uppercase normalized", "ABCD1234", "abcd1234", false},
		{"empty", "", "", true},
		{"too long 65", "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2a", "", true},
		{"non-hex chars", "xyz123", "", true},
		{"sql injection", "abc'; DROP--", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateUserID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateJudgeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "0badc0de0badc0de", "0badc0de0badc0de", false},
		{"uppercase normalized", "ABCD1234", "abcd1234", false},
		{"empty", "", "", true},
		{"non-hex", "judge-1", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateJudgeID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateScopeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  int64
		wantNil bool
		wantErr bool
	}{
		{"empty means no filter", "", 0, true, false},
		{"whitespace means no filter", "  ", 0, true, false},
		{"valid", "12", 12, false, false},
		{"trims whitespace", " 7 ", 7, false, false},
		{"zero", "0", 0, true, true},
		{"negative", "-3", 0, true, true},
		{"non-numeric", "gospel", 0, true, true},
		{"float", "1.5", 0, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateScopeID(tt.input, "categoryId")
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if tt.wantNil && got != nil {
				t.Errorf("got %d, want nil", *got)
			}
			if !tt.wantNil && (got == nil || *got != tt.wantID) {
				t.Errorf("got %v, want %d", got, tt.wantID)
			}
		})
	}
}

func TestValidateTransactionID(t *testing.T) {
	valid := "3f1f8a6e-9a1d-4f6e-8f2a-1c9a7b5d4e3c"

	got, errMsg := ValidateTransactionID(valid)
	if errMsg != "" {
		t.Fatalf("unexpected error: %s", errMsg)
	}
	if got.String() != valid {
		t.Errorf("got %s, want %s", got, valid)
	}

	for _, bad := range []string{"", "not-a-uuid", "12345", "3f1f8a6e-9a1d-4f6e-8f2a"} {
		if _, errMsg := ValidateTransactionID(bad); errMsg == "" {
			t.Errorf("expected error for %q, got none", bad)
		}
	}
}

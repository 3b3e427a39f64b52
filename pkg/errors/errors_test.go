package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestError(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  New(ErrCodeInvalidInput, "arc %d: negative capacity", 3),
			want: "INVALID_INPUT: arc 3: negative capacity",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeFileNotFound, fs.ErrNotExist, "read %s", "net.json"),
			want: "FILE_NOT_FOUND: read net.json: file does not exist",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwrap(t *testing.T) {
	err := Wrap(ErrCodeInvalidConfig, fs.ErrPermission, "config")
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("cause should be reachable through errors.Is")
	}
	if errors.Unwrap(err) != fs.ErrPermission {
		t.Errorf("Unwrap() = %v", errors.Unwrap(err))
	}
}

func TestIs(t *testing.T) {
	coded := New(ErrCodeUnifiedCostRequired, "arc 0 has per-commodity costs")
	wrapped := fmt.Errorf("export network: %w", coded)

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"direct", coded, ErrCodeUnifiedCostRequired, true},
		{"wrapped", wrapped, ErrCodeUnifiedCostRequired, true},
		{"other code", wrapped, ErrCodeInvalidInput, false},
		{"plain error", errors.New("boom"), ErrCodeInternal, false},
		{"nil", nil, ErrCodeInternal, false},
		{"empty code", errors.New("boom"), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
			if tt.err == nil || tt.code == "" {
				return
			}
			if got := errors.Is(tt.err, tt.code); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(fmt.Errorf("ctx: %w", New(ErrCodeInvalidPolicy, "x"))); got != ErrCodeInvalidPolicy {
		t.Errorf("GetCode(wrapped) = %q", got)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{New(ErrCodeImbalancedSupplyDemand, "commodity 2: supply 4 does not match demand 6"), "commodity 2: supply 4 does not match demand 6"},
		{fmt.Errorf("export lp: %w", Wrap(ErrCodeInternal, errors.New("disk full"), "write")), "write"},
		{errors.New("plain"), "plain"},
	}
	for _, tt := range tests {
		if got := UserMessage(tt.err); got != tt.want {
			t.Errorf("UserMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	plain := New(ErrCodePackageNotFound, "crate %q not found", "serde")
	if got := plain.Error(); got != `PACKAGE_NOT_FOUND: crate "serde" not found` {
		t.Errorf("Error() = %q", got)
	}

	wrapped := Wrap(ErrCodeManifest, errors.New("exit status 101"), "cargo metadata failed")
	if got := wrapped.Error(); got != "MANIFEST_ERROR: cargo metadata failed: exit status 101" {
		t.Errorf("Error() = %q", got)
	}
}

func TestCauseChain(t *testing.T) {
	cause := errors.New("exit status 101")
	err := Wrap(ErrCodeManifest, cause, "cargo metadata failed")

	if !errors.Is(err, cause) {
		t.Error("the cause should stay reachable through errors.Is")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should expose the cause")
	}
}

func TestCodeInspection(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode Code
	}{
		{"bare error", New(ErrCodeEditorNotConfigured, "no editor"), ErrCodeEditorNotConfigured},
		{"wrapping keeps the outer code", Wrap(ErrCodeManifest, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeManifest},
		{"stdlib wrapping is transparent", fmt.Errorf("context: %w", New(ErrCodeLaunch, "spawn failed")), ErrCodeLaunch},
		{"plain error has no code", errors.New("plain"), ""},
		{"nil has no code", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.wantCode)
			}
			if tt.wantCode != "" {
				if !Is(tt.err, tt.wantCode) {
					t.Errorf("Is(err, %s) = false, want true", tt.wantCode)
				}
			}
			if Is(tt.err, ErrCodeInternal) {
				t.Error("Is should not match a code absent from the chain")
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"drops the code prefix", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"keeps the cause", Wrap(ErrCodeLaunch, errors.New("permission denied"), "failed to start editor"), "failed to start editor: permission denied"},
		{"plain errors pass through", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

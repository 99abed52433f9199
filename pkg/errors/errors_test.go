package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  New(CodeNotFound, "Patient not found", http.StatusNotFound),
			want: "NOT_FOUND: Patient not found",
		},
		{
			name: "with cause",
			err:  Wrap(errors.New("connection refused"), CodeInternal, "Failed to save patient", http.StatusInternalServerError),
			want: "INTERNAL_ERROR: Failed to save patient (caused by: connection refused)",
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

func TestConstructorsStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code string
		want int
	}{
		{"not found", NotFound("Patient"), CodeNotFound, http.StatusNotFound},
		{"conflict", Conflict("duplicate MRN"), CodeConflict, http.StatusConflict},
		{"validation", Validation("bad payload", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("empty id"), CodeInvalidInput, http.StatusBadRequest},
		{"forbidden", Forbidden("admin role required"), CodeForbidden, http.StatusForbidden},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
			}
			if tt.err.StatusCode() != tt.want {
				t.Errorf("StatusCode() = %d, want %d", tt.err.StatusCode(), tt.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	wrapped := Internal("wrapper", cause)

	if !errors.Is(wrapped, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Appointment")
	if got := AsAppError(appErr); got != appErr {
		t.Error("AsAppError should return the same *AppError unchanged")
	}

	plain := errors.New("plain")
	converted := AsAppError(plain)
	if converted.Code != CodeInternal {
		t.Errorf("AsAppError(plain).Code = %q, want %q", converted.Code, CodeInternal)
	}
	if !errors.Is(converted, plain) {
		t.Error("converted error should wrap the original")
	}
}

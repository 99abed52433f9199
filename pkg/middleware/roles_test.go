package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"medreg/pkg/logger"
)

func TestRequireRole(t *testing.T) {
	log := logger.New(logger.Config{
		Level:  "error",
		Format: logger.JSON,
		Output: io.Discard,
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireRole(log)(next)

	tests := []struct {
		name       string
		method     string
		role       string
		wantStatus int
	}{
		{"viewer can read", http.MethodGet, RoleViewer, http.StatusOK},
		{"viewer cannot create", http.MethodPost, RoleViewer, http.StatusForbidden},
		{"viewer cannot delete", http.MethodDelete, RoleViewer, http.StatusForbidden},
		{"clerk can create", http.MethodPost, RoleClerk, http.StatusOK},
		{"clerk can patch", http.MethodPatch, RoleClerk, http.StatusOK},
		{"clerk cannot delete", http.MethodDelete, RoleClerk, http.StatusForbidden},
		{"admin can delete", http.MethodDelete, RoleAdmin, http.StatusOK},
		{"unknown role rejected", http.MethodGet, "superuser", http.StatusForbidden},
		{"missing role rejected", http.MethodGet, "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/patients", nil)
			if tt.role != "" {
				req.Header.Set(RoleHeader, tt.role)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

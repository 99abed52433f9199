package middleware

import (
	"net/http"

	"medreg/pkg/logger"
)

// RoleHeader carries the caller's registry role, set by the API gateway
// after authentication. The services trust it; token verification itself
// happens upstream.
const RoleHeader = "X-Medreg-Role"

const (
	RoleViewer = "viewer"
	RoleClerk  = "clerk"
	RoleAdmin  = "admin"
)

var roleRank = map[string]int{
	RoleViewer: 1,
	RoleClerk:  2,
	RoleAdmin:  3,
}

// RequireRole gates mutating requests by role: reads are open to any known
// role, writes require clerk, deletes require admin.
func RequireRole(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := r.Header.Get(RoleHeader)
			rank, known := roleRank[role]
			if !known {
				rejectRole(w, log, r, role, "unknown role")
				return
			}

			required := requiredRank(r.Method)
			if rank < required {
				rejectRole(w, log, r, role, "insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requiredRank(method string) int {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return roleRank[RoleClerk]
	case http.MethodDelete:
		return roleRank[RoleAdmin]
	default:
		return roleRank[RoleViewer]
	}
}

func rejectRole(w http.ResponseWriter, log *logger.Logger, r *http.Request, role, reason string) {
	log.Warn("Request rejected by role gate",
		"request_id", requestIDFromContext(r.Context()),
		"role", role,
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"error":"Insufficient role for this operation"}`))
}

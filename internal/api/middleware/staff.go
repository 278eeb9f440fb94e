package middleware

import (
	"errors"
	"net/http"

	"github.com/kinolab/cinema-api/internal/api/shared"
	"github.com/kinolab/cinema-api/internal/store"
)

// StaffMiddleware restricts catalog write routes to staff users.
type StaffMiddleware struct {
	userStore store.UserStore
}

// NewStaffMiddleware creates a new StaffMiddleware with the given dependencies.
func NewStaffMiddleware(userStore store.UserStore) *StaffMiddleware {
	return &StaffMiddleware{
		userStore: userStore,
	}
}

// RequireStaff rejects requests from non-staff users with 403 Forbidden.
// It must run after Authenticate, which puts the user ID in the context.
// The staff flag is read from the user record on every request, so revoking
// staff access takes effect on the next request rather than at token expiry.
func (m *StaffMiddleware) RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}

		user, err := m.userStore.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				// The token outlived its account
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid token",
					err, shared.WithElevatedLogLevel())
				return
			}
			shared.RespondWithErrorAndLog(
				w,
				r,
				http.StatusInternalServerError,
				"Failed to verify permissions",
				err,
			)
			return
		}

		if !user.IsStaff {
			shared.RespondWithError(
				w,
				r,
				http.StatusForbidden,
				"You do not have permission to perform this action",
			)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package handlers

import "net/http"

// Context keys written by the auth middleware.
const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
)

func userIDFromRequest(r *http.Request) (int, bool) {
	id, ok := r.Context().Value(ContextKeyUserID).(int)
	return id, ok
}

func roleFromRequest(r *http.Request) string {
	role, _ := r.Context().Value(ContextKeyRole).(string)
	return role
}

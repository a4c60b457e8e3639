package model

// UserContext is the caller's identity and permission context, supplied
// per request. It is read-only to the engine.
type UserContext struct {
	UserID      string            `json:"user_id"`
	Permissions []string          `json:"permissions"`
	SessionID   string            `json:"session_id"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// HasPermissions reports whether the context carries every required
// permission. An empty requirement always passes.
func (u UserContext) HasPermissions(required []string) bool {
	if len(required) == 0 {
		return true
	}

	held := make(map[string]struct{}, len(u.Permissions))
	for _, p := range u.Permissions {
		held[p] = struct{}{}
	}
	for _, r := range required {
		if _, ok := held[r]; !ok {
			return false
		}
	}
	return true
}

// PathValues returns the values usable for "{key}" path-template
// substitution: the scalar identity fields plus metadata entries.
// Permissions are never substituted.
func (u UserContext) PathValues() map[string]string {
	values := make(map[string]string, len(u.Metadata)+2)
	for k, v := range u.Metadata {
		values[k] = v
	}
	values["user_id"] = u.UserID
	values["session_id"] = u.SessionID
	return values
}

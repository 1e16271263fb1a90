package types

import "time"

// DefaultLoginPath is where the chrome redirects after logout.
const DefaultLoginPath = "/login"

// Session is the explicit authentication context handed to the navigation
// chrome and the mutation gateway. It replaces ambient token storage: a
// session starts on login and is torn down on logout.
type Session struct {
	Token        string    `json:"token,omitempty" yaml:"token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
	User         string    `json:"user,omitempty" yaml:"user,omitempty"`
	LoginPath    string    `json:"login_path,omitempty" yaml:"login_path,omitempty"`
	StartedAt    time.Time `json:"started_at,omitempty" yaml:"started_at,omitempty"`
}

// Active reports whether the session holds an access token.
func (s *Session) Active() bool {
	return s != nil && s.Token != ""
}

// Clear drops both tokens and the user, keeping the login path.
func (s *Session) Clear() {
	s.Token = ""
	s.RefreshToken = ""
	s.User = ""
	s.StartedAt = time.Time{}
}

// RedirectPath returns the login path, defaulting to DefaultLoginPath.
func (s *Session) RedirectPath() string {
	if s == nil || s.LoginPath == "" {
		return DefaultLoginPath
	}
	return s.LoginPath
}

package models

// Session is the process-wide authentication state.
//
// Invariant: User is non-nil only while Token is non-empty and the token
// was last validated successfully.
type Session struct {
	Token   string
	User    *User
	Error   string
	Loading bool
}

// LoggedIn reports whether a token is held.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}

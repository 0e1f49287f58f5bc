package entity

// Session is the signed in staff member of one visitor.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (s *Session) IsStaff() bool {
	return s != nil && s.Token != "" && s.User.Role.IsStaff()
}

func (s *Session) IsAdmin() bool {
	return s.IsStaff() && s.User.Role.IsAdmin()
}

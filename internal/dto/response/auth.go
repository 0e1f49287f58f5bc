package response

import "pitch-booking/internal/data/entity"

type UserView struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email,omitempty"`
	Role  entity.UserRole `json:"role"`
	Phone *string         `json:"phone,omitempty"`
}

// SessionView tells the page which top-level view to render.
type SessionView struct {
	Authenticated bool      `json:"authenticated"`
	View          string    `json:"view"`
	User          *UserView `json:"user,omitempty"`
}

const (
	ViewPublic    = "public"
	ViewDashboard = "dashboard"
)

func UserToView(u entity.User) UserView {
	return UserView{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		Phone: u.Phone,
	}
}

func SessionToView(s *entity.Session) SessionView {
	if !s.IsStaff() {
		return SessionView{View: ViewPublic}
	}
	user := UserToView(s.User)
	return SessionView{
		Authenticated: true,
		View:          ViewDashboard,
		User:          &user,
	}
}

package entity

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleManager  UserRole = "manager"
	RoleCustomer UserRole = "customer"
)

// IsStaff is true for the roles allowed on the dashboard.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleManager
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

type User struct {
	ID    ID       `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email,omitempty"`
	Role  UserRole `json:"role"`
	Phone *string  `json:"phone,omitempty"`
}

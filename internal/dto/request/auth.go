package request

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateManagerRequest struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"notblank"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password" validate:"notblank,min=6"`
}

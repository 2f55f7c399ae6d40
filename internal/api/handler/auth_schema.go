package handler

// registerRequest mirrors the registration payload contract: names required,
// username at least 3 characters, well-formed email, password at least 6
// characters, role from the closed set.
type registerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Username  string `json:"username" validate:"required,min=3"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"required,oneof=admin manager user"`
}

// loginRequest accepts either an email or a username in Credentials.
type loginRequest struct {
	Credentials string `json:"credentials" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

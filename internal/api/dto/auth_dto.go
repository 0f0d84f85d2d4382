package dto

// LoginForm is the gateway's login payload for either identity class.
type LoginForm struct {
	Mail     string `json:"mail"`
	Password string `json:"password"`
}

// RegisterForm is the gateway's registration payload. Role applies to staff
// registration only.
type RegisterForm struct {
	FullName string  `json:"fullName"`
	Mail     string  `json:"mail"`
	Password string  `json:"password"`
	Phone    *string `json:"phone,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
	Role     string  `json:"role,omitempty"`
}

// AuthResult reports a successful authentication and where the visitor goes
// next.
type AuthResult struct {
	Authenticated bool   `json:"authenticated"`
	RedirectTo    string `json:"redirectTo"`
}

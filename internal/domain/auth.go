package domain

type LoginRequest struct {
	Role     string `json:"role" validate:"required,oneof=admin mc_officer fine_checker"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// AuthResult is returned by every login flow. Profile holds the signed-in
// record (nil for the configured admin).
type AuthResult struct {
	Token     string      `json:"token"`
	UserID    string      `json:"user_id"`
	Role      string      `json:"role"`
	CouncilID string      `json:"council_id,omitempty"`
	Profile   interface{} `json:"profile,omitempty"`
}

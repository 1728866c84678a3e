package dto

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse standard response for a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// IdentityResponse reflects the authenticated caller.
type IdentityResponse struct {
	Username string `json:"username"`
	UserID   string `json:"user_id"`
}

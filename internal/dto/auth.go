package dto

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserInfo is the public view of an admin account.
type UserInfo struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// LoginResponse follows the OAuth bearer-token response shape the
// frontend stores alongside the user object.
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	User        UserInfo `json:"user"`
}

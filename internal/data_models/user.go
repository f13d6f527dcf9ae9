package dto

type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Timezone *string `json:"timezone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Timezone *string `json:"timezone"`
}

type AuthResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	UserID    string `json:"user_id"`
}

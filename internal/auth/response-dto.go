package auth

// SessionResponse is what GET /auth/me returns
type SessionResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func toSessionResponse(s *Session) SessionResponse {
	return SessionResponse{
		UserID: s.UserID.String(),
		Email:  s.Email,
		Role:   string(s.Role),
	}
}

package request

import (
	"turnos-service/internal/domain/admin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r *LoginRequest) ToDomain() (admin.Credentials, error) {
	return admin.NewCredentials(r.Username, r.Password)
}

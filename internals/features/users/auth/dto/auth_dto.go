package dto

import "time"

type LoginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

type RegisterAdminRequest struct {
	Username string `json:"username" validate:"notblank,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type AdminIdentity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      AdminIdentity `json:"user"`
}

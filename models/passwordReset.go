package models

import "time"

type PasswordResetToken struct {
	Token_ID   int       `json:"tokenId" goqu:"skipinsert"`
	User_ID    int       `json:"userId"`
	Token      string    `json:"-"`
	Expires_At time.Time `json:"expiresAt"`
	Used       bool      `json:"used"`
	Created_At time.Time `json:"createdAt" goqu:"skipinsert"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

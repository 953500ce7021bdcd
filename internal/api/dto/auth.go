package dto

type LoginDTO struct {
	Username string `json:"username" binding:"required" validate:"min=1,max=150"`
	Password string `json:"password" binding:"required" validate:"min=1,max=128"`
}

type OTPLoginDTO struct {
	Challenge string `json:"challenge" binding:"required" validate:"uuid"`
	Code      string `json:"code" binding:"required" validate:"len=6,numeric"`
}

// LoginResult either a token or an OTP challenge to answer.
type LoginResult struct {
	Token       string `json:"token,omitempty"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
	OTPRequired bool   `json:"otp_required"`
	Challenge   string `json:"challenge,omitempty"`
}

type ForgotPasswordDTO struct {
	Email string `json:"email" binding:"required" validate:"email"`
}

type ResetPasswordDTO struct {
	Email       string `json:"email" binding:"required" validate:"email"`
	Code        string `json:"code" binding:"required" validate:"len=4,numeric"`
	NewPassword string `json:"new_password" binding:"required" validate:"min=8,max=128"`
}

type ActivateDTO struct {
	UID      uint64 `json:"uid" binding:"required"`
	Token    string `json:"token" binding:"required" validate:"uuid"`
	Password string `json:"password" binding:"required" validate:"min=8,max=128"`
}

type CodeDTO struct {
	Code string `json:"code" binding:"required" validate:"len=4,numeric"`
}

type EmailChangeDTO struct {
	NewEmail string `json:"new_email" binding:"required" validate:"email,max=254"`
}

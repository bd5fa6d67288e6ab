package handler

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

type verifyOTPRequest struct {
	Email   string `json:"email"   validate:"required"`
	OTPCode string `json:"otpCode" validate:"required"`
}

type resetPasswordRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userdir/user-service/internal/api/metrics"
	"github.com/userdir/user-service/internal/api/response"
	"github.com/userdir/user-service/internal/core/domain"
	"github.com/userdir/user-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// CustomerLogin authenticates a customer and returns an access token.
//
// @Summary      Customer login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  response.Envelope{data=loginResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /auth/customers/login [post]
func (h *AuthHandler) CustomerLogin(c echo.Context) error {
	return h.login(c, domain.KindCustomer)
}

// AdminLogin authenticates an admin or super admin and returns an access token.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  response.Envelope{data=loginResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, domain.KindAdmin)
}

// CustomerForgotPassword mails a one-time passcode to a customer.
//
// @Summary      Customer forgot password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  response.Envelope
// @Failure      400   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Failure      429   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /auth/customers/forgot-password [post]
func (h *AuthHandler) CustomerForgotPassword(c echo.Context) error {
	return h.forgotPassword(c, domain.KindCustomer)
}

// AdminForgotPassword mails a one-time passcode to an admin.
//
// @Summary      Admin forgot password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  response.Envelope
// @Failure      400   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Failure      429   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /auth/admin/forgot-password [post]
func (h *AuthHandler) AdminForgotPassword(c echo.Context) error {
	return h.forgotPassword(c, domain.KindAdmin)
}

// CustomerVerifyOTP consumes a customer's one-time passcode.
//
// @Summary      Verify customer OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOTPRequest  true  "Email and code"
// @Success      200   {object}  response.Envelope{data=domain.OneTimePasscode}
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /auth/verify-otp [post]
func (h *AuthHandler) CustomerVerifyOTP(c echo.Context) error {
	return h.verifyOTP(c, domain.KindCustomer)
}

// AdminVerifyOTP consumes an admin's one-time passcode.
//
// @Summary      Verify admin OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOTPRequest  true  "Email and code"
// @Success      200   {object}  response.Envelope{data=domain.OneTimePasscode}
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /auth/admin/verify-otp [post]
func (h *AuthHandler) AdminVerifyOTP(c echo.Context) error {
	return h.verifyOTP(c, domain.KindAdmin)
}

// CustomerResetPassword sets a new password for a customer.
//
// @Summary      Reset customer password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Email and new password"
// @Success      200   {object}  response.Envelope
// @Failure      400   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /auth/customers/reset-password [post]
func (h *AuthHandler) CustomerResetPassword(c echo.Context) error {
	return h.resetPassword(c, domain.KindCustomer)
}

// AdminResetPassword sets a new password for an admin.
//
// @Summary      Reset admin password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Email and new password"
// @Success      200   {object}  response.Envelope
// @Failure      400   {object}  response.Envelope
// @Failure      404   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /auth/admin/reset-password [post]
func (h *AuthHandler) AdminResetPassword(c echo.Context) error {
	return h.resetPassword(c, domain.KindAdmin)
}

func (h *AuthHandler) login(c echo.Context, kind domain.PrincipalKind) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.LoginsTotal.WithLabelValues(string(kind), metrics.Result(err)).Inc()
		return err
	}

	token, err := h.authService.Login(requestContext(c), kind, req.Email, req.Password)
	metrics.LoginsTotal.WithLabelValues(string(kind), metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, loginResponse{AccessToken: token}, kind.Label()+" logged in successfully")
}

func (h *AuthHandler) forgotPassword(c echo.Context, kind domain.PrincipalKind) error {
	var req forgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.OTPRequestsTotal.WithLabelValues(string(kind), metrics.Result(err)).Inc()
		return err
	}

	err := h.authService.ForgotPassword(requestContext(c), kind, req.Email)
	metrics.OTPRequestsTotal.WithLabelValues(string(kind), metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "OTP sent successfully")
}

func (h *AuthHandler) verifyOTP(c echo.Context, kind domain.PrincipalKind) error {
	var req verifyOTPRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.OTPVerificationsTotal.WithLabelValues(string(kind), metrics.Result(err)).Inc()
		return err
	}

	otp, err := h.authService.VerifyOTP(requestContext(c), kind, req.Email, req.OTPCode)
	metrics.OTPVerificationsTotal.WithLabelValues(string(kind), metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, otp, "OTP verified successfully")
}

func (h *AuthHandler) resetPassword(c echo.Context, kind domain.PrincipalKind) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues(string(kind), metrics.Result(err)).Inc()
		return err
	}

	err := h.authService.ResetPassword(requestContext(c), kind, req.Email, req.Password)
	metrics.PasswordResetsTotal.WithLabelValues(string(kind), metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"codemingle/internal/auth"
	"codemingle/internal/dto"
	"codemingle/internal/errors"
	"codemingle/internal/logger"
	"codemingle/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	log         *logger.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// LogoutRequest optionally names the refresh token to revoke with the session.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	resp, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	resp, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// DemoLogin godoc
// @Summary Sign in as a seeded demo account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.DemoLoginRequest true "admin or user"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/demo-login [post]
func (h *AuthHandler) DemoLogin(c echo.Context) error {
	var req dto.DemoLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	resp, err := h.authService.DemoLogin(c.Request().Context(), req.AccountType)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req dto.RefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	resp, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Logout user
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body LogoutRequest false "Refresh token to revoke"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: "invalid token", Code: "INVALID_TOKEN"})
	}
	var req LogoutRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid request body", Code: "INVALID_BODY"})
		}
	}
	if err := h.authService.Logout(c.Request().Context(), claims, req.RefreshToken); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// Me godoc
// @Summary Claims of the current access token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: "invalid token", Code: "INVALID_TOKEN"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"userId":    claims.UserID,
		"username":  claims.Username,
		"role":      claims.Role,
		"expiresAt": claims.ExpiresAt,
	})
}

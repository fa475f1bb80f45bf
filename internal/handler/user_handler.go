/**
* Name:         user_handler.go
* Description:  admin account handlers
* Workflow:     signup (invite code), login (JWT)
 */
package handler

import (
	"errors"
	"net/http"
	"strings"

	"WorkshopMapDashboard/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// /signup request body
type SignupRequest struct {
	Username string `json:"username" example:"facilitator"`
	Password string `json:"password" example:"password123"`
}

// /login request body
type LoginRequest struct {
	Username string `json:"username" example:"facilitator"`
	Password string `json:"password" example:"password123"`
}

type LoginSuccessResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// Signup godoc
// @Summary      Create an admin account
// @Description  Requires the X-Invite-Code header.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        X-Invite-Code header string true "signup invite code"
// @Param        request body handler.SignupRequest true "credentials"
// @Success      200 {object} handler.SuccessResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      403 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var credentials SignupRequest
	if err := c.ShouldBindJSON(&credentials); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	// reject whitespace-only input
	if strings.TrimSpace(credentials.Username) == "" || strings.TrimSpace(credentials.Password) == "" {
		badRequest(c, "Username and Password cannot be empty")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(credentials.Password), bcrypt.DefaultCost)
	if err != nil {
		internalError(c, h, "Failed to hash password", err)
		return
	}
	if _, err := h.Store.CreateUser(c.Request.Context(), credentials.Username, string(hashed)); err != nil {
		if errors.Is(err, storage.ErrUsernameExists) {
			badRequest(c, "Username already exists")
			return
		}
		internalError(c, h, "Failed to create user (database error)", err)
		return
	}

	h.Logger.Info("admin account created", zap.String("username", credentials.Username))
	c.JSON(http.StatusOK, SuccessResponse{Message: "User created successfully"})
}

// Login godoc
// @Summary      Log in
// @Description  Exchanges username and password for a JWT used by the /admin routes.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        request body handler.LoginRequest true "credentials"
// @Success      200 {object} handler.LoginSuccessResponse
// @Failure      400 {object} handler.ErrorResponse
// @Failure      401 {object} handler.ErrorResponse
// @Failure      500 {object} handler.ErrorResponse
// @Router       /login [post]
func (h *Handler) Login(c *gin.Context) {
	var credentials LoginRequest
	if err := c.ShouldBindJSON(&credentials); err != nil {
		badRequest(c, "JSON parsing error: "+err.Error())
		return
	}

	if credentials.Username == "" || credentials.Password == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
		return
	}

	user, err := h.Store.GetUserByUsername(c.Request.Context(), credentials.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
			return
		}
		internalError(c, h, "Database error", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
		return
	}

	token, err := h.Tokens.Generate(user.Username)
	if err != nil {
		internalError(c, h, "Failed to generate token", err)
		return
	}

	c.JSON(http.StatusOK, LoginSuccessResponse{Token: token})
}

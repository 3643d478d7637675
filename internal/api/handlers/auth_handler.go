package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/rakasatria/folio/internal/utils"
)

const tokenTTL = 24 * time.Hour

// AuthHandler issues the dashboard session token. This is a single
// owner site: one admin identity, password checked against a bcrypt
// hash from the environment.
type AuthHandler struct {
	ownerID string
}

func NewAuthHandler(ownerID string) *AuthHandler {
	return &AuthHandler{ownerID: ownerID}
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	const op = "AuthHandler.Login"

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}

	hash := os.Getenv("ADMIN_PASSWORD_HASH")
	if hash == "" {
		writeError(c, utils.E(utils.CodeInternal, op, "admin credentials not configured", nil))
		return
	}

	if utils.CheckPassword(hash, req.Password) != nil {
		writeError(c, utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil))
		return
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		writeError(c, utils.E(utils.CodeInternal, op, "JWT_SECRET is not set", nil))
		return
	}

	now := time.Now().UTC()
	exp := now.Add(tokenTTL)

	claims := jwt.MapClaims{
		"sub":  h.ownerID,
		"role": "admin",
		"name": os.Getenv("ADMIN_NAME"),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to sign token", err))
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: signed, ExpiresAt: exp})
}

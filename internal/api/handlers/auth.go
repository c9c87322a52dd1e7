package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/model"
	"github.com/Bri-fat-sen/bfse-management-system-sub010/internal/repository"
)

type AuthHandler struct {
	Repo      *repository.PostgresRepo
	JWTSecret string
}

func NewAuthHandler(repo *repository.PostgresRepo, jwtSecret string) *AuthHandler {
	return &AuthHandler{Repo: repo, JWTSecret: jwtSecret}
}

// Login authenticates an admin and returns a signed JWT.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	admin, err := h.Repo.GetAdminByUsername(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "username or password is incorrect"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "username or password is incorrect"})
		return
	}

	claims := jwt.MapClaims{
		"sub": admin.ID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(12 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(h.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{Token: tokenString})
}

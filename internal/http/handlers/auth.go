package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"hallbooking/internal/domain"
	"hallbooking/internal/domain/models"
	"hallbooking/internal/http/middleware"
	"hallbooking/internal/repositories"
	"hallbooking/internal/utils"
)

// AuthHandler issues and validates resident accounts.
type AuthHandler struct {
	Users     repositories.UserRepository
	JWTSecret string
	TokenTTL  time.Duration
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, hash, err := h.Users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}

	ttl := h.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	signed, err := token.SignedString([]byte(h.JWTSecret))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed, "user": user})
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register.
func (h AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.FullName == "" || req.Password == "" || !utils.IsEmail(req.Email) {
		RespondError(c, http.StatusBadRequest, "full_name, email and password are required", nil)
		return
	}

	exists, err := h.Users.ExistsByEmail(c.Request.Context(), req.Email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if exists {
		RespondDomainError(c, domain.ConflictError{Resource: "user", Msg: "email is already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	user := models.User{FullName: req.FullName, Email: req.Email, Phone: req.Phone}
	id, err := h.Users.Create(c.Request.Context(), user, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	user.ID = id
	user.Role = "user"
	user.Status = "active"

	c.JSON(http.StatusCreated, gin.H{"message": "registration successful", "user": user})
}

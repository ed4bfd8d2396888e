package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/unirideapp/uniride-api/internal/config"
	"github.com/unirideapp/uniride-api/internal/httperr"
	"github.com/unirideapp/uniride-api/internal/middleware"
	"github.com/unirideapp/uniride-api/internal/models"
)

// sessionStore cubre lo que el handler necesita de las sesiones.
type sessionStore interface {
	Create(ctx context.Context, principal *models.User) string
	Get(ctx context.Context, sid string) (*models.User, error)
	Delete(ctx context.Context, sid string)
}

type AuthHandler struct {
	db       *gorm.DB
	config   *config.Config
	sessions sessionStore
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, sessions sessionStore) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, sessions: sessions}
}

// --------- Requests ---------

type LoginRequest struct {
	Legajo   string `json:"legajo" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	legajo := strings.TrimSpace(req.Legajo)

	var user models.User
	if err := h.db.
		Where("legajo = ?", legajo).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	token, err := h.authenticate(c.Request.Context(), &user, req.Password)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_credentials") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

// authenticate compara la contraseña y recién entonces abre la sesión:
// ante contraseña incorrecta no se persiste nada.
func (h *AuthHandler) authenticate(
	ctx context.Context,
	user *models.User,
	password string,
) (string, error) {

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", httperr.ErrBusiness("invalid_credentials")
	}

	sid := h.sessions.Create(ctx, user)

	token, err := h.generateToken(user, sid)
	if err != nil {
		h.sessions.Delete(ctx, sid)
		return "", err
	}
	return token, nil
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sid := c.MustGet(middleware.ContextSessionID).(string)
	h.sessions.Delete(c.Request.Context(), sid)
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

// Me devuelve la foto del principal guardada al login. Puede quedar
// desfasada respecto de la base si el perfil cambió después.
func (h *AuthHandler) Me(c *gin.Context) {
	sid := c.MustGet(middleware.ContextSessionID).(string)

	principal, err := h.sessions.Get(c.Request.Context(), sid)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": principal})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User, sid string) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.ID,
		"sid": sid,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

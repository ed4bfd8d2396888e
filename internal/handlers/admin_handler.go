package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/unirideapp/uniride-api/internal/httperr"
	"github.com/unirideapp/uniride-api/internal/httpresp"
	"github.com/unirideapp/uniride-api/internal/middleware"
	"github.com/unirideapp/uniride-api/internal/models"
	"github.com/unirideapp/uniride-api/internal/validators"
)

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// requireAdmin relee el principal en cada llamada; el rol se evalúa
// contra la base, no contra el token.
func (h *AdminHandler) requireAdmin(c *gin.Context) (*models.User, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
		return nil, false
	}

	if !user.IsAdmin() {
		httperr.Forbidden(c, "admin_only", businessMessages["admin_only"])
		return nil, false
	}
	return &user, true
}

// ======================================================
// REQUESTS
// ======================================================

type CreateUserRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Legajo    string `json:"legajo" binding:"required"`
	DNI       string `json:"dni" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Password  string `json:"password" binding:"required,min=6"`

	InstitutionalRoles []models.InstitutionalRole `json:"institutional_roles" binding:"required"`
	PlatformRoles      []models.PlatformRole      `json:"platform_roles"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Legajo    *string `json:"legajo"`
	DNI       *string `json:"dni"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Password  *string `json:"password"`

	InstitutionalRoles *[]models.InstitutionalRole `json:"institutional_roles"`
	PlatformRoles      *[]models.PlatformRole      `json:"platform_roles"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AdminHandler) ListUsers(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}

	var users []models.User
	h.db.Order("id ASC").Find(&users)

	httpresp.List(c, users)
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	admin, ok := h.requireAdmin(c)
	if !ok {
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if !validators.IsValidDNI(req.DNI) {
		httperr.BadRequest(c, "invalid_dni", "El DNI debe tener 8 dígitos.")
		return
	}
	if !validators.IsValidLegajo(req.Legajo) {
		httperr.BadRequest(c, "invalid_legajo", "Legajo inválido.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "El dominio del e-mail no parece válido.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).
		Where("legajo = ? OR dni = ?", req.Legajo, req.DNI).
		Count(&count)
	if count > 0 {
		httperr.Conflict(c, "duplicate_identity", businessMessages["duplicate_identity"])
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Error al crear el usuario.")
		return
	}

	user := models.User{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Legajo:             req.Legajo,
		DNI:                req.DNI,
		Email:              email,
		Phone:              req.Phone,
		InstitutionalRoles: req.InstitutionalRoles,
		PlatformRoles:      req.PlatformRoles,
		PasswordHash:       string(hashed),
		CreatedBy:          &admin.ID,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Error al crear el usuario.")
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	if _, ok := h.requireAdmin(c); !ok {
		return
	}
	id := c.Param("id")

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
		return
	}

	if req.Legajo != nil || req.DNI != nil {
		legajo := user.Legajo
		dni := user.DNI
		if req.Legajo != nil {
			legajo = *req.Legajo
		}
		if req.DNI != nil {
			dni = *req.DNI
		}

		var count int64
		h.db.Model(&models.User{}).
			Where("id <> ? AND (legajo = ? OR dni = ?)", user.ID, legajo, dni).
			Count(&count)
		if count > 0 {
			httperr.Conflict(c, "duplicate_identity", businessMessages["duplicate_identity"])
			return
		}

		user.Legajo = legajo
		user.DNI = dni
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.InstitutionalRoles != nil {
		user.InstitutionalRoles = *req.InstitutionalRoles
	}
	if req.PlatformRoles != nil {
		user.PlatformRoles = *req.PlatformRoles
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Error al actualizar el usuario.")
			return
		}
		user.PasswordHash = string(hashed)
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Error al actualizar el usuario.")
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser borra al usuario y sus referencias: los viajes que
// manejaba (con pasajeros y ruta), sus entradas como pasajero en
// viajes ajenos y las opiniones que escribió o recibió.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	admin, ok := h.requireAdmin(c)
	if !ok {
		return
	}
	id := c.Param("id")

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
		return
	}

	if user.ID == admin.ID {
		httperr.BadRequest(c, "cannot_delete_self", businessMessages["cannot_delete_self"])
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {

		var driven []models.Ride
		if err := tx.Where("driver_id = ?", user.ID).Find(&driven).Error; err != nil {
			return err
		}
		for _, ride := range driven {
			if err := tx.Where("ride_id = ?", ride.ID).Delete(&models.RidePassenger{}).Error; err != nil {
				return err
			}
			if err := tx.Where("ride_id = ?", ride.ID).Delete(&models.RideWaypoint{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("driver_id = ?", user.ID).Delete(&models.Ride{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.RidePassenger{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.PaymentMethod{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}

		// Opiniones escritas y recibidas; sin esto quedarían
		// referencias a un usuario inexistente.
		if err := tx.
			Where("driver_id = ? OR reviewer_id = ?", user.ID, user.ID).
			Delete(&models.Review{}).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})

	if err != nil {
		httperr.Internal(c, "failed_to_delete_user", "Error al eliminar el usuario.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

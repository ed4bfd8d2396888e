package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/unirideapp/uniride-api/internal/httperr"
	"github.com/unirideapp/uniride-api/internal/httpresp"
	"github.com/unirideapp/uniride-api/internal/middleware"
	"github.com/unirideapp/uniride-api/internal/models"
	"github.com/unirideapp/uniride-api/internal/notify"
)

type DriverHandler struct {
	db     *gorm.DB
	notify *notify.Dispatcher
}

func NewDriverHandler(db *gorm.DB, notify *notify.Dispatcher) *DriverHandler {
	return &DriverHandler{db: db, notify: notify}
}

func (h *DriverHandler) List(c *gin.Context) {
	// Los roles viven serializados como JSON en una columna de texto;
	// el LIKE achica el scan y el filtro fino se hace en memoria.
	var users []models.User
	h.db.
		Where("platform_roles LIKE ?", "%driver%").
		Find(&users)

	drivers := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.HasPlatformRole(models.RoleDriver) {
			drivers = append(drivers, u)
		}
	}

	httpresp.List(c, drivers)
}

func (h *DriverHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var driver models.User
	if err := h.db.
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&driver, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Conductor no encontrado.")
		return
	}

	c.JSON(http.StatusOK, driver)
}

// ======================================================
// REVIEWS
// ======================================================

type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func (h *DriverHandler) AddReview(c *gin.Context) {
	reviewerID := c.MustGet(middleware.ContextUserID).(uint)
	driverID := c.Param("id")

	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var reviewer models.User
	if err := h.db.First(&reviewer, reviewerID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
		return
	}

	var driver models.User
	if err := h.db.First(&driver, "id = ?", driverID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Conductor no encontrado.")
		return
	}

	review := models.Review{
		DriverID:     driver.ID,
		ReviewerID:   reviewer.ID,
		ReviewerName: reviewer.FullName(),
		Rating:       req.Rating,
		Comment:      req.Comment,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		// El promedio se recalcula sobre todas las opiniones en cada alta.
		var reviews []models.Review
		if err := tx.
			Where("driver_id = ?", driver.ID).
			Find(&reviews).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", driver.ID).
			Update("rating", models.AverageRating(reviews)).Error
	})

	if err != nil {
		httperr.Internal(c, "failed_to_add_review", "Error al guardar la opinión.")
		return
	}

	h.notify.Dispatch(models.Notification{
		UserID: driver.ID,
		Title:  "Nueva opinión",
		Message: fmt.Sprintf(
			"%s ha dejado una opinión sobre ti.", reviewer.FullName(),
		),
		Type: models.NotifInfo,
	})

	c.JSON(http.StatusCreated, review)
}

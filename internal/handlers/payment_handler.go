package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/unirideapp/uniride-api/internal/httperr"
	"github.com/unirideapp/uniride-api/internal/httpresp"
	"github.com/unirideapp/uniride-api/internal/middleware"
	"github.com/unirideapp/uniride-api/internal/models"
)

type PaymentHandler struct {
	db *gorm.DB
}

func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreatePaymentMethodRequest struct {
	CardNumber string             `json:"card_number" binding:"required"`
	CardHolder string             `json:"card_holder" binding:"required"`
	ExpiryDate string             `json:"expiry_date" binding:"required"`
	Network    models.CardNetwork `json:"network" binding:"required,oneof=visa mastercard amex"`
	IsDefault  bool               `json:"is_default"`
}

type UpdatePaymentMethodRequest struct {
	CardNumber *string             `json:"card_number"`
	CardHolder *string             `json:"card_holder"`
	ExpiryDate *string             `json:"expiry_date"`
	Network    *models.CardNetwork `json:"network"`
	IsDefault  *bool               `json:"is_default"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *PaymentHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var methods []models.PaymentMethod
	h.db.
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&methods)

	httpresp.List(c, methods)
}

func (h *PaymentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var created models.PaymentMethod

	err := h.db.Transaction(func(tx *gorm.DB) error {

		var existing []models.PaymentMethod
		if err := tx.
			Where("user_id = ?", userID).
			Order("id ASC").
			Find(&existing).Error; err != nil {
			return err
		}

		for _, pm := range existing {
			if pm.CardNumber == req.CardNumber {
				return httperr.ErrBusiness("duplicate_card")
			}
		}

		isDefault := models.DefaultForNew(existing, req.IsDefault)

		if isDefault {
			if err := tx.Model(&models.PaymentMethod{}).
				Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}

		created = models.PaymentMethod{
			UserID:     userID,
			CardNumber: req.CardNumber,
			CardHolder: req.CardHolder,
			ExpiryDate: req.ExpiryDate,
			Network:    req.Network,
			IsDefault:  isDefault,
		}
		return tx.Create(&created).Error
	})

	if err != nil {
		if httperr.IsBusiness(err, "duplicate_card") {
			writeBusiness(c, err)
			return
		}
		httperr.Internal(c, "failed_to_create_payment_method", "Error al guardar la tarjeta.")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *PaymentHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var req UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var updated models.PaymentMethod

	err := h.db.Transaction(func(tx *gorm.DB) error {

		var pm models.PaymentMethod
		if err := tx.
			Where("id = ? AND user_id = ?", id, userID).
			First(&pm).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("payment_method_not_found")
			}
			return err
		}

		if req.CardNumber != nil && *req.CardNumber != pm.CardNumber {
			var count int64
			if err := tx.Model(&models.PaymentMethod{}).
				Where("user_id = ? AND card_number = ? AND id <> ?", userID, *req.CardNumber, pm.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return httperr.ErrBusiness("duplicate_card")
			}
			pm.CardNumber = *req.CardNumber
		}

		if req.CardHolder != nil {
			pm.CardHolder = *req.CardHolder
		}
		if req.ExpiryDate != nil {
			pm.ExpiryDate = *req.ExpiryDate
		}
		if req.Network != nil {
			pm.Network = *req.Network
		}

		if req.IsDefault != nil && *req.IsDefault {
			if err := tx.Model(&models.PaymentMethod{}).
				Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
			pm.IsDefault = true
		}

		if err := tx.Save(&pm).Error; err != nil {
			return err
		}

		updated = pm
		return nil
	})

	if err != nil {
		if _, ok := httperr.BusinessCode(err); ok {
			writeBusiness(c, err)
			return
		}
		httperr.Internal(c, "failed_to_update_payment_method", "Error al actualizar la tarjeta.")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	err := h.db.Transaction(func(tx *gorm.DB) error {

		var pm models.PaymentMethod
		if err := tx.
			Where("id = ? AND user_id = ?", id, userID).
			First(&pm).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("payment_method_not_found")
			}
			return err
		}

		if err := tx.Delete(&pm).Error; err != nil {
			return err
		}

		// Si era la predeterminada, la más vieja que quede la hereda.
		if pm.IsDefault {
			var remaining []models.PaymentMethod
			if err := tx.
				Where("user_id = ?", userID).
				Find(&remaining).Error; err != nil {
				return err
			}
			if next := models.PromoteOldest(remaining); next != nil {
				next.IsDefault = true
				return tx.Save(next).Error
			}
		}
		return nil
	})

	if err != nil {
		if _, ok := httperr.BusinessCode(err); ok {
			writeBusiness(c, err)
			return
		}
		httperr.Internal(c, "failed_to_delete_payment_method", "Error al eliminar la tarjeta.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

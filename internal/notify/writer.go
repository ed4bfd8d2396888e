package notify

import (
	"gorm.io/gorm"

	"github.com/unirideapp/uniride-api/internal/models"
)

type Writer struct {
	db *gorm.DB
}

func NewWriter(db *gorm.DB) *Writer {
	return &Writer{db: db}
}

func (w *Writer) Write(n models.Notification) error {
	return w.db.Create(&n).Error
}

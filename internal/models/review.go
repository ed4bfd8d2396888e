package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DriverID   uint `gorm:"index;not null" json:"driver_id"`
	ReviewerID uint `gorm:"not null" json:"reviewer_id"`

	// Nombre congelado al momento de opinar; no se refresca con el perfil.
	ReviewerName string `gorm:"size:200;not null" json:"reviewer_name"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"size:500" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}

// AverageRating es el promedio aritmético de todas las opiniones recibidas.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

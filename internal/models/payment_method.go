package models

import "time"

type CardNetwork string

const (
	NetworkVisa       CardNetwork = "visa"
	NetworkMastercard CardNetwork = "mastercard"
	NetworkAmex       CardNetwork = "amex"
)

type PaymentMethod struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	CardNumber string      `gorm:"size:20;not null" json:"card_number"`
	CardHolder string      `gorm:"size:100;not null" json:"card_holder"`
	ExpiryDate string      `gorm:"size:7;not null" json:"expiry_date"`
	Network    CardNetwork `gorm:"size:20;not null" json:"network"`

	// Como máximo una tarjeta por usuario puede ser la predeterminada.
	IsDefault bool `json:"is_default"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultForNew decide si una tarjeta nueva queda como predeterminada:
// lo pedido por el usuario, salvo que sea la primera, que lo es siempre.
func DefaultForNew(existing []PaymentMethod, requested bool) bool {
	return requested || len(existing) == 0
}

// PromoteOldest elige la tarjeta que hereda el flag predeterminado tras
// una baja: la más vieja de las que quedan, nil si no queda ninguna.
func PromoteOldest(remaining []PaymentMethod) *PaymentMethod {
	if len(remaining) == 0 {
		return nil
	}

	oldest := &remaining[0]
	for i := range remaining {
		if remaining[i].ID < oldest.ID {
			oldest = &remaining[i]
		}
	}
	return oldest
}

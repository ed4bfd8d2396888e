package models

import "time"

type RideDirection string

const (
	ToUniversity   RideDirection = "to_university"
	FromUniversity RideDirection = "from_university"
)

type Ride struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DriverID uint `gorm:"index;not null" json:"driver_id"`
	// Nombre congelado al publicar; no se refresca con el perfil.
	DriverName string `gorm:"size:200;not null" json:"driver_name"`

	Direction RideDirection `gorm:"size:20;not null" json:"direction"`

	Origin      string `gorm:"size:100;not null" json:"origin"`
	Destination string `gorm:"size:100;not null" json:"destination"`

	OriginLat      float64 `json:"origin_lat"`
	OriginLng      float64 `json:"origin_lng"`
	DestinationLat float64 `json:"destination_lat"`
	DestinationLng float64 `json:"destination_lng"`

	Date                 string `gorm:"size:10;index;not null" json:"date"`
	DepartureTime        string `gorm:"size:5;not null" json:"departure_time"`
	EstimatedArrivalTime string `gorm:"size:5" json:"estimated_arrival_time"`

	AvailableSeats    int `gorm:"not null" json:"available_seats"`
	MaxDetourMeters   int `json:"max_detour_meters"`
	MaxWaitingMinutes int `json:"max_waiting_minutes"`

	Status string `gorm:"size:20;default:'active'" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	Passengers []RidePassenger `json:"passengers"`
	Route      []RideWaypoint  `json:"route,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PassengerByUser devuelve la entrada del pasajero si está en el viaje.
func (r *Ride) PassengerByUser(userID uint) *RidePassenger {
	for i := range r.Passengers {
		if r.Passengers[i].UserID == userID {
			return &r.Passengers[i]
		}
	}
	return nil
}

type RidePassenger struct {
	ID     uint `gorm:"primaryKey" json:"-"`
	RideID uint `gorm:"index;not null" json:"-"`
	UserID uint `gorm:"index;not null" json:"id"`

	// Nombre congelado al unirse; no se refresca con el perfil.
	Name string `gorm:"size:200;not null" json:"name"`

	// Estado propio del pasajero, independiente del estado del viaje.
	Status string `gorm:"size:20;default:'confirmed'" json:"status"`

	PaymentMethodID *uint `json:"payment_method_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RideWaypoint struct {
	ID     uint `gorm:"primaryKey" json:"-"`
	RideID uint `gorm:"index;not null" json:"-"`

	Name string  `gorm:"size:100;not null" json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`

	Position      int    `json:"order"`
	IsPickupPoint bool   `json:"is_pickup_point"`
	EstimatedTime string `gorm:"size:5" json:"estimated_time"`
}

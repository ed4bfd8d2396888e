package ride

import "github.com/unirideapp/uniride-api/internal/httperr"

// ===============================
// Ride Status
// ===============================

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Estados del pasajero dentro de un viaje.
type PassengerStatus string

const (
	PassengerConfirmed PassengerStatus = "confirmed"
	PassengerCancelled PassengerStatus = "cancelled"
	PassengerCompleted PassengerStatus = "completed"
)

// ===============================
// Validations
// ===============================

// Las transiciones son monótonas: active -> {completed, cancelled}.
// No hay salida de completed ni de cancelled.

func CanCancel(current Status) error {
	if current != StatusActive {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanFinish(current Status) error {
	if current != StatusActive {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanJoin(current Status) error {
	if current != StatusActive {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusActive
}

package ride

import (
	"github.com/unirideapp/uniride-api/internal/httperr"
	"github.com/unirideapp/uniride-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// CancelByDriver cancela el viaje completo: el estado del viaje y el de
// todos los pasajeros pasan a cancelled, sin importar su estado previo.
func CancelByDriver(r *models.Ride) error {
	if err := CanCancel(Status(r.Status)); err != nil {
		return err
	}

	r.Status = string(StatusCancelled)
	for i := range r.Passengers {
		r.Passengers[i].Status = string(PassengerCancelled)
	}
	return nil
}

// CancelByPassenger baja a un solo pasajero; el viaje sigue activo.
func CancelByPassenger(r *models.Ride, userID uint) error {
	if err := CanCancel(Status(r.Status)); err != nil {
		return err
	}

	p := r.PassengerByUser(userID)
	if p == nil {
		return httperr.ErrBusiness("not_a_passenger")
	}

	p.Status = string(PassengerCancelled)
	return nil
}

// Finish completa el viaje. Solo los pasajeros confirmados pasan a
// completed; los que cancelaron antes quedan cancelados.
func Finish(r *models.Ride) error {
	if err := CanFinish(Status(r.Status)); err != nil {
		return err
	}

	r.Status = string(StatusCompleted)
	for i := range r.Passengers {
		if r.Passengers[i].Status == string(PassengerConfirmed) {
			r.Passengers[i].Status = string(PassengerCompleted)
		}
	}
	return nil
}

// Join valida capacidad y duplicados, y agrega la entrada del pasajero.
// El invariante len(passengers) <= availableSeats se sostiene acá; el
// repositorio serializa llamadas concurrentes con un lock por fila.
func Join(r *models.Ride, p models.RidePassenger) error {
	if err := CanJoin(Status(r.Status)); err != nil {
		return err
	}

	if r.PassengerByUser(p.UserID) != nil {
		return httperr.ErrBusiness("already_joined")
	}

	if len(r.Passengers) >= r.AvailableSeats {
		return httperr.ErrBusiness("no_seats_available")
	}

	p.RideID = r.ID
	p.Status = string(PassengerConfirmed)
	r.Passengers = append(r.Passengers, p)
	return nil
}

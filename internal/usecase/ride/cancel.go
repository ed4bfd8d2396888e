package ride

import (
	"context"
	"fmt"

	domain "github.com/unirideapp/uniride-api/internal/domain/ride"
	"github.com/unirideapp/uniride-api/internal/models"
)

type CancelRide struct {
	repo   domain.Repository
	notify Notifier
}

func NewCancelRide(repo domain.Repository, notify Notifier) *CancelRide {
	return &CancelRide{
		repo:   repo,
		notify: notify,
	}
}

// Execute despacha según quién cancela: el conductor baja el viaje
// entero; un pasajero solo se baja a sí mismo.
func (uc *CancelRide) Execute(
	ctx context.Context,
	userID uint,
	rideID uint,
) (*models.Ride, error) {

	user, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ride, err := uc.repo.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if ride.DriverID == userID {
		return uc.cancelAsDriver(ctx, user, ride)
	}
	return uc.cancelAsPassenger(ctx, user, ride)
}

func (uc *CancelRide) cancelAsDriver(
	ctx context.Context,
	driver *models.User,
	ride *models.Ride,
) (*models.Ride, error) {

	// Los destinatarios se toman antes de la cascada.
	passengerIDs := make([]uint, 0, len(ride.Passengers))
	for _, p := range ride.Passengers {
		passengerIDs = append(passengerIDs, p.UserID)
	}

	if err := domain.CancelByDriver(ride); err != nil {
		return nil, err
	}

	if err := uc.repo.SaveRide(ctx, ride); err != nil {
		return nil, err
	}

	for _, pid := range passengerIDs {
		uc.notify.Dispatch(models.Notification{
			UserID: pid,
			Title:  "Viaje cancelado",
			Message: fmt.Sprintf(
				"%s ha cancelado el viaje a %s.",
				driver.FullName(), ride.Destination,
			),
			Type:   models.NotifWarning,
			RideID: &ride.ID,
		})
	}

	uc.notify.Dispatch(models.Notification{
		UserID: driver.ID,
		Title:  "Viaje cancelado",
		Message: fmt.Sprintf(
			"Has cancelado tu viaje a %s.", ride.Destination,
		),
		Type:   models.NotifInfo,
		RideID: &ride.ID,
	})

	return ride, nil
}

func (uc *CancelRide) cancelAsPassenger(
	ctx context.Context,
	passenger *models.User,
	ride *models.Ride,
) (*models.Ride, error) {

	if err := domain.CancelByPassenger(ride, passenger.ID); err != nil {
		return nil, err
	}

	if err := uc.repo.SaveRide(ctx, ride); err != nil {
		return nil, err
	}

	uc.notify.Dispatch(models.Notification{
		UserID: ride.DriverID,
		Title:  "Pasajero cancelado",
		Message: fmt.Sprintf(
			"%s ha abandonado tu viaje a %s.",
			passenger.FullName(), ride.Destination,
		),
		Type:   models.NotifWarning,
		RideID: &ride.ID,
	})

	uc.notify.Dispatch(models.Notification{
		UserID: passenger.ID,
		Title:  "Viaje abandonado",
		Message: fmt.Sprintf(
			"Has abandonado el viaje de %s a %s.",
			ride.DriverName, ride.Destination,
		),
		Type:   models.NotifInfo,
		RideID: &ride.ID,
	})

	return ride, nil
}

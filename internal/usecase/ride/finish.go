package ride

import (
	"context"
	"fmt"

	domain "github.com/unirideapp/uniride-api/internal/domain/ride"
	"github.com/unirideapp/uniride-api/internal/httperr"
	"github.com/unirideapp/uniride-api/internal/models"
)

type FinishRide struct {
	repo   domain.Repository
	notify Notifier
}

func NewFinishRide(repo domain.Repository, notify Notifier) *FinishRide {
	return &FinishRide{
		repo:   repo,
		notify: notify,
	}
}

func (uc *FinishRide) Execute(
	ctx context.Context,
	userID uint,
	rideID uint,
) (*models.Ride, error) {

	driver, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ride, err := uc.repo.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if ride.DriverID != userID {
		return nil, httperr.ErrBusiness("driver_only")
	}

	if !driver.HasPlatformRole(models.RoleDriver) {
		return nil, httperr.ErrBusiness("driver_role_required")
	}

	if err := domain.Finish(ride); err != nil {
		return nil, err
	}

	if err := uc.repo.SaveRide(ctx, ride); err != nil {
		return nil, err
	}

	for _, p := range ride.Passengers {
		uc.notify.Dispatch(models.Notification{
			UserID: p.UserID,
			Title:  "Viaje finalizado",
			Message: fmt.Sprintf(
				"El viaje con %s a %s ha finalizado. ¡Gracias por usar UniRide!",
				driver.FullName(), ride.Destination,
			),
			Type:   models.NotifSuccess,
			RideID: &ride.ID,
		})
	}

	uc.notify.Dispatch(models.Notification{
		UserID: driver.ID,
		Title:  "Viaje finalizado",
		Message: fmt.Sprintf(
			"Has finalizado tu viaje a %s. ¡Gracias por ser parte de UniRide!",
			ride.Destination,
		),
		Type:   models.NotifSuccess,
		RideID: &ride.ID,
	})

	return ride, nil
}

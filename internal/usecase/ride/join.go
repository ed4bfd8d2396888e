package ride

import (
	"context"
	"fmt"

	domain "github.com/unirideapp/uniride-api/internal/domain/ride"
	"github.com/unirideapp/uniride-api/internal/httperr"
	"github.com/unirideapp/uniride-api/internal/models"
)

type JoinRide struct {
	repo   domain.Repository
	notify Notifier
}

func NewJoinRide(repo domain.Repository, notify Notifier) *JoinRide {
	return &JoinRide{
		repo:   repo,
		notify: notify,
	}
}

func (uc *JoinRide) Execute(
	ctx context.Context,
	userID uint,
	rideID uint,
	paymentMethodID *uint,
) (*models.Ride, error) {

	passenger, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !passenger.HasPlatformRole(models.RolePassenger) {
		return nil, httperr.ErrBusiness("passenger_role_required")
	}

	if paymentMethodID != nil {
		if _, err := uc.repo.GetPaymentMethod(ctx, userID, *paymentMethodID); err != nil {
			return nil, err
		}
	}

	ride, err := uc.repo.JoinRide(ctx, rideID, models.RidePassenger{
		UserID:          passenger.ID,
		Name:            passenger.FullName(),
		PaymentMethodID: paymentMethodID,
	})
	if err != nil {
		return nil, err
	}

	uc.notify.Dispatch(models.Notification{
		UserID: ride.DriverID,
		Title:  "Nuevo pasajero",
		Message: fmt.Sprintf(
			"%s se ha unido a tu viaje a %s.",
			passenger.FullName(), ride.Destination,
		),
		Type:   models.NotifSuccess,
		RideID: &ride.ID,
	})

	uc.notify.Dispatch(models.Notification{
		UserID: passenger.ID,
		Title:  "Viaje confirmado",
		Message: fmt.Sprintf(
			"Te has unido al viaje de %s a %s.",
			ride.DriverName, ride.Destination,
		),
		Type:   models.NotifSuccess,
		RideID: &ride.ID,
	})

	return ride, nil
}

package ride

import (
	"context"
	"fmt"
	"math/rand"

	domain "github.com/unirideapp/uniride-api/internal/domain/ride"
	"github.com/unirideapp/uniride-api/internal/httperr"
	"github.com/unirideapp/uniride-api/internal/models"
)

// Notifier es el punto de fan-out; en producción lo implementa el
// dispatcher asincrónico.
type Notifier interface {
	Dispatch(n models.Notification)
}

// ======================================================
// INPUT
// ======================================================

type PublishRideInput struct {
	DriverID uint

	Direction models.RideDirection

	Origin      string
	Destination string

	Date          string
	DepartureTime string

	AvailableSeats    int
	MaxDetourMeters   int
	MaxWaitingMinutes int

	Notes string

	// Ruta opcional; el orden de los puntos es el del pedido.
	Route []models.RideWaypoint
}

// ======================================================
// USE CASE
// ======================================================

type PublishRide struct {
	repo   domain.Repository
	notify Notifier
	jitter func() int
}

func NewPublishRide(repo domain.Repository, notify Notifier) *PublishRide {
	return &PublishRide{
		repo:   repo,
		notify: notify,
		jitter: func() int { return rand.Intn(5) },
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *PublishRide) Execute(
	ctx context.Context,
	in PublishRideInput,
) (*models.Ride, error) {

	driver, err := uc.repo.GetUser(ctx, in.DriverID)
	if err != nil {
		return nil, err
	}

	if !driver.HasPlatformRole(models.RoleDriver) {
		return nil, httperr.ErrBusiness("driver_role_required")
	}

	if in.AvailableSeats < 1 || in.AvailableSeats > 8 {
		return nil, httperr.ErrBusiness("invalid_seats")
	}

	// Un extremo del viaje siempre es el campus.
	origin := in.Origin
	destination := domain.CampusName
	if in.Direction == models.FromUniversity {
		origin = domain.CampusName
		destination = in.Destination
	}

	arrival, err := domain.EstimateArrival(in.DepartureTime, uc.jitter())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_departure_time")
	}

	originCoords := domain.LookupCoords(origin)
	destCoords := domain.LookupCoords(destination)

	ride := &models.Ride{
		DriverID:   driver.ID,
		DriverName: driver.FullName(),

		Direction: in.Direction,

		Origin:      origin,
		Destination: destination,

		OriginLat:      originCoords.Lat,
		OriginLng:      originCoords.Lng,
		DestinationLat: destCoords.Lat,
		DestinationLng: destCoords.Lng,

		Date:                 in.Date,
		DepartureTime:        in.DepartureTime,
		EstimatedArrivalTime: arrival,

		AvailableSeats:    in.AvailableSeats,
		MaxDetourMeters:   in.MaxDetourMeters,
		MaxWaitingMinutes: in.MaxWaitingMinutes,

		Status:     string(domain.InitialStatus()),
		Notes:      in.Notes,
		Passengers: []models.RidePassenger{},
	}

	for i, wp := range in.Route {
		wp.Position = i
		ride.Route = append(ride.Route, wp)
	}

	if err := uc.repo.CreateRide(ctx, ride); err != nil {
		return nil, err
	}

	// Aviso a toda la comunidad salvo admins y el propio conductor.
	targets, err := uc.repo.ListNotificationTargets(ctx, driver.ID)
	if err != nil {
		return nil, err
	}

	for _, target := range targets {
		uc.notify.Dispatch(models.Notification{
			UserID: target.ID,
			Title:  "Nuevo viaje disponible",
			Message: fmt.Sprintf(
				"%s ha publicado un viaje desde %s que podría interesarte.",
				driver.FullName(), ride.Origin,
			),
			Type:   models.NotifInfo,
			RideID: &ride.ID,
		})
	}

	return ride, nil
}

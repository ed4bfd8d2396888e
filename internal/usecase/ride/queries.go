package ride

import (
	"context"

	domain "github.com/unirideapp/uniride-api/internal/domain/ride"
	"github.com/unirideapp/uniride-api/internal/models"
	"github.com/unirideapp/uniride-api/internal/timezone"
)

// RideView agrega la perspectiva del que consulta.
type RideView struct {
	models.Ride
	IsDriver bool `json:"is_driver"`
}

type ListRides struct {
	repo domain.Repository
}

func NewListRides(repo domain.Repository) *ListRides {
	return &ListRides{repo: repo}
}

// Available: viajes futuros y activos con lugar, donde el usuario no
// participa todavía.
func (uc *ListRides) Available(
	ctx context.Context,
	userID uint,
) ([]models.Ride, error) {
	return uc.repo.ListAvailable(ctx, userID, timezone.Today())
}

// Mine: todos los viajes donde el usuario maneja o viaja.
func (uc *ListRides) Mine(
	ctx context.Context,
	userID uint,
) ([]RideView, error) {

	rides, err := uc.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]RideView, 0, len(rides))
	for _, r := range rides {
		views = append(views, RideView{
			Ride:     r,
			IsDriver: r.DriverID == userID,
		})
	}
	return views, nil
}

// Recent: los últimos 5 viajes del usuario.
func (uc *ListRides) Recent(
	ctx context.Context,
	userID uint,
) ([]RideView, error) {

	views, err := uc.Mine(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(views) > 5 {
		views = views[:5]
	}
	return views, nil
}

// Current: el viaje activo de hoy donde el usuario maneja o viaja
// confirmado; nil si no hay.
func (uc *ListRides) Current(
	ctx context.Context,
	userID uint,
) (*RideView, error) {

	ride, err := uc.repo.FindCurrent(ctx, userID, timezone.Today())
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, nil
	}

	return &RideView{
		Ride:     *ride,
		IsDriver: ride.DriverID == userID,
	}, nil
}

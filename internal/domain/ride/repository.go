package ride

import (
	"context"

	"github.com/unirideapp/uniride-api/internal/models"
)

type Repository interface {
	// -------- Users --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetPaymentMethod(
		ctx context.Context,
		userID uint,
		paymentMethodID uint,
	) (*models.PaymentMethod, error)

	// Destinatarios del aviso de viaje nuevo: todos menos el publicador
	// y los administradores.
	ListNotificationTargets(
		ctx context.Context,
		excludeUserID uint,
	) ([]models.User, error)

	// -------- Ride (create / state change) --------
	CreateRide(
		ctx context.Context,
		r *models.Ride,
	) error

	GetRide(
		ctx context.Context,
		id uint,
	) (*models.Ride, error)

	SaveRide(
		ctx context.Context,
		r *models.Ride,
	) error

	// JoinRide corre dentro de una transacción con lock de fila: relee
	// el viaje, aplica Join y persiste, de modo que dos altas
	// simultáneas no puedan superar la capacidad.
	JoinRide(
		ctx context.Context,
		rideID uint,
		p models.RidePassenger,
	) (*models.Ride, error)

	// -------- Queries --------
	ListForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Ride, error)

	ListAvailable(
		ctx context.Context,
		userID uint,
		fromDate string,
	) ([]models.Ride, error)

	FindCurrent(
		ctx context.Context,
		userID uint,
		date string,
	) (*models.Ride, error)
}

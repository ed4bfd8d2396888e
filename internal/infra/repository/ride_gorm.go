package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/unirideapp/uniride-api/internal/domain/ride"
	"github.com/unirideapp/uniride-api/internal/httperr"
	"github.com/unirideapp/uniride-api/internal/models"
)

type RideGormRepository struct {
	db *gorm.DB
}

func NewRideGormRepository(db *gorm.DB) *RideGormRepository {
	return &RideGormRepository{db: db}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *RideGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("user_not_found")
		}
		return nil, err
	}
	return &user, nil
}

func (r *RideGormRepository) GetPaymentMethod(
	ctx context.Context,
	userID uint,
	paymentMethodID uint,
) (*models.PaymentMethod, error) {

	var pm models.PaymentMethod
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", paymentMethodID, userID).
		First(&pm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("payment_method_not_found")
		}
		return nil, err
	}
	return &pm, nil
}

func (r *RideGormRepository) ListNotificationTargets(
	ctx context.Context,
	excludeUserID uint,
) ([]models.User, error) {

	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("id <> ?", excludeUserID).
		Find(&users).Error; err != nil {
		return nil, err
	}

	// Los roles viven serializados; el filtro de admins se hace acá.
	targets := users[:0]
	for _, u := range users {
		if !u.IsAdmin() {
			targets = append(targets, u)
		}
	}
	return targets, nil
}

// --------------------------------------------------
// Ride (create / state change)
// --------------------------------------------------

func (r *RideGormRepository) CreateRide(
	ctx context.Context,
	ride *models.Ride,
) error {
	return r.db.WithContext(ctx).Create(ride).Error
}

func (r *RideGormRepository) GetRide(
	ctx context.Context,
	id uint,
) (*models.Ride, error) {

	var ride models.Ride
	if err := r.db.WithContext(ctx).
		Preload("Passengers").
		Preload("Route", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&ride, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("ride_not_found")
		}
		return nil, err
	}
	return &ride, nil
}

func (r *RideGormRepository) SaveRide(
	ctx context.Context,
	ride *models.Ride,
) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(ride).Error
}

// JoinRide relee el viaje con lock de fila y aplica el alta adentro de
// la transacción: el chequeo de asientos y el append quedan
// serializados por viaje.
func (r *RideGormRepository) JoinRide(
	ctx context.Context,
	rideID uint,
	p models.RidePassenger,
) (*models.Ride, error) {

	var joined *models.Ride

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var ride models.Ride
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ride, rideID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("ride_not_found")
			}
			return err
		}

		if err := tx.
			Where("ride_id = ?", rideID).
			Find(&ride.Passengers).Error; err != nil {
			return err
		}

		if err := domain.Join(&ride, p); err != nil {
			return err
		}

		// Se crea en el lugar para que el ID asignado quede en el
		// viaje devuelto.
		if err := tx.Create(&ride.Passengers[len(ride.Passengers)-1]).Error; err != nil {
			return err
		}

		joined = &ride
		return nil
	})

	if err != nil {
		return nil, err
	}
	return joined, nil
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (r *RideGormRepository) ListForUser(
	ctx context.Context,
	userID uint,
) ([]models.Ride, error) {

	var rides []models.Ride
	if err := r.db.WithContext(ctx).
		Preload("Passengers").
		Where(
			"driver_id = ? OR id IN (?)",
			userID,
			r.db.Model(&models.RidePassenger{}).
				Select("ride_id").
				Where("user_id = ?", userID),
		).
		Order("date DESC, departure_time DESC").
		Find(&rides).Error; err != nil {
		return nil, err
	}
	return rides, nil
}

func (r *RideGormRepository) ListAvailable(
	ctx context.Context,
	userID uint,
	fromDate string,
) ([]models.Ride, error) {

	var rides []models.Ride
	if err := r.db.WithContext(ctx).
		Preload("Passengers").
		Where(
			"date >= ? AND status = ? AND driver_id <> ? AND id NOT IN (?)",
			fromDate,
			string(domain.StatusActive),
			userID,
			r.db.Model(&models.RidePassenger{}).
				Select("ride_id").
				Where("user_id = ?", userID),
		).
		Order("date ASC, departure_time ASC").
		Find(&rides).Error; err != nil {
		return nil, err
	}

	// El corte por capacidad se resuelve sobre los pasajeros cargados.
	open := rides[:0]
	for _, ride := range rides {
		if len(ride.Passengers) < ride.AvailableSeats {
			open = append(open, ride)
		}
	}
	return open, nil
}

func (r *RideGormRepository) FindCurrent(
	ctx context.Context,
	userID uint,
	date string,
) (*models.Ride, error) {

	var rides []models.Ride
	if err := r.db.WithContext(ctx).
		Preload("Passengers").
		Where("date = ? AND status = ?", date, string(domain.StatusActive)).
		Find(&rides).Error; err != nil {
		return nil, err
	}

	for i := range rides {
		ride := &rides[i]
		if ride.DriverID == userID {
			return ride, nil
		}
		if p := ride.PassengerByUser(userID); p != nil &&
			p.Status == string(domain.PassengerConfirmed) {
			return ride, nil
		}
	}
	return nil, nil
}

// Compile-time check
var _ domain.Repository = (*RideGormRepository)(nil)

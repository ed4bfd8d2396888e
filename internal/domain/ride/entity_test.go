package ride

import (
	"testing"

	"github.com/unirideapp/uniride-api/internal/httperr"
	"github.com/unirideapp/uniride-api/internal/models"
)

func activeRide(seats int, passengers ...models.RidePassenger) *models.Ride {
	return &models.Ride{
		ID:             1,
		DriverID:       10,
		Status:         string(StatusActive),
		AvailableSeats: seats,
		Passengers:     passengers,
	}
}

func confirmed(userID uint) models.RidePassenger {
	return models.RidePassenger{
		RideID: 1,
		UserID: userID,
		Status: string(PassengerConfirmed),
	}
}

func TestCancelByDriverCascades(t *testing.T) {
	r := activeRide(3,
		confirmed(20),
		models.RidePassenger{RideID: 1, UserID: 21, Status: string(PassengerCancelled)},
	)

	if err := CancelByDriver(r); err != nil {
		t.Fatalf("CancelByDriver: %v", err)
	}

	if r.Status != string(StatusCancelled) {
		t.Errorf("ride status = %q, want cancelled", r.Status)
	}
	for _, p := range r.Passengers {
		if p.Status != string(PassengerCancelled) {
			t.Errorf("passenger %d status = %q, want cancelled", p.UserID, p.Status)
		}
	}
}

func TestCancelIsTerminal(t *testing.T) {
	for _, status := range []Status{StatusCancelled, StatusCompleted} {
		r := activeRide(3)
		r.Status = string(status)

		err := CancelByDriver(r)
		if !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("CancelByDriver on %s: err = %v, want invalid_state", status, err)
		}
	}
}

func TestCancelByPassenger(t *testing.T) {
	r := activeRide(3, confirmed(20), confirmed(21))

	if err := CancelByPassenger(r, 20); err != nil {
		t.Fatalf("CancelByPassenger: %v", err)
	}

	if r.Status != string(StatusActive) {
		t.Errorf("ride status = %q, want active", r.Status)
	}
	if got := r.PassengerByUser(20).Status; got != string(PassengerCancelled) {
		t.Errorf("passenger 20 status = %q, want cancelled", got)
	}
	if got := r.PassengerByUser(21).Status; got != string(PassengerConfirmed) {
		t.Errorf("passenger 21 status = %q, want confirmed", got)
	}
}

func TestCancelByPassengerNotAPassenger(t *testing.T) {
	r := activeRide(3, confirmed(20))

	err := CancelByPassenger(r, 99)
	if !httperr.IsBusiness(err, "not_a_passenger") {
		t.Errorf("err = %v, want not_a_passenger", err)
	}
}

func TestFinishPromotesOnlyConfirmed(t *testing.T) {
	r := activeRide(3,
		confirmed(20),
		models.RidePassenger{RideID: 1, UserID: 21, Status: string(PassengerCancelled)},
	)

	if err := Finish(r); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	if r.Status != string(StatusCompleted) {
		t.Errorf("ride status = %q, want completed", r.Status)
	}
	if got := r.PassengerByUser(20).Status; got != string(PassengerCompleted) {
		t.Errorf("passenger 20 status = %q, want completed", got)
	}
	if got := r.PassengerByUser(21).Status; got != string(PassengerCancelled) {
		t.Errorf("passenger 21 status = %q, want cancelled", got)
	}
}

func TestFinishRequiresActive(t *testing.T) {
	r := activeRide(3)
	r.Status = string(StatusCompleted)

	err := Finish(r)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("err = %v, want invalid_state", err)
	}
}

func TestJoin(t *testing.T) {
	r := activeRide(2)

	if err := Join(r, models.RidePassenger{UserID: 20, Name: "Ana García"}); err != nil {
		t.Fatalf("Join: %v", err)
	}

	p := r.PassengerByUser(20)
	if p == nil {
		t.Fatal("passenger not added")
	}
	if p.Status != string(PassengerConfirmed) {
		t.Errorf("status = %q, want confirmed", p.Status)
	}
	if p.RideID != r.ID {
		t.Errorf("ride id = %d, want %d", p.RideID, r.ID)
	}
}

func TestJoinDuplicate(t *testing.T) {
	r := activeRide(3, confirmed(20))

	err := Join(r, models.RidePassenger{UserID: 20})
	if !httperr.IsBusiness(err, "already_joined") {
		t.Errorf("err = %v, want already_joined", err)
	}
}

func TestJoinFullRide(t *testing.T) {
	r := activeRide(2, confirmed(20), confirmed(21))

	err := Join(r, models.RidePassenger{UserID: 22})
	if !httperr.IsBusiness(err, "no_seats_available") {
		t.Errorf("err = %v, want no_seats_available", err)
	}
	if len(r.Passengers) != 2 {
		t.Errorf("passengers = %d, want 2", len(r.Passengers))
	}
}

// Un pasajero que canceló sigue ocupando su entrada; no libera el asiento.
func TestJoinCancelledEntryStillCounts(t *testing.T) {
	r := activeRide(1,
		models.RidePassenger{RideID: 1, UserID: 20, Status: string(PassengerCancelled)},
	)

	err := Join(r, models.RidePassenger{UserID: 21})
	if !httperr.IsBusiness(err, "no_seats_available") {
		t.Errorf("err = %v, want no_seats_available", err)
	}
}

func TestJoinInactiveRide(t *testing.T) {
	r := activeRide(3)
	r.Status = string(StatusCancelled)

	err := Join(r, models.RidePassenger{UserID: 20})
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("err = %v, want invalid_state", err)
	}
}

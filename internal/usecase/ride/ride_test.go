package ride

import (
	"context"
	"testing"

	domain "github.com/unirideapp/uniride-api/internal/domain/ride"
	"github.com/unirideapp/uniride-api/internal/httperr"
	"github.com/unirideapp/uniride-api/internal/models"
)

// ======================================================
// FAKES
// ======================================================

type fakeRepo struct {
	users          map[uint]*models.User
	paymentMethods map[uint]*models.PaymentMethod
	rides          map[uint]*models.Ride
	nextRideID     uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:          map[uint]*models.User{},
		paymentMethods: map[uint]*models.PaymentMethod{},
		rides:          map[uint]*models.Ride{},
		nextRideID:     1,
	}
}

func (f *fakeRepo) addUser(id uint, name string, roles ...models.PlatformRole) *models.User {
	u := &models.User{
		ID:            id,
		FirstName:     name,
		LastName:      "Test",
		PlatformRoles: roles,
	}
	f.users[id] = u
	return u
}

func (f *fakeRepo) GetUser(ctx context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, httperr.ErrBusiness("user_not_found")
	}
	return u, nil
}

func (f *fakeRepo) GetPaymentMethod(ctx context.Context, userID, pmID uint) (*models.PaymentMethod, error) {
	pm, ok := f.paymentMethods[pmID]
	if !ok || pm.UserID != userID {
		return nil, httperr.ErrBusiness("payment_method_not_found")
	}
	return pm, nil
}

func (f *fakeRepo) ListNotificationTargets(ctx context.Context, excludeUserID uint) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.ID == excludeUserID || u.IsAdmin() {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeRepo) CreateRide(ctx context.Context, r *models.Ride) error {
	r.ID = f.nextRideID
	f.nextRideID++
	f.rides[r.ID] = r
	return nil
}

func (f *fakeRepo) GetRide(ctx context.Context, id uint) (*models.Ride, error) {
	r, ok := f.rides[id]
	if !ok {
		return nil, httperr.ErrBusiness("ride_not_found")
	}
	clone := *r
	clone.Passengers = append([]models.RidePassenger{}, r.Passengers...)
	return &clone, nil
}

func (f *fakeRepo) SaveRide(ctx context.Context, r *models.Ride) error {
	f.rides[r.ID] = r
	return nil
}

func (f *fakeRepo) JoinRide(ctx context.Context, rideID uint, p models.RidePassenger) (*models.Ride, error) {
	r, ok := f.rides[rideID]
	if !ok {
		return nil, httperr.ErrBusiness("ride_not_found")
	}
	if err := domain.Join(r, p); err != nil {
		return nil, err
	}
	return r, nil
}

func (f *fakeRepo) ListForUser(ctx context.Context, userID uint) ([]models.Ride, error) {
	var out []models.Ride
	for _, r := range f.rides {
		if r.DriverID == userID || r.PassengerByUser(userID) != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAvailable(ctx context.Context, userID uint, fromDate string) ([]models.Ride, error) {
	var out []models.Ride
	for _, r := range f.rides {
		if r.Status != string(domain.StatusActive) || r.DriverID == userID {
			continue
		}
		if r.PassengerByUser(userID) != nil || len(r.Passengers) >= r.AvailableSeats {
			continue
		}
		if r.Date >= fromDate {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindCurrent(ctx context.Context, userID uint, date string) (*models.Ride, error) {
	for _, r := range f.rides {
		if r.Date != date || r.Status != string(domain.StatusActive) {
			continue
		}
		if r.DriverID == userID || r.PassengerByUser(userID) != nil {
			return r, nil
		}
	}
	return nil, nil
}

type fakeNotifier struct {
	sent []models.Notification
}

func (f *fakeNotifier) Dispatch(n models.Notification) {
	f.sent = append(f.sent, n)
}

func (f *fakeNotifier) sentTo(userID uint) []models.Notification {
	var out []models.Notification
	for _, n := range f.sent {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func fixedJitter(uc *PublishRide) *PublishRide {
	uc.jitter = func() int { return 0 }
	return uc
}

// ======================================================
// PUBLISH
// ======================================================

func TestPublishRide(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(1, "Carlos", models.RoleDriver)
	repo.addUser(2, "Ana", models.RolePassenger)
	repo.addUser(3, "Lucía", models.RolePassenger)
	repo.users[4] = &models.User{ID: 4, InstitutionalRoles: []models.InstitutionalRole{models.RoleAdmin}}

	notifier := &fakeNotifier{}
	uc := fixedJitter(NewPublishRide(repo, notifier))

	ride, err := uc.Execute(context.Background(), PublishRideInput{
		DriverID:       1,
		Direction:      models.ToUniversity,
		Origin:         "Palermo",
		Date:           "2026-09-01",
		DepartureTime:  "08:00",
		AvailableSeats: 3,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// Un extremo siempre es el campus.
	if ride.Destination != domain.CampusName {
		t.Errorf("destination = %q, want %q", ride.Destination, domain.CampusName)
	}
	if ride.Status != string(domain.StatusActive) {
		t.Errorf("status = %q, want active", ride.Status)
	}
	if ride.EstimatedArrivalTime != "08:30" {
		t.Errorf("arrival = %q, want 08:30", ride.EstimatedArrivalTime)
	}

	// Fan-out a toda la comunidad menos admins y el publicador.
	if len(notifier.sent) != 2 {
		t.Fatalf("notifications = %d, want 2", len(notifier.sent))
	}
	for _, n := range notifier.sent {
		if n.UserID == 1 || n.UserID == 4 {
			t.Errorf("notified user %d, should be excluded", n.UserID)
		}
		if n.Type != models.NotifInfo {
			t.Errorf("type = %q, want info", n.Type)
		}
		if n.RideID == nil || *n.RideID != ride.ID {
			t.Errorf("ride id not attached")
		}
	}
}

func TestPublishRideFromUniversity(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(1, "Carlos", models.RoleDriver)
	uc := fixedJitter(NewPublishRide(repo, &fakeNotifier{}))

	ride, err := uc.Execute(context.Background(), PublishRideInput{
		DriverID:       1,
		Direction:      models.FromUniversity,
		Destination:    "Belgrano",
		Date:           "2026-09-01",
		DepartureTime:  "18:00",
		AvailableSeats: 2,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if ride.Origin != domain.CampusName {
		t.Errorf("origin = %q, want %q", ride.Origin, domain.CampusName)
	}
	if ride.Destination != "Belgrano" {
		t.Errorf("destination = %q, want Belgrano", ride.Destination)
	}
}

func TestPublishRideWithRoute(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(1, "Carlos", models.RoleDriver)
	uc := fixedJitter(NewPublishRide(repo, &fakeNotifier{}))

	ride, err := uc.Execute(context.Background(), PublishRideInput{
		DriverID:       1,
		Direction:      models.ToUniversity,
		Origin:         "Liniers",
		Date:           "2026-09-01",
		DepartureTime:  "07:30",
		AvailableSeats: 3,
		Route: []models.RideWaypoint{
			{Name: "Liniers", IsPickupPoint: true},
			{Name: "Caballito", IsPickupPoint: true},
			{Name: "Universidad"},
		},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(ride.Route) != 3 {
		t.Fatalf("route = %d puntos, want 3", len(ride.Route))
	}
	// El orden del pedido define las posiciones.
	for i, wp := range ride.Route {
		if wp.Position != i {
			t.Errorf("waypoint %q position = %d, want %d", wp.Name, wp.Position, i)
		}
	}
	if !ride.Route[0].IsPickupPoint || ride.Route[2].IsPickupPoint {
		t.Errorf("pickup flags not preserved: %+v", ride.Route)
	}
}

func TestPublishRideRequiresDriverRole(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(1, "Ana", models.RolePassenger)
	uc := fixedJitter(NewPublishRide(repo, &fakeNotifier{}))

	_, err := uc.Execute(context.Background(), PublishRideInput{
		DriverID:       1,
		Direction:      models.ToUniversity,
		Origin:         "Palermo",
		Date:           "2026-09-01",
		DepartureTime:  "08:00",
		AvailableSeats: 3,
	})
	if !httperr.IsBusiness(err, "driver_role_required") {
		t.Errorf("err = %v, want driver_role_required", err)
	}
}

func TestPublishRideInvalidSeats(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(1, "Carlos", models.RoleDriver)
	uc := fixedJitter(NewPublishRide(repo, &fakeNotifier{}))

	for _, seats := range []int{0, 9, -1} {
		_, err := uc.Execute(context.Background(), PublishRideInput{
			DriverID:       1,
			Direction:      models.ToUniversity,
			Origin:         "Palermo",
			Date:           "2026-09-01",
			DepartureTime:  "08:00",
			AvailableSeats: seats,
		})
		if !httperr.IsBusiness(err, "invalid_seats") {
			t.Errorf("seats %d: err = %v, want invalid_seats", seats, err)
		}
	}
}

// ======================================================
// JOIN
// ======================================================

func publishTestRide(t *testing.T, repo *fakeRepo, driverID uint, seats int) *models.Ride {
	t.Helper()
	uc := fixedJitter(NewPublishRide(repo, &fakeNotifier{}))
	ride, err := uc.Execute(context.Background(), PublishRideInput{
		DriverID:       driverID,
		Direction:      models.ToUniversity,
		Origin:         "Palermo",
		Date:           "2026-09-01",
		DepartureTime:  "08:00",
		AvailableSeats: seats,
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	return ride
}

func TestJoinRideFillsSeats(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(1, "Carlos", models.RoleDriver)
	repo.addUser(2, "Ana", models.RolePassenger)
	repo.addUser(3, "Lucía", models.RolePassenger)
	repo.addUser(4, "Pedro", models.RolePassenger)
	ride := publishTestRide(t, repo, 1, 2)

	notifier := &fakeNotifier{}
	uc := NewJoinRide(repo, notifier)

	for _, userID := range []uint{2, 3} {
		if _, err := uc.Execute(context.Background(), userID, ride.ID, nil); err != nil {
			t.Fatalf("join user %d: %v", userID, err)
		}
	}

	_, err := uc.Execute(context.Background(), 4, ride.ID, nil)
	if !httperr.IsBusiness(err, "no_seats_available") {
		t.Errorf("err = %v, want no_seats_available", err)
	}

	// Conductor y pasajero reciben aviso por cada alta exitosa.
	if got := len(notifier.sentTo(1)); got != 2 {
		t.Errorf("driver notifications = %d, want 2", got)
	}
	if got := len(notifier.sentTo(2)); got != 1 {
		t.Errorf("passenger notifications = %d, want 1", got)
	}
}

func TestJoinRideRequiresPassengerRole(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(1, "Carlos", models.RoleDriver)
	repo.addUser(2, "Diego", models.RoleDriver)
	ride := publishTestRide(t, repo, 1, 2)

	_, err := NewJoinRide(repo, &fakeNotifier{}).Execute(context.Background(), 2, ride.ID, nil)
	if !httperr.IsBusiness(err, "passenger_role_required") {
		t.Errorf("err = %v, want passenger_role_required", err)
	}
}

func TestJoinRideValidatesPaymentMethod(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(1, "Carlos", models.RoleDriver)
	repo.addUser(2, "Ana", models.RolePassenger)
	ride := publishTestRide(t, repo, 1, 2)

	missing := uint(99)
	_, err := NewJoinRide(repo, &fakeNotifier{}).Execute(context.Background(), 2, ride.ID, &missing)
	if !httperr.IsBusiness(err, "payment_method_not_found") {
		t.Errorf("err = %v, want payment_method_not_found", err)
	}
}

// ======================================================
// CANCEL
// ======================================================

func TestCancelRideAsDriver(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(1, "Carlos", models.RoleDriver)
	repo.addUser(2, "Ana", models.RolePassenger)
	repo.addUser(3, "Lucía", models.RolePassenger)
	ride := publishTestRide(t, repo, 1, 3)

	joinUC := NewJoinRide(repo, &fakeNotifier{})
	for _, userID := range []uint{2, 3} {
		if _, err := joinUC.Execute(context.Background(), userID, ride.ID, nil); err != nil {
			t.Fatalf("join: %v", err)
		}
	}

	notifier := &fakeNotifier{}
	got, err := NewCancelRide(repo, notifier).Execute(context.Background(), 1, ride.ID)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if got.Status != string(domain.StatusCancelled) {
		t.Errorf("status = %q, want cancelled", got.Status)
	}
	for _, p := range got.Passengers {
		if p.Status != string(domain.PassengerCancelled) {
			t.Errorf("passenger %d status = %q, want cancelled", p.UserID, p.Status)
		}
	}

	// Warning a cada pasajero, info al conductor.
	for _, userID := range []uint{2, 3} {
		ns := notifier.sentTo(userID)
		if len(ns) != 1 || ns[0].Type != models.NotifWarning {
			t.Errorf("passenger %d notifications = %+v, want one warning", userID, ns)
		}
	}
	ns := notifier.sentTo(1)
	if len(ns) != 1 || ns[0].Type != models.NotifInfo {
		t.Errorf("driver notifications = %+v, want one info", ns)
	}
}

func TestCancelRideAsPassenger(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(1, "Carlos", models.RoleDriver)
	repo.addUser(2, "Ana", models.RolePassenger)
	ride := publishTestRide(t, repo, 1, 3)

	joinUC := NewJoinRide(repo, &fakeNotifier{})
	if _, err := joinUC.Execute(context.Background(), 2, ride.ID, nil); err != nil {
		t.Fatalf("join: %v", err)
	}

	notifier := &fakeNotifier{}
	got, err := NewCancelRide(repo, notifier).Execute(context.Background(), 2, ride.ID)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// El viaje sigue activo; solo el pasajero queda cancelado.
	if got.Status != string(domain.StatusActive) {
		t.Errorf("status = %q, want active", got.Status)
	}
	if ns := notifier.sentTo(1); len(ns) != 1 || ns[0].Type != models.NotifWarning {
		t.Errorf("driver notifications = %+v, want one warning", ns)
	}
}

func TestCancelRideNotAPassenger(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(1, "Carlos", models.RoleDriver)
	repo.addUser(2, "Ana", models.RolePassenger)
	ride := publishTestRide(t, repo, 1, 3)

	_, err := NewCancelRide(repo, &fakeNotifier{}).Execute(context.Background(), 2, ride.ID)
	if !httperr.IsBusiness(err, "not_a_passenger") {
		t.Errorf("err = %v, want not_a_passenger", err)
	}
}

// ======================================================
// FINISH
// ======================================================

func TestFinishRide(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(1, "Carlos", models.RoleDriver)
	repo.addUser(2, "Ana", models.RolePassenger)
	ride := publishTestRide(t, repo, 1, 3)

	if _, err := NewJoinRide(repo, &fakeNotifier{}).Execute(context.Background(), 2, ride.ID, nil); err != nil {
		t.Fatalf("join: %v", err)
	}

	notifier := &fakeNotifier{}
	got, err := NewFinishRide(repo, notifier).Execute(context.Background(), 1, ride.ID)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if got.Status != string(domain.StatusCompleted) {
		t.Errorf("status = %q, want completed", got.Status)
	}
	if ns := notifier.sentTo(2); len(ns) != 1 || ns[0].Type != models.NotifSuccess {
		t.Errorf("passenger notifications = %+v, want one success", ns)
	}
	if ns := notifier.sentTo(1); len(ns) != 1 || ns[0].Type != models.NotifSuccess {
		t.Errorf("driver notifications = %+v, want one success", ns)
	}
}

func TestFinishRideDriverOnly(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(1, "Carlos", models.RoleDriver)
	repo.addUser(2, "Ana", models.RolePassenger)
	ride := publishTestRide(t, repo, 1, 3)

	_, err := NewFinishRide(repo, &fakeNotifier{}).Execute(context.Background(), 2, ride.ID)
	if !httperr.IsBusiness(err, "driver_only") {
		t.Errorf("err = %v, want driver_only", err)
	}
}

func TestFinishRideAlreadyFinished(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser(1, "Carlos", models.RoleDriver)
	ride := publishTestRide(t, repo, 1, 3)

	uc := NewFinishRide(repo, &fakeNotifier{})
	if _, err := uc.Execute(context.Background(), 1, ride.ID); err != nil {
		t.Fatalf("first finish: %v", err)
	}

	_, err := uc.Execute(context.Background(), 1, ride.ID)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("err = %v, want invalid_state", err)
	}
}

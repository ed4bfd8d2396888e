package stats

import (
	"context"
	"fmt"
	"time"

	domain "github.com/unirideapp/uniride-api/internal/domain/ride"
	"github.com/unirideapp/uniride-api/internal/models"
)

// Constantes sintéticas por viaje: no hay motor de rutas ni tarifas,
// los totales son funciones lineales de la cantidad de viajes.
const (
	kmPerRide     = 15.7
	co2KgPerRide  = 2.3
	earnedPerRide = 250.0
	spentPerRide  = 200.0
)

var weekdays = [7]string{
	"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado",
}

var months = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type Statistics struct {
	TotalRidesCompleted   int     `json:"total_rides_completed"`
	TotalDistanceTraveled float64 `json:"total_distance_traveled"`
	TotalCO2Saved         float64 `json:"total_co2_saved"`
	TotalMoneyEarned      float64 `json:"total_money_earned"`
	TotalMoneySpent       float64 `json:"total_money_spent"`

	AverageRating float64 `json:"average_rating"`

	MostFrequentDestination string `json:"most_frequent_destination"`
	MostFrequentOrigin      string `json:"most_frequent_origin"`
	MostActiveDay           string `json:"most_active_day"`

	RidesPerMonth   []MonthCount `json:"rides_per_month"`
	RidesPerWeekday []DayCount   `json:"rides_per_weekday"`

	PassengerCount      int     `json:"passenger_count"`
	DriverCount         int     `json:"driver_count"`
	CancelledRidesCount int     `json:"cancelled_rides_count"`
	CompletionRate      float64 `json:"completion_rate"`
}

// Compute agrega las estadísticas del usuario sobre sus viajes (como
// conductor o pasajero). Es puro: no toca repositorios ni cache.
func Compute(userID uint, rating float64, rides []models.Ride) *Statistics {

	s := &Statistics{
		AverageRating:           rating,
		MostFrequentDestination: "N/A",
		MostFrequentOrigin:      "N/A",
		MostActiveDay:           "N/A",
	}

	s.RidesPerMonth = make([]MonthCount, 12)
	for i, m := range months {
		s.RidesPerMonth[i] = MonthCount{Month: m}
	}
	s.RidesPerWeekday = make([]DayCount, 7)
	for i, d := range weekdays {
		s.RidesPerWeekday[i] = DayCount{Day: d}
	}

	completed := 0

	for _, r := range rides {
		isDriver := r.DriverID == userID
		entry := r.PassengerByUser(userID)

		if isDriver {
			s.DriverCount++
		}
		if entry != nil {
			s.PassengerCount++
		}

		// Para pasajeros cuenta su propio estado, no el del viaje.
		switch {
		case r.Status == string(domain.StatusCompleted):
			completed++
		case !isDriver && entry != nil && entry.Status == string(domain.PassengerCompleted):
			completed++
		}

		switch {
		case r.Status == string(domain.StatusCancelled):
			s.CancelledRidesCount++
		case !isDriver && entry != nil && entry.Status == string(domain.PassengerCancelled):
			s.CancelledRidesCount++
		}

		if date, err := time.Parse("2006-01-02", r.Date); err == nil {
			s.RidesPerWeekday[int(date.Weekday())].Count++
			s.RidesPerMonth[int(date.Month())-1].Count++
		}
	}

	s.TotalRidesCompleted = completed
	s.TotalDistanceTraveled = float64(len(rides)) * kmPerRide
	s.TotalCO2Saved = float64(len(rides)) * co2KgPerRide
	s.TotalMoneyEarned = float64(s.DriverCount) * earnedPerRide
	s.TotalMoneySpent = float64(s.PassengerCount) * spentPerRide

	if len(rides) > 0 {
		s.CompletionRate = float64(completed) / float64(len(rides)) * 100
	}

	s.MostFrequentOrigin = majority(rides, func(r models.Ride) string { return r.Origin })
	s.MostFrequentDestination = majority(rides, func(r models.Ride) string { return r.Destination })

	best := 0
	for i, d := range s.RidesPerWeekday {
		if d.Count > s.RidesPerWeekday[best].Count {
			best = i
		}
	}
	if s.RidesPerWeekday[best].Count > 0 {
		s.MostActiveDay = s.RidesPerWeekday[best].Day
	}

	return s
}

// majority: el valor más repetido; los empates los gana el visto
// primero.
func majority(rides []models.Ride, key func(models.Ride) string) string {
	counts := map[string]int{}
	order := []string{}

	for _, r := range rides {
		k := key(r)
		if k == "" {
			continue
		}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	bestValue := "N/A"
	bestCount := 0
	for _, k := range order {
		if counts[k] > bestCount {
			bestValue = k
			bestCount = counts[k]
		}
	}
	return bestValue
}

// ======================================================
// USE CASE
// ======================================================

// Cache cubre lo que el handler necesita de Redis; nil deshabilita.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration)
}

// El TTL acompaña la cadencia de polling del cliente (30 segundos).
const cacheTTL = 30 * time.Second

type GetStatistics struct {
	repo  domain.Repository
	cache Cache
}

func NewGetStatistics(repo domain.Repository, cache Cache) *GetStatistics {
	return &GetStatistics{repo: repo, cache: cache}
}

func (uc *GetStatistics) Execute(
	ctx context.Context,
	userID uint,
) (*Statistics, error) {

	key := fmt.Sprintf("stats:%d", userID)

	if uc.cache != nil {
		var cached Statistics
		if uc.cache.Get(ctx, key, &cached) {
			return &cached, nil
		}
	}

	user, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rides, err := uc.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	s := Compute(userID, user.Rating, rides)

	if uc.cache != nil {
		uc.cache.Set(ctx, key, s, cacheTTL)
	}
	return s, nil
}

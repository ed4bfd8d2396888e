package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/unirideapp/uniride-api/internal/cache"
	"github.com/unirideapp/uniride-api/internal/httperr"
	"github.com/unirideapp/uniride-api/internal/httpresp"
	"github.com/unirideapp/uniride-api/internal/middleware"
	"github.com/unirideapp/uniride-api/internal/models"
	ucRide "github.com/unirideapp/uniride-api/internal/usecase/ride"
)

// ======================================================
// HANDLER
// ======================================================

type RideHandler struct {
	publish *ucRide.PublishRide
	join    *ucRide.JoinRide
	cancel  *ucRide.CancelRide
	finish  *ucRide.FinishRide
	list    *ucRide.ListRides

	cache *cache.Redis
}

func NewRideHandler(
	publish *ucRide.PublishRide,
	join *ucRide.JoinRide,
	cancel *ucRide.CancelRide,
	finish *ucRide.FinishRide,
	list *ucRide.ListRides,
	cache *cache.Redis,
) *RideHandler {
	return &RideHandler{
		publish: publish,
		join:    join,
		cancel:  cancel,
		finish:  finish,
		list:    list,
		cache:   cache,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type PublishRideRequest struct {
	Direction models.RideDirection `json:"direction" binding:"required,oneof=to_university from_university"`

	Origin      string `json:"origin"`
	Destination string `json:"destination"`

	Date          string `json:"date" binding:"required"`
	DepartureTime string `json:"departure_time" binding:"required"`

	AvailableSeats    int `json:"available_seats" binding:"required"`
	MaxDetourMeters   int `json:"max_detour_meters"`
	MaxWaitingMinutes int `json:"max_waiting_minutes"`

	Notes string `json:"notes"`

	Route []RideWaypointRequest `json:"route" binding:"omitempty,dive"`
}

type RideWaypointRequest struct {
	Name          string  `json:"name" binding:"required"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	IsPickupPoint bool    `json:"is_pickup_point"`
	EstimatedTime string  `json:"estimated_time"`
}

type JoinRideRequest struct {
	PaymentMethodID *uint `json:"payment_method_id"`
}

// ======================================================
// MUTATIONS
// ======================================================

func (h *RideHandler) Publish(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req PublishRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	route := make([]models.RideWaypoint, 0, len(req.Route))
	for _, wp := range req.Route {
		route = append(route, models.RideWaypoint{
			Name:          wp.Name,
			Lat:           wp.Lat,
			Lng:           wp.Lng,
			IsPickupPoint: wp.IsPickupPoint,
			EstimatedTime: wp.EstimatedTime,
		})
	}

	ride, err := h.publish.Execute(c.Request.Context(), ucRide.PublishRideInput{
		DriverID:          userID,
		Direction:         req.Direction,
		Origin:            req.Origin,
		Destination:       req.Destination,
		Date:              req.Date,
		DepartureTime:     req.DepartureTime,
		AvailableSeats:    req.AvailableSeats,
		MaxDetourMeters:   req.MaxDetourMeters,
		MaxWaitingMinutes: req.MaxWaitingMinutes,
		Notes:             req.Notes,
		Route:             route,
	})
	if err != nil {
		writeBusiness(c, err)
		return
	}

	h.invalidateStats(c)
	c.JSON(http.StatusCreated, ride)
}

func (h *RideHandler) Join(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	rideID, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_ride_id", "Identificador de viaje inválido.")
		return
	}

	// El cuerpo es opcional: unirse sin método de pago es válido.
	var req JoinRideRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
			return
		}
	}

	ride, err := h.join.Execute(c.Request.Context(), userID, rideID, req.PaymentMethodID)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	h.invalidateStats(c)
	c.JSON(http.StatusOK, ride)
}

func (h *RideHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	rideID, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_ride_id", "Identificador de viaje inválido.")
		return
	}

	ride, err := h.cancel.Execute(c.Request.Context(), userID, rideID)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	h.invalidateStats(c)
	c.JSON(http.StatusOK, ride)
}

func (h *RideHandler) Finish(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	rideID, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_ride_id", "Identificador de viaje inválido.")
		return
	}

	ride, err := h.finish.Execute(c.Request.Context(), userID, rideID)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	h.invalidateStats(c)
	c.JSON(http.StatusOK, ride)
}

// ======================================================
// QUERIES
// ======================================================

func (h *RideHandler) Available(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	rides, err := h.list.Available(c.Request.Context(), userID)
	if err != nil {
		writeBusiness(c, err)
		return
	}
	httpresp.List(c, rides)
}

func (h *RideHandler) Mine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	rides, err := h.list.Mine(c.Request.Context(), userID)
	if err != nil {
		writeBusiness(c, err)
		return
	}
	httpresp.List(c, rides)
}

func (h *RideHandler) Recent(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	rides, err := h.list.Recent(c.Request.Context(), userID)
	if err != nil {
		writeBusiness(c, err)
		return
	}
	httpresp.List(c, rides)
}

func (h *RideHandler) Current(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	ride, err := h.list.Current(c.Request.Context(), userID)
	if err != nil {
		writeBusiness(c, err)
		return
	}

	// nil explícito: el dashboard distingue "sin viaje hoy".
	c.JSON(http.StatusOK, gin.H{"ride": ride})
}

// ======================================================
// HELPERS
// ======================================================

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// Las estadísticas cacheadas quedan viejas con cualquier mutación de
// viajes; el TTL es corto, igual se barren.
func (h *RideHandler) invalidateStats(c *gin.Context) {
	if h.cache != nil {
		h.cache.DelPattern(c.Request.Context(), "stats:*")
	}
}

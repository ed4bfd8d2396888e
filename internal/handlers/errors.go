package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/unirideapp/uniride-api/internal/httperr"
)

// Mensajes por código de negocio; la capa de presentación los muestra
// tal cual.
var businessMessages = map[string]string{
	"no_session":               "No hay usuario autenticado.",
	"invalid_credentials":      "Credenciales inválidas.",
	"user_not_found":           "Usuario no encontrado.",
	"ride_not_found":           "Viaje no encontrado.",
	"payment_method_not_found": "Método de pago no encontrado.",
	"driver_role_required":     "No tienes permisos. Necesitas el rol de conductor.",
	"passenger_role_required":  "No tienes permisos. Necesitas el rol de pasajero.",
	"driver_only":              "Solo el conductor puede finalizar el viaje.",
	"admin_only":               "No tienes permisos para realizar esta acción.",
	"no_seats_available":       "No hay asientos disponibles.",
	"already_joined":           "Ya te has unido a este viaje.",
	"duplicate_card":           "Ya tienes una tarjeta registrada con este número.",
	"duplicate_identity":       "Ya existe un usuario con el mismo legajo o DNI.",
	"not_a_passenger":          "No eres pasajero de este viaje.",
	"invalid_state":            "El viaje ya no admite esta operación.",
	"invalid_seats":            "La cantidad de asientos debe estar entre 1 y 8.",
	"invalid_departure_time":   "Hora de salida inválida.",
	"cannot_delete_self":       "No puedes eliminar tu propio usuario.",
}

// writeBusiness traduce un error de negocio a su status HTTP; todo lo
// que no sea de negocio es un 500.
func writeBusiness(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Error interno.")
		return
	}

	msg := businessMessages[code]
	if msg == "" {
		msg = code
	}

	switch code {
	case "no_session", "invalid_credentials":
		httperr.Unauthorized(c, code, msg)
	case "user_not_found", "ride_not_found", "payment_method_not_found":
		httperr.NotFound(c, code, msg)
	case "driver_role_required", "passenger_role_required", "driver_only", "admin_only":
		httperr.Forbidden(c, code, msg)
	case "no_seats_available", "already_joined", "duplicate_card", "duplicate_identity":
		httperr.Conflict(c, code, msg)
	default:
		httperr.BadRequest(c, code, msg)
	}
}

package timezone

import "time"

// Todas las fechas y horas del sistema se interpretan en la zona del
// campus; no hay multi-tenant de zonas horarias.
const CampusTimezone = "America/Argentina/Buenos_Aires"

func Location() *time.Location {
	loc, err := time.LoadLocation(CampusTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

// Today devuelve la fecha de hoy con el formato de los viajes.
func Today() string {
	return Now().Format("2006-01-02")
}

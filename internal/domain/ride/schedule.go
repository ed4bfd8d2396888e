package ride

import (
	"fmt"
	"time"
)

// Duración base del tramo hasta/desde el campus. No hay motor de rutas:
// la llegada estimada es salida + 30' + un jitter de 0 a 4 minutos.
const baseTravelMinutes = 30

const clockLayout = "15:04"

// EstimateArrival calcula la hora estimada de llegada con rollover de
// hora y de día (23:50 + 30' cae en el día siguiente como 00:20).
func EstimateArrival(departure string, jitterMinutes int) (string, error) {
	t, err := time.Parse(clockLayout, departure)
	if err != nil {
		return "", fmt.Errorf("invalid departure time %q: %w", departure, err)
	}

	arrival := t.Add(time.Duration(baseTravelMinutes+jitterMinutes) * time.Minute)
	return arrival.Format(clockLayout), nil
}

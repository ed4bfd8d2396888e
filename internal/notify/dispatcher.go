package notify

import (
	"log"

	"github.com/unirideapp/uniride-api/internal/models"
)

// Dispatcher desacopla el fan-out de notificaciones del request: los
// casos de uso encolan y un worker las persiste.
type Dispatcher struct {
	writer *Writer
	queue  chan models.Notification
}

func NewDispatcher(writer *Writer) *Dispatcher {
	d := &Dispatcher{
		writer: writer,
		queue:  make(chan models.Notification, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for n := range d.queue {
		if err := d.writer.Write(n); err != nil {
			log.Println("notify error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(n models.Notification) {
	select {
	case d.queue <- n:
	default:
		// cola llena: se descarta antes que bloquear la API
		log.Println("notify queue full, dropping notification")
	}
}

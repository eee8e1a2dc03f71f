package audit

import "github.com/rs/zerolog/log"

// Actions recorded by the scheduler.
const (
	ActionAvailabilityCreated = "availability_created"
	ActionAvailabilityUpdated = "availability_updated"
	ActionOverrideDeleted     = "override_deleted"
	ActionAppointmentBooked   = "appointment_booked"
	ActionAppointmentCanceled = "appointment_canceled"
	ActionCascadeCanceled     = "appointments_cascade_canceled"
)

type Event struct {
	HouseID  []byte
	ActorID  []byte
	Action   string
	Entity   string
	EntityID []byte
	Metadata any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.HouseID,
			ev.ActorID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

// Dispatch enqueues the event; a full queue drops it rather than block a
// request.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

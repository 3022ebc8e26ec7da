package notify

import (
	"sync"

	"github.com/dpamis/procurement-api/pkg/logger"
)

// Mailer is the minimal contract the dispatcher needs from the mail transport.
// Implemented by *mail.Sender; tests use a recorder.
type Mailer interface {
	SendActivation(to, code, link string) error
	SendRejection(to string) error
}

// Kinds of lifecycle mail.
const (
	KindActivation = "activation"
	KindRejection  = "rejection"
)

// Message is one queued delivery.
type Message struct {
	Kind string
	To   string
	Code string // activation only
	Link string // activation only
}

// Dispatcher decouples mail delivery from the state-mutating request: approve
// and reject enqueue after their DB write commits, and a single worker drains
// the queue. SMTP failure is logged, never surfaced to the API caller.
type Dispatcher struct {
	mailer Mailer
	log    *logger.Logger
	jobs   chan Message
	wg     sync.WaitGroup
}

// NewDispatcher starts the delivery worker. buffer bounds the queue; when it
// is full, Enqueue drops and logs instead of blocking the request.
func NewDispatcher(mailer Mailer, log *logger.Logger, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	d := &Dispatcher{
		mailer: mailer,
		log:    log,
		jobs:   make(chan Message, buffer),
	}
	d.wg.Add(1)
	go d.worker()
	return d
}

// Enqueue queues a message without blocking.
func (d *Dispatcher) Enqueue(msg Message) {
	select {
	case d.jobs <- msg:
	default:
		d.log.Warn().Str("kind", msg.Kind).Str("to", msg.To).Msg("mail queue full, dropping message")
	}
}

// Close stops accepting messages and waits for the worker to drain the queue.
func (d *Dispatcher) Close() {
	close(d.jobs)
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for msg := range d.jobs {
		var err error
		switch msg.Kind {
		case KindActivation:
			err = d.mailer.SendActivation(msg.To, msg.Code, msg.Link)
		case KindRejection:
			err = d.mailer.SendRejection(msg.To)
		default:
			d.log.Warn().Str("kind", msg.Kind).Msg("unknown mail kind")
			continue
		}
		if err != nil {
			d.log.Error().Err(err).Str("kind", msg.Kind).Str("to", msg.To).Msg("mail delivery failed")
			continue
		}
		d.log.Info().Str("kind", msg.Kind).Str("to", msg.To).Msg("mail delivered")
	}
}

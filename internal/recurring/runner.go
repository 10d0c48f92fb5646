package recurring

import (
	"log"
	"time"
)

// Runner fires the engine once per calendar day at a fixed local hour.
// It is a background trigger independent of request traffic; a tick
// that overlaps a slow previous run cannot double-materialize a rule
// because selection and advancement share one database transaction.
type Runner struct {
	engine *Engine
	hour   int
}

// NewRunner returns a runner that ticks daily at the given hour (0-23).
func NewRunner(engine *Engine, hour int) *Runner {
	if hour < 0 || hour > 23 {
		hour = 0
	}
	return &Runner{engine: engine, hour: hour}
}

// Start launches the daily loop in a goroutine.
func (r *Runner) Start() {
	go r.loop()
}

func (r *Runner) loop() {
	for {
		now := time.Now()
		time.Sleep(time.Until(nextFire(now, r.hour)))

		n, err := r.engine.Tick(time.Now())
		if err != nil {
			// broken rules block the batch until corrected; retried next tick
			log.Printf("scheduler: tick failed: %v", err)
			continue
		}
		log.Printf("scheduler: processed %d recurring transactions", n)
	}
}

// nextFire returns the next occurrence of the configured hour strictly
// after now.
func nextFire(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

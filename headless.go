package main

import (
	"log"

	"github.com/koteyur/physac-hexagon/internal/physics"
	"github.com/koteyur/physac-hexagon/internal/sim"
)

// statsInterval is the number of simulated seconds between headless reports.
const statsInterval = 2

func runHeadless(s *sim.Simulation, tps, frames int, verbose bool) {
	dt := 1 / float64(tps)
	every := tps * statsInterval
	for i := 1; i <= frames; i++ {
		contacts := s.Step(dt)
		if verbose {
			logContacts(contacts)
		}
		if i%every == 0 {
			logStats(s)
		}
	}
	logStats(s)
}

func logStats(s *sim.Simulation) {
	st := s.Stats()
	b := s.Body()
	log.Printf("t=%.2fs frames=%d steps=%d bounces=%d max_pen=%.3f pos=(%.1f, %.1f) vel=(%.1f, %.1f)",
		st.Time, st.Frames, st.Steps, st.Bounces, st.MaxPenetration,
		b.Position.X(), b.Position.Y(), b.Velocity.X(), b.Velocity.Y())
}

func logContacts(contacts []physics.Contact) {
	for _, c := range contacts {
		log.Printf("contact edge=%d pen=%.3f approach=%.2f bounced=%t", c.Edge, c.Penetration, c.ApproachSpeed, c.Bounced)
	}
}

package feed

import (
	"time"

	"github.com/leo110047/ODANGO/config"
)

// Descriptor is the full desired state of one companion as served by the
// roster feed. Each snapshot is authoritative: reconciliation adds, updates
// and removes companions to match it.
type Descriptor struct {
	ID        string
	Name      string
	SpriteKey string
	Stage     string
	Facing    config.FacingID
	Scale     float64
}

// Source publishes roster snapshots on a fixed interval. The channel holds at
// most one snapshot and a new one replaces any unconsumed predecessor, so a
// consumer that polls less often than the interval still sees current state.
type Source struct {
	cfg     config.RosterConfig
	started time.Time
	ch      chan []Descriptor
	stopCh  chan struct{}
}

func NewSource() *Source {
	s := &Source{
		cfg:     config.Roster,
		started: time.Now(),
		ch:      make(chan []Descriptor, 1),
		stopCh:  make(chan struct{}),
	}
	s.publish(snapshot(s.cfg, 0))
	go s.run()
	return s
}

func (s *Source) Stop() {
	close(s.stopCh)
}

// Poll returns the most recent unconsumed snapshot without blocking.
func (s *Source) Poll() ([]Descriptor, bool) {
	select {
	case snap := <-s.ch:
		return snap, true
	default:
		return nil, false
	}
}

func (s *Source) run() {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.publish(snapshot(s.cfg, time.Since(s.started)))
		}
	}
}

// publish replaces any unconsumed snapshot. With a single producer the
// retry settles within two passes.
func (s *Source) publish(snap []Descriptor) {
	for {
		select {
		case s.ch <- snap:
			return
		default:
			select {
			case <-s.ch:
			default:
			}
		}
	}
}

// snapshot derives the roster state at the given age since feed start.
// Unhatched entries stay eggs until HatchAfter and then grow by GrowStep
// every GrowEvery; entries that start hatched grow from age zero. A
// companion that reaches MaxScale is adult.
func snapshot(cfg config.RosterConfig, age time.Duration) []Descriptor {
	out := make([]Descriptor, 0, len(cfg.Companions))
	for _, e := range cfg.Companions {
		d := Descriptor{
			ID:        e.ID,
			Name:      e.Name,
			SpriteKey: e.SpriteKey,
			Facing:    e.Facing,
			Stage:     config.StageBaby,
			Scale:     config.Companion.DefaultScale,
		}

		grown := age
		if !e.Hatched {
			if age < cfg.HatchAfter {
				d.Stage = config.StageEgg
				out = append(out, d)
				continue
			}
			grown = age - cfg.HatchAfter
		}

		steps := int(grown / cfg.GrowEvery)
		d.Scale += float64(steps) * cfg.GrowStep
		if d.Scale >= cfg.MaxScale {
			d.Scale = cfg.MaxScale
			d.Stage = config.StageAdult
		}
		out = append(out, d)
	}
	return out
}

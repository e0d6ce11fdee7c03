package selection

import (
	"fmt"
	"log/slog"

	"github.com/byterings/gus/internal/profile"
)

// Event is a single input delivered by the shell
type Event int

const (
	NavigateUp Event = iota
	NavigateDown
	Confirm
	Exit
)

// Applier writes or clears credentials in a target configuration
type Applier interface {
	Clear(target string) error
	Apply(target string, p profile.Profile) error
}

// State is what the shell needs to draw the list
type State struct {
	Entries []Entry
	Cursor  int
	Active  bool // false until the first navigation
	Done    bool
}

// Outcome is the side effect of a confirm. Profile is set for ApplyRequested.
type Outcome struct {
	Result  Result
	Profile string
	Err     error
}

// Session binds a controller to the catalog and the target it writes to.
// Any confirm that does something ends the session.
type Session struct {
	catalog *profile.Catalog
	applier Applier
	target  string
	ctrl    *Controller
	done    bool
	log     *slog.Logger
}

// NewSession starts a session over cat that applies to target
func NewSession(cat *profile.Catalog, applier Applier, target string, log *slog.Logger) *Session {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Session{
		catalog: cat,
		applier: applier,
		target:  target,
		ctrl:    NewController(cat),
		log:     log,
	}
}

// Rebuild resets the list from cat, e.g. after a profile was created
func (s *Session) Rebuild(cat *profile.Catalog) {
	s.catalog = cat
	s.ctrl = NewController(cat)
	s.done = false
}

// Catalog returns the catalog the list was built from
func (s *Session) Catalog() *profile.Catalog {
	return s.catalog
}

// State returns the current view state
func (s *Session) State() State {
	cursor, active := s.ctrl.Cursor()
	return State{
		Entries: s.ctrl.Entries(),
		Cursor:  cursor,
		Active:  active,
		Done:    s.done,
	}
}

// Handle processes one event to completion
func (s *Session) Handle(ev Event) (State, *Outcome) {
	if s.done {
		return s.State(), nil
	}

	switch ev {
	case NavigateUp:
		s.ctrl.MoveUp()
	case NavigateDown:
		s.ctrl.MoveDown()
	case Exit:
		s.done = true
	case Confirm:
		res := s.ctrl.Confirm()
		if res.Kind == NoOp {
			return s.State(), nil
		}
		out := s.perform(res)
		s.done = true
		return s.State(), out
	}

	return s.State(), nil
}

func (s *Session) perform(res Result) *Outcome {
	out := &Outcome{Result: res}
	s.log.Debug("confirm", "result", res.Kind.String(), "target", s.target)

	switch res.Kind {
	case ClearRequested:
		out.Err = s.applier.Clear(s.target)
	case ApplyRequested:
		p, err := s.catalog.At(res.ProfileIndex)
		if err != nil {
			out.Err = fmt.Errorf("selection out of range: %w", err)
			break
		}
		out.Profile = p.Name
		out.Err = s.applier.Apply(s.target, p)
	case CreateRequested:
		// Collected by the shell outside the picker
	}

	if out.Err != nil {
		s.log.Debug("confirm failed", "error", out.Err)
	}
	return out
}

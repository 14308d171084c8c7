package buildpipeline

import "time"

// UnitState is the latest observed state of one compilation unit.
type UnitState struct {
	Unit    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Tracker folds the event stream into per-unit state for rendering.
// Units keep first-seen order, which is the scheduling order of the
// driver and therefore stable for a given input.
type Tracker struct {
	order []string
	units map[string]*UnitState
}

func NewTracker() *Tracker {
	return &Tracker{units: make(map[string]*UnitState)}
}

// Observe folds one event in.
func (tk *Tracker) Observe(e Event) {
	st, ok := tk.units[e.Unit]
	if !ok {
		st = &UnitState{Unit: e.Unit}
		tk.units[e.Unit] = st
		tk.order = append(tk.order, e.Unit)
	}
	st.Stage = e.Stage
	st.Status = e.Status
	if e.Err != nil {
		st.Err = e.Err
	}
	if e.Elapsed > 0 {
		st.Elapsed = e.Elapsed
	}
}

// Units returns the unit states in first-seen order.
func (tk *Tracker) Units() []UnitState {
	out := make([]UnitState, 0, len(tk.order))
	for _, name := range tk.order {
		out = append(out, *tk.units[name])
	}
	return out
}

// Counts reports how many units have finished, how many of those
// failed, and how many are known in total.
func (tk *Tracker) Counts() (done, failed, total int) {
	for _, st := range tk.units {
		switch st.Status {
		case StatusDone:
			done++
		case StatusError:
			done++
			failed++
		}
	}
	return done, failed, len(tk.units)
}

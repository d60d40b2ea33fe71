package phase

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/layercake/core"
)

// Event is one element of a phase definition: a *Leg or a *Knee.
type Event interface {
	isEvent()
	String() string
}

// Def is a parsed seismic phase definition: an ordered, alternating
// sequence of legs and knees plus the terminal arrival direction.
// A Def is immutable after construction; Copy produces an independent
// deep copy for per-model adaptation.
type Def struct {
	definition    string
	events        []Event
	directionStop core.Direction
}

// MustParse is Parse for statically known definitions; it panics on error.
func MustParse(definition string) *Def {
	d, err := Parse(definition)
	if err != nil {
		panic(err)
	}

	return d
}

// NewDef creates an empty definition, to be filled with Append. The tracer
// uses this to record the phase a ray actually realized.
func NewDef() *Def {
	return &Def{directionStop: core.Up}
}

// Definition returns the original textual form, or "" for programmatically
// built definitions.
func (d *Def) Definition() string { return d.definition }

// Events returns the leg/knee sequence. Callers must not modify it.
func (d *Def) Events() []Event { return d.events }

// Append adds an event at the end of a programmatically built definition.
func (d *Def) Append(ev Event) { d.events = append(d.events, ev) }

// ArrivalDirection is the direction the ray must have at the receiver:
// Up for arrival from below (the default), Down for arrival from above.
func (d *Def) ArrivalDirection() core.Direction { return d.directionStop }

// SetArrivalDirection fixes the terminal direction of a programmatically
// built definition.
func (d *Def) SetArrivalDirection(dir core.Direction) { d.directionStop = dir }

// Legs returns the legs of the definition, in order.
func (d *Def) Legs() []*Leg {
	var legs []*Leg
	for _, ev := range d.events {
		if l, ok := ev.(*Leg); ok {
			legs = append(legs, l)
		}
	}

	return legs
}

// Knees returns the knees of the definition, in order.
func (d *Def) Knees() []*Knee {
	var knees []*Knee
	for _, ev := range d.events {
		if k, ok := ev.(*Knee); ok {
			knees = append(knees, k)
		}
	}

	return knees
}

// FirstLeg returns the first leg, or nil for an empty definition.
func (d *Def) FirstLeg() *Leg {
	for _, ev := range d.events {
		if l, ok := ev.(*Leg); ok {
			return l
		}
	}

	return nil
}

// LastLeg returns the last leg, or nil for an empty definition.
func (d *Def) LastLeg() *Leg {
	for i := len(d.events) - 1; i >= 0; i-- {
		if l, ok := d.events[i].(*Leg); ok {
			return l
		}
	}

	return nil
}

// Copy returns an independent deep copy.
func (d *Def) Copy() *Def {
	c := &Def{
		definition:    d.definition,
		directionStop: d.directionStop,
		events:        make([]Event, 0, len(d.events)),
	}
	for _, ev := range d.events {
		switch e := ev.(type) {
		case *Leg:
			c.events = append(c.events, e.Copy())
		case *Knee:
			c.events = append(c.events, e.Copy())
		}
	}

	return c
}

// UsedRepr re-serializes the definition into canonical phase syntax.
// Implicit surface knees stay implicit; everything else is rendered
// explicitly, so the result may differ from the entered text.
func (d *Def) UsedRepr() string {
	var b strings.Builder
	for _, ev := range d.events {
		switch e := ev.(type) {
		case *Leg:
			s := e.Mode.String()
			if e.Departure == core.Down {
				s = strings.ToUpper(s)
			}
			b.WriteString(s)
		case *Knee:
			if e.Reflection && !e.AtSurface() {
				if e.Direction == core.Down {
					b.WriteByte('v')
				} else {
					b.WriteByte('^')
				}
			}
			if !e.AtSurface() {
				if e.Depth.IsNumeric() {
					fmt.Fprintf(&b, "%g", e.Depth.Z()/core.Km)
				} else {
					fmt.Fprintf(&b, "(%s)", e.Depth.Name())
				}
			}
		}
	}
	if d.directionStop == core.Down {
		b.WriteByte('\\')
	}

	return b.String()
}

// String renders the full human-readable listing of the definition.
func (d *Def) String() string {
	used := d.UsedRepr()
	orig := ""
	if d.definition != "" && d.definition != used {
		orig = fmt.Sprintf(" (entered as %q)", d.definition)
	}

	side := "below"
	if d.directionStop == core.Down {
		side = "above"
	}

	lines := make([]string, 0, len(d.events))
	for _, ev := range d.events {
		lines = append(lines, ev.String())
	}

	return fmt.Sprintf("Phase definition %q%s:\n - %s\n - arriving at target from %s",
		used, orig, strings.Join(lines, "\n - "), side)
}

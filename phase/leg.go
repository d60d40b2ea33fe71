package phase

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/layercake/core"
)

// Leg is a continuous piece of wave propagation: constant mode, constant
// departure direction, optionally bounded in turning depth. Legs are to be
// treated as read-only once their Def has been built; model adaptation works
// on deep copies.
type Leg struct {
	// Departure is the take-off direction of the leg.
	Departure core.Direction

	// Mode is the propagation mode of the leg.
	Mode core.Mode

	// DepthMin, if non-nil, is the minimum depth the leg must stay below.
	DepthMin *Depth

	// DepthMax, if non-nil, is the maximum depth the leg may reach.
	DepthMax *Depth
}

func (*Leg) isEvent() {}

// Copy returns an independent deep copy of the leg.
func (l *Leg) Copy() *Leg {
	c := *l
	if l.DepthMin != nil {
		dmin := *l.DepthMin
		c.DepthMin = &dmin
	}
	if l.DepthMax != nil {
		dmax := *l.DepthMax
		c.DepthMax = &dmax
	}

	return &c
}

// String describes the leg, including its depth constraints.
func (l *Leg) String() string {
	s := fmt.Sprintf("%s mode propagation, departing %s",
		strings.ToUpper(l.Mode.String()), l.Departure)

	var sc []string
	if l.DepthMax != nil {
		sc = append(sc, fmt.Sprintf("deeper than %s", *l.DepthMax))
	}
	if l.DepthMin != nil {
		sc = append(sc, fmt.Sprintf("shallower than %s", *l.DepthMin))
	}
	if len(sc) > 0 {
		s += fmt.Sprintf(" (may not propagate %s)", strings.Join(sc, " or "))
	}

	return s
}

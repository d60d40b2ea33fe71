package phase

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/layercake/core"
)

// parserState tags the token the scanner is currently accumulating.
type parserState int

const (
	// stateLeg scans leg characters, reflection markers and knee openers.
	stateLeg parserState = iota
	// stateKneeDepth accumulates a numeric knee depth.
	stateKneeDepth
	// stateKneeName accumulates a named knee depth inside parentheses.
	stateKneeName
	// stateLimitNumeric accumulates a numeric depth limit after < or >.
	stateLimitNumeric
	// stateLimitName accumulates a named depth limit inside parentheses.
	stateLimitName
)

// parser is the explicit state machine behind Parse. One mutable knee
// builder bridges consecutive legs; depth limits pend until the next leg
// (or the end of input) attaches them to the leg they follow.
type parser struct {
	definition string

	state  parserState
	sdepth []rune // numeric knee depth accumulator
	sname  []rune // named knee depth accumulator
	slimit []rune // depth limit accumulator
	limMax bool   // current limit token was '<' (maximum depth)

	knee    *kneeBuilder
	events  []Event
	lastLeg *Leg

	depthMin *Depth // pending minimum depth limit
	depthMax *Depth // pending maximum depth limit

	directionStop core.Direction
	needLeg       bool
}

// Parse builds a phase definition from its textual form.
func Parse(definition string) (*Def, error) {
	p := &parser{
		definition:    definition,
		knee:          &kneeBuilder{},
		directionStop: core.Up,
		needLeg:       true,
	}

	runes := []rune(definition)
	ic := 0
	for ; ic < len(runes); ic++ {
		if err := p.feed(runes[ic]); err != nil {
			return nil, parseError(definition, ic, err)
		}
	}
	if err := p.finish(); err != nil {
		return nil, parseError(definition, max(ic-1, 0), err)
	}

	return &Def{
		definition:    definition,
		events:        p.events,
		directionStop: p.directionStop,
	}, nil
}

// feed consumes one character.
func (p *parser) feed(c rune) error {
	if p.state == stateLeg || p.state == stateKneeDepth {
		if isDepthChar(c) {
			p.needLeg = true
			p.state = stateKneeDepth
			p.sdepth = append(p.sdepth, c)

			return nil
		}
		if p.state == stateKneeDepth {
			if err := p.finishKneeDepth(); err != nil {
				return err
			}
		}
	}

	switch p.state {
	case stateKneeName:
		if c == ')' {
			if err := p.knee.setDepth(NamedDepth(string(p.sname))); err != nil {
				return err
			}
			p.sname = p.sname[:0]
			p.state = stateLeg
		} else {
			p.sname = append(p.sname, c)
		}

		return nil

	case stateLimitNumeric:
		switch {
		case isDepthChar(c):
			p.slimit = append(p.slimit, c)

			return nil
		case c == '(' && len(p.slimit) == 0:
			p.state = stateLimitName

			return nil
		default:
			if err := p.finishNumericLimit(); err != nil {
				return err
			}
			// The terminating character is processed as a leg-state token.
		}

	case stateLimitName:
		if c == ')' {
			d := NamedDepth(string(p.slimit))
			p.stashLimit(d)
			p.slimit = p.slimit[:0]
			p.state = stateLeg
		} else {
			p.slimit = append(p.slimit, c)
		}

		return nil
	}

	return p.feedLeg(c)
}

// feedLeg handles a character in the base state.
func (p *parser) feedLeg(c rune) error {
	switch c {
	case '(':
		p.needLeg = true
		p.state = stateKneeName

		return nil

	case '<', '>':
		p.state = stateLimitNumeric
		p.slimit = p.slimit[:0]
		p.limMax = c == '<'

		return nil

	case 'p', 's', 'P', 'S':
		return p.beginLeg(c)

	case '^':
		p.needLeg = true
		if err := p.knee.setDirection(core.Up); err != nil {
			return err
		}

		return p.knee.setReflection(true)

	case 'v':
		p.needLeg = true
		if err := p.knee.setDirection(core.Down); err != nil {
			return err
		}

		return p.knee.setReflection(true)

	case '\\':
		p.directionStop = core.Down

		return nil

	default:
		return fmt.Errorf("invalid character: %q", string(c))
	}
}

// beginLeg starts a new leg, completing the knee accumulated since the
// previous one.
func (p *parser) beginLeg(c rune) error {
	leg := &Leg{}
	switch c {
	case 'p':
		leg.Departure, leg.Mode = core.Up, core.P
	case 's':
		leg.Departure, leg.Mode = core.Up, core.S
	case 'P':
		leg.Departure, leg.Mode = core.Down, core.P
	case 'S':
		leg.Departure, leg.Mode = core.Down, core.S
	}

	if p.lastLeg != nil {
		p.attachPendingLimits(p.lastLeg)

		knee, err := p.knee.finish(p.lastLeg, leg)
		if err != nil {
			return err
		}
		p.events = append(p.events, knee)
		p.knee = &kneeBuilder{}
	}

	p.events = append(p.events, leg)
	p.lastLeg = leg
	p.needLeg = false

	return nil
}

// finish closes the scan: a trailing numeric depth limit is completed,
// any other open token is an unfinished expression, and still-pending
// depth limits attach to the last leg.
func (p *parser) finish() error {
	if p.state == stateLimitNumeric {
		if err := p.finishNumericLimit(); err != nil {
			return err
		}
	}
	if p.state != stateLeg || p.needLeg {
		return ErrUnfinished
	}
	if p.lastLeg != nil {
		p.attachPendingLimits(p.lastLeg)
	}

	return nil
}

// finishKneeDepth converts the accumulated km figure into a knee depth.
func (p *parser) finishKneeDepth() error {
	z, err := strconv.ParseFloat(string(p.sdepth), 64)
	if err != nil {
		return fmt.Errorf("invalid depth %q", string(p.sdepth))
	}
	p.sdepth = p.sdepth[:0]
	p.state = stateLeg

	return p.knee.setDepth(NumericDepth(z * core.Km))
}

// finishNumericLimit converts the accumulated km figure into a pending
// depth limit.
func (p *parser) finishNumericLimit() error {
	z, err := strconv.ParseFloat(string(p.slimit), 64)
	if err != nil {
		return fmt.Errorf("invalid depth limit %q", string(p.slimit))
	}
	p.slimit = p.slimit[:0]
	p.state = stateLeg
	p.stashLimit(NumericDepth(z * core.Km))

	return nil
}

// stashLimit records a parsed depth limit until a leg claims it.
func (p *parser) stashLimit(d Depth) {
	if p.limMax {
		p.depthMax = &d
	} else {
		p.depthMin = &d
	}
}

// attachPendingLimits moves pending limits onto the given leg.
func (p *parser) attachPendingLimits(leg *Leg) {
	if p.depthMin != nil {
		leg.DepthMin = p.depthMin
		p.depthMin = nil
	}
	if p.depthMax != nil {
		leg.DepthMax = p.depthMax
		p.depthMax = nil
	}
}

func isDepthChar(c rune) bool {
	return c == '.' || (c >= '0' && c <= '9')
}

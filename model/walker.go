package model

import (
	"github.com/katalvlaran/layercake/core"
)

// Walker is a cursor over the element sequence of a model view. Views may
// carry extra layer splits for depths that fall inside a layer; both
// halves of a split keep the original layer index.
type Walker struct {
	elements []Element
	i        int
}

// Current returns the element under the cursor.
func (w *Walker) Current() Element { return w.elements[w.i] }

// Down moves the cursor one element toward the bottom of the model.
func (w *Walker) Down() error {
	if w.i >= len(w.elements)-1 {
		return ErrBottomReached
	}
	w.i++

	return nil
}

// Up moves the cursor one element toward the surface.
func (w *Walker) Up() error {
	if w.i <= 0 {
		return ErrSurfaceReached
	}
	w.i--

	return nil
}

// Goto positions the cursor on the first layer containing depth z, probing
// from the top for Down and from the bottom for Up. A depth outside every
// layer fails with ErrOutOfBounds.
func (w *Walker) Goto(z float64, direction core.Direction) error {
	i, step := 0, 1
	if direction == core.Up {
		i, step = len(w.elements)-1, -1
	}
	for ; i >= 0 && i < len(w.elements); i += step {
		if l, ok := w.elements[i].(Layer); ok && l.Contains(z) {
			w.i = i

			return nil
		}
	}

	return ErrOutOfBounds
}

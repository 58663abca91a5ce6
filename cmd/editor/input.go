package main

// gesture latches whether a button press began inside a region, so a drag
// keeps acting on that region and nowhere else until release.
type gesture struct {
	active bool
}

// update takes this frame's button and pointer state and reports whether
// the region should act on the pointer.
func (g *gesture) update(justPressed, held, inside bool) bool {
	if justPressed {
		g.active = inside
	}
	if !held {
		g.active = false
	}
	return g.active && inside
}

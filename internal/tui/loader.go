package tui

// loader hands out fetch generation numbers so screens can discard
// responses from superseded loads. Every fetch records next() in its
// result message; by the time a stale response arrives a newer fetch
// has bumped the generation and current() rejects it. Bubble Tea
// delivers messages on a single goroutine, so no locking is needed.
type loader struct {
	gen int
}

// next starts a new fetch generation and invalidates all prior ones
func (l *loader) next() int {
	l.gen++
	return l.gen
}

// current reports whether gen belongs to the most recent fetch
func (l *loader) current(gen int) bool {
	return gen == l.gen
}

package gpu

// releaseList collects GPU objects and frees them in a fixed order:
// dependants before the objects they were created from.
type releaseList struct {
	entries []releaseEntry
}

type releaseEntry struct {
	name string
	fn   func()
}

// push records an object; later pushes are released first.
func (l *releaseList) push(name string, fn func()) {
	l.entries = append(l.entries, releaseEntry{name: name, fn: fn})
}

// releaseAll frees everything in reverse creation order and returns the
// names in the order they were released.
func (l *releaseList) releaseAll() []string {
	released := make([]string, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		e.fn()
		released = append(released, e.name)
	}
	l.entries = nil
	return released
}

package core

// Key identifies a keyboard key independently of the windowing backend.
type Key int

const (
	KeyEscape Key = iota
	KeySpace
	KeyEnter
	KeyTab
)

package db

// Options tunes how a command opens the store. Load and migrate may create
// a missing database file; read-side commands must not.
type Options struct {
	AllowCreate bool
}

package model

// KDF derives a password hash from a password and a salt. Implementations
// must be deterministic for a given (password, salt) pair, salt-dependent,
// and produce a 64-character hex digest that fits the stored char(64)
// columns.
type KDF interface {
	Derive(password, salt string) string
	Name() string
}

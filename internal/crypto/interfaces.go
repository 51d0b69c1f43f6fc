package crypto

// PasswordHasher turns plaintext passwords into one-way hashes and checks
// candidates against them.
//
// Hashing is deliberately slow (bcrypt); callers run it on the request
// goroutine and must not hold locks while doing so.
type PasswordHasher interface {
	// Hash returns the bcrypt hash of plaintext.
	// Returns ErrEmptyPassword for empty input.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches hash. A malformed hash is a
	// mismatch, never an error.
	Verify(plaintext, hash string) bool
}

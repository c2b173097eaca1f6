package interfaces

// PasswordHasher is the one-way credential hasher used for login and
// registration. Verify must compare in constant time and return false
// (not an error) when the stored hash is malformed; errors are reserved
// for internal faults such as entropy exhaustion.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

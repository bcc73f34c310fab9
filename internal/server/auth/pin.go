package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is a valid bcrypt hash compared against when the agent lookup
// fails, so that unknown phone numbers and wrong PINs take a similar amount
// of time.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// HashPIN derives a bcrypt hash for storage.
func HashPIN(pin string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
}

// CheckPIN reports whether pin matches the stored hash.
func CheckPIN(hash []byte, pin string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(pin)) == nil
}

// EqualizeCompare burns one bcrypt comparison against a throwaway hash.
// Called on the lookup-miss path so the response time does not reveal
// whether a phone number exists.
func EqualizeCompare(pin string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(pin))
}

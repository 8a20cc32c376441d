package auth

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt work factor used when none is configured
const DefaultCost = bcrypt.DefaultCost

// HashPassword returns a salted bcrypt hash of password
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = DefaultCost
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword reports whether password matches hashedPassword
func CheckPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

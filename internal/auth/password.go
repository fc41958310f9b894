package auth

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor for stored hashes.
const PasswordCost = 10

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	return string(b), err
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

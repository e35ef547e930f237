package auth

import "golang.org/x/crypto/bcrypt"

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost())
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Compare returns nil when password matches hash.
func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (h BcryptHasher) cost() int {
	if h.Cost >= bcrypt.MinCost && h.Cost <= bcrypt.MaxCost {
		return h.Cost
	}
	return bcrypt.DefaultCost
}

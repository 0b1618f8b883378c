package auth

import (
	"fmt"
	"strings"
	"sync"

	"brokemate/models"

	"golang.org/x/crypto/bcrypt"
)

// Credentials is the in-memory credential store: username to bcrypt hash.
// State is volatile and scoped to the process lifetime.
type Credentials struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewCredentials() *Credentials {
	return &Credentials{users: make(map[string]models.User)}
}

// Register creates a new user with a bcrypt-hashed password. The hash is
// computed before taking the lock so concurrent registrations of different
// users do not serialize on bcrypt.
func (c *Credentials) Register(username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, fmt.Errorf("username required")
	}
	if password == "" {
		return models.User{}, fmt.Errorf("password required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.users[username]; exists {
		return models.User{}, ErrDuplicateUser
	}
	user := models.User{Username: username, PasswordHash: hash}
	c.users[username] = user
	return user, nil
}

// Verify reports whether the password matches the stored hash. Unknown
// username and wrong password are deliberately indistinguishable to the
// caller.
func (c *Credentials) Verify(username, password string) bool {
	c.mu.RLock()
	user, exists := c.users[strings.TrimSpace(username)]
	c.mu.RUnlock()
	if !exists {
		return false
	}
	return bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) == nil
}

// Lookup returns the user record for a username, if present.
func (c *Credentials) Lookup(username string) (models.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	user, exists := c.users[username]
	return user, exists
}

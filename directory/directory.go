package directory

import (
	"fmt"
	"strings"
	"time"
)

// User defines a public type describing one account record supplied at build
// time. Instances are treated as immutable once handed to New.
type User struct {
	// Username identifies the account. Matching is case-insensitive; the
	// directory stores and looks up the lowercase form.
	Username string

	// Email is the account's contact address. Carried on the record for the
	// host; the directory does not validate or match on it.
	Email string

	// PasswordHash is the stored hash in argon2id PHC or bcrypt format.
	PasswordHash string

	// ValidFrom is the start of the account validity window. A zero value
	// defaults to the unix epoch, making the account valid immediately.
	ValidFrom time.Time

	// ValidUntil is the end of the account validity window. A zero value
	// means the account never expires.
	ValidUntil time.Time
}

// Directory is an immutable username-keyed collection of user records. A
// Directory is safe for concurrent use by multiple goroutines.
type Directory struct {
	users map[string]User
}

// New validates the given records and returns a Directory. New may return an
// error when input validation fails: empty usernames, empty hashes, duplicate
// usernames after lowercasing, or a validity window that ends before it
// starts.
func New(users []User) (*Directory, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("directory: at least one user is required")
	}

	byName := make(map[string]User, len(users))
	for i, u := range users {
		name := strings.ToLower(strings.TrimSpace(u.Username))
		if name == "" {
			return nil, fmt.Errorf("directory: user %d has an empty username", i)
		}
		if u.PasswordHash == "" {
			return nil, fmt.Errorf("directory: user %q has an empty password hash", name)
		}
		if _, exists := byName[name]; exists {
			return nil, fmt.Errorf("directory: duplicate username %q", name)
		}
		if u.ValidFrom.IsZero() {
			u.ValidFrom = time.Unix(0, 0)
		}
		if !u.ValidUntil.IsZero() && u.ValidUntil.Before(u.ValidFrom) {
			return nil, fmt.Errorf("directory: user %q validity window ends before it starts", name)
		}
		u.Username = name
		byName[name] = u
	}
	return &Directory{users: byName}, nil
}

// Lookup returns the record for username, matching case-insensitively.
func (d *Directory) Lookup(username string) (User, bool) {
	u, ok := d.users[strings.ToLower(username)]
	return u, ok
}

// Len reports the number of records in the directory.
func (d *Directory) Len() int {
	return len(d.users)
}

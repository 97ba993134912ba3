// Package user contains the user directory domain model.
package user

import (
	"context"
	"strings"
)

// User is one normalized directory record. Immutable once created;
// the directory is replaced wholesale on refresh, never patched.
type User struct {
	id        string
	firstName string
	lastName  string
	email     string
	title     string
	active    bool
	created   string
}

func New(id, firstName, lastName, email, title string, active bool, created string) User {
	return User{
		id:        id,
		firstName: firstName,
		lastName:  lastName,
		email:     email,
		title:     title,
		active:    active,
		created:   created,
	}
}

func (u User) ID() string        { return u.id }
func (u User) FirstName() string { return u.firstName }
func (u User) LastName() string  { return u.lastName }
func (u User) Email() string     { return u.email }
func (u User) Title() string     { return u.title }
func (u User) Active() bool      { return u.active }
func (u User) Created() string   { return u.created }

// FullName returns "firstName lastName" trimmed.
func (u User) FullName() string {
	return strings.TrimSpace(u.firstName + " " + u.lastName)
}

// Criteria filters directory lookups. Supplied fields combine with OR,
// not AND.
type Criteria struct {
	Name  string
	Email string
	ID    string
}

func (c Criteria) Empty() bool {
	return c.Name == "" && c.Email == "" && c.ID == ""
}

// Matches reports whether u satisfies any supplied criterion: an exact id
// match, a case-insensitive substring match of name against the full name,
// any whitespace-delimited token of name matching first or last name, or a
// case-insensitive substring match of email.
func Matches(u User, c Criteria) bool {
	if c.ID != "" && u.id == c.ID {
		return true
	}
	if c.Name != "" {
		name := strings.ToLower(c.Name)
		if strings.Contains(strings.ToLower(u.FullName()), name) {
			return true
		}
		first := strings.ToLower(u.firstName)
		last := strings.ToLower(u.lastName)
		for _, token := range strings.Fields(name) {
			if strings.Contains(first, token) || strings.Contains(last, token) {
				return true
			}
		}
	}
	if c.Email != "" && strings.Contains(strings.ToLower(u.email), strings.ToLower(c.Email)) {
		return true
	}
	return false
}

// Source fetches the complete user directory from the platform.
type Source interface {
	FetchAll(ctx context.Context) ([]User, error)
}

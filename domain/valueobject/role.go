package valueobject

import (
	"errors"
	"strings"
)

var ErrUnknownRole = errors.New("unknown role")

// Role is the closed set of privileges a caller can hold.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// rank orders roles so a higher privilege satisfies a lower requirement.
var rank = map[Role]int{
	RoleUser:  1,
	RoleAdmin: 2,
}

// ParseRole accepts the canonical names case-insensitively. An empty value is rejected.
func ParseRole(value string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "user":
		return RoleUser, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) Valid() bool {
	_, ok := rank[r]
	return ok
}

// Satisfies reports whether r grants at least the privilege of required.
func (r Role) Satisfies(required Role) bool {
	have, ok := rank[r]
	if !ok {
		return false
	}
	need, ok := rank[required]
	if !ok {
		return false
	}
	return have >= need
}

func (r Role) String() string {
	return string(r)
}

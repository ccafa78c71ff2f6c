package domain

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is either a login account or a custodian placeholder that assets can
// be assigned to before the person has an account.
type User struct {
	ID           int64
	Name         string
	Email        *string
	Role         Role
	IsAccount    bool
	PasswordHash string
	CreatedAt    time.Time
}

// Actor identifies the caller of a service operation. It is passed
// explicitly to every operation that needs it.
type Actor struct {
	UserID int64
	Name   string
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// SystemActor is used for operator actions issued from the CLI.
var SystemActor = Actor{Name: "system", Role: RoleAdmin}

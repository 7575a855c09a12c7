package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser   Role = "user"
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
)

// roleRanks orders the closed role set: admin > author > user.
var roleRanks = map[Role]int{
	RoleUser:   1,
	RoleAuthor: 2,
	RoleAdmin:  3,
}

// ParseRole rejects anything outside the enumerated set. Unknown role
// values are a data-integrity violation, never a silent default.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := roleRanks[r]
	return r, ok
}

func (r Role) Rank() int {
	return roleRanks[r]
}

func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	TokenVersion int       `db:"token_version" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// HasRole reports whether the user's role subsumes the required one.
// Higher roles admit everything below them, so author_required admits
// admins and admin_required admits only admins.
func (u *User) HasRole(required Role) bool {
	return u.Role.Rank() >= required.Rank()
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

func (u *User) IsAuthor() bool {
	return u.HasRole(RoleAuthor)
}

package auth

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is the domain entity.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Role      string
	CreatedAt time.Time
}

// internal/identity/domain.go
package identity

import "time"

// Role is the registered capacity of a user at the center.
type Role string

const (
	RoleStaff     Role = "staff"
	RoleDonor     Role = "donor"
	RoleClient    Role = "client"
	RoleVolunteer Role = "volunteer"
)

// Known reports whether r is one of the registered roles.
func (r Role) Known() bool {
	switch r {
	case RoleStaff, RoleDonor, RoleClient, RoleVolunteer:
		return true
	}
	return false
}

// User is a registered visitor or staff member. Credentials live with the
// auth collaborator; the core only knows who someone is and what role they
// were registered with.
type User struct {
	Username  string    `json:"username" db:"username"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	Role      Role      `json:"role" db:"role"`
	BillAddr  string    `json:"billAddr,omitempty" db:"bill_addr"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// UserRegisteredEvent is recorded when a new user registers.
type UserRegisteredEvent struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

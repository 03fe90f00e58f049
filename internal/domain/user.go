package domain

// Role values mirror the backend's role claim. Routing in the CLI is gated
// on these, the same way the web client guarded its routes.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleStoreOwner Role = "store_owner"
	RoleDriver     Role = "driver"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleStoreOwner, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

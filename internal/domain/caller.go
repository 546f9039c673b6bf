package domain

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// Caller is the authenticated principal an operation runs on behalf of.
type Caller struct {
	UserID int
	Role   Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

func (c Caller) Owns(b *Booking) bool {
	return b.UserID == c.UserID
}

func CanView(c Caller, b *Booking) bool {
	return c.IsAdmin() || c.Owns(b)
}

func CanCancel(c Caller, b *Booking) bool {
	return c.IsAdmin() || c.Owns(b)
}

func CanConfirm(c Caller, _ *Booking) bool {
	return c.IsAdmin()
}

func CanManageCatalog(c Caller) bool {
	return c.IsAdmin()
}

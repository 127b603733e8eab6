package model

import "time"

// Role values accepted at signup.  These mirror the enum on the
// users.role column; anything else is rejected before reaching the
// database.
const (
	RoleBuyer    = "Buyer"
	RoleSupplier = "Supplier"
	RoleAdmin    = "Admin"
)

// ValidRole reports whether r is one of the enumerated account roles.
func ValidRole(r string) bool {
	return r == RoleBuyer || r == RoleSupplier || r == RoleAdmin
}

// DefaultOrganization is persisted when signup omits the organization field.
const DefaultOrganization = "N/A"

// User represents an application user record as stored in the
// `users` table.  Each field corresponds to a column.  The json tags
// are omitted because these structs are used internally by the
// repository layer; handlers define separate response types so the
// password hash never leaves the server.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Email        – unique email address, the natural login key.
//  PasswordHash – bcrypt hashed password; the plaintext is never stored.
//  Phone        – unique phone number.
//  Location     – free-form location string.
//  Organization – optional; "N/A" when not supplied.
//  Role         – one of Buyer, Supplier, Admin.  Immutable after signup.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Phone        uint64    // users.phone
	Location     string    // users.location
	Organization string    // users.organization
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

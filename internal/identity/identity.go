package identity

import "strings"

// Role enumerates the closed set of account roles known to the booking API.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEditor   Role = "EDITOR"
	RoleViewer   Role = "VIEWER"
	RoleCustomer Role = "CUSTOMER"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer, RoleCustomer:
		return true
	}
	return false
}

// Profile is the non-secret identity record returned by the booking API at
// login time. It is owned by the session for the lifetime of the credential
// and is never mutated locally.
type Profile struct {
	ID       string  `json:"id"`
	FullName string  `json:"fullName"`
	Mail     string  `json:"mail"`
	Phone    *string `json:"phone"`
	ImageURL *string `json:"imageUrl"`
	Online   bool    `json:"online"`
	Role     Role    `json:"role"`
}

// ClassName distinguishes the two independent authenticated-party categories.
type ClassName string

const (
	ClassStaff    ClassName = "staff"
	ClassCustomer ClassName = "customer"
)

// Class describes one identity class: its storage namespace, the upstream
// auth endpoints it logs in against, the route namespace it owns and where
// unauthenticated visitors to that namespace are sent.
type Class struct {
	Name ClassName

	// KeyPrefix namespaces credential entries in storage.
	KeyPrefix string

	// AuthPath is the upstream path prefix for login/register calls.
	AuthPath string

	// RoutePrefix is the gateway route namespace owned by this class.
	// The customer class owns everything outside the staff prefix.
	RoutePrefix string

	// LoginRoute is where unauthenticated or invalidated visitors land.
	LoginRoute string
}

var (
	// Staff covers administrative accounts (admin/editor/viewer roles).
	Staff = Class{
		Name:        ClassStaff,
		KeyPrefix:   "staff",
		AuthPath:    "/auth",
		RoutePrefix: "/admin",
		LoginRoute:  "/admin/login",
	}

	// Customer covers guest accounts with the fixed CUSTOMER role.
	Customer = Class{
		Name:        ClassCustomer,
		KeyPrefix:   "customer",
		AuthPath:    "/customer-auth",
		RoutePrefix: "",
		LoginRoute:  "/login",
	}
)

// Classes lists all identity classes in credential-preference order: when
// both classes hold a live credential the staff one is attached.
var Classes = []Class{Staff, Customer}

// Destination returns the post-authentication landing route for a role.
// Viewers have the lowest staff privilege and land on the public home page;
// other staff roles go to the dashboard, customers to their bookings.
func (c Class) Destination(role Role) string {
	if c.Name == ClassCustomer {
		return "/my-bookings"
	}
	if role == RoleViewer {
		return "/home"
	}
	return "/admin/dashboard"
}

// ByName resolves a class name persisted in storage or carried in a context.
func ByName(name ClassName) (Class, bool) {
	for _, c := range Classes {
		if c.Name == name {
			return c, true
		}
	}
	return Class{}, false
}

// OwnerOfRoute returns the class whose route namespace contains the given
// gateway path. Staff owns the admin prefix; the customer class owns the rest.
func OwnerOfRoute(path string) Class {
	if path == Staff.RoutePrefix || strings.HasPrefix(path, Staff.RoutePrefix+"/") {
		return Staff
	}
	return Customer
}

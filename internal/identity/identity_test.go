package identity

import "testing"

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleEditor, RoleViewer, RoleCustomer} {
		if !role.Valid() {
			t.Errorf("Valid() = false for %s", role)
		}
	}
	for _, role := range []Role{"", "MANAGER", "admin"} {
		if role.Valid() {
			t.Errorf("Valid() = true for %q", role)
		}
	}
}

func TestDestination(t *testing.T) {
	tests := []struct {
		name  string
		class Class
		role  Role
		want  string
	}{
		{"admin to dashboard", Staff, RoleAdmin, "/admin/dashboard"},
		{"editor to dashboard", Staff, RoleEditor, "/admin/dashboard"},
		{"viewer to home", Staff, RoleViewer, "/home"},
		{"customer to bookings", Customer, RoleCustomer, "/my-bookings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.class.Destination(tt.role); got != tt.want {
				t.Errorf("Destination(%s) = %q, want %q", tt.role, got, tt.want)
			}
		})
	}
}

func TestOwnerOfRoute(t *testing.T) {
	tests := []struct {
		path string
		want ClassName
	}{
		{"/admin", ClassStaff},
		{"/admin/dashboard", ClassStaff},
		{"/admin/rooms/5", ClassStaff},
		{"/administrators", ClassCustomer},
		{"/my-bookings", ClassCustomer},
		{"/", ClassCustomer},
		{"", ClassCustomer},
	}
	for _, tt := range tests {
		if got := OwnerOfRoute(tt.path); got.Name != tt.want {
			t.Errorf("OwnerOfRoute(%q) = %s, want %s", tt.path, got.Name, tt.want)
		}
	}
}

func TestByName(t *testing.T) {
	if c, ok := ByName(ClassStaff); !ok || c.Name != ClassStaff {
		t.Errorf("ByName(staff) = %v, %v", c, ok)
	}
	if c, ok := ByName(ClassCustomer); !ok || c.Name != ClassCustomer {
		t.Errorf("ByName(customer) = %v, %v", c, ok)
	}
	if _, ok := ByName("vendor"); ok {
		t.Error("ByName(vendor) should not resolve")
	}
}

func TestClassesOrder(t *testing.T) {
	if len(Classes) != 2 || Classes[0].Name != ClassStaff {
		t.Fatalf("Classes must list staff before customer, got %v", Classes)
	}
}

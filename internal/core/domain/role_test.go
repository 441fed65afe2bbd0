package domain

import (
	"errors"
	"testing"
)

func TestSystemRoleBags(t *testing.T) {
	for _, c := range AllCapabilities {
		if !AdminPermissions.Has(c) {
			t.Fatalf("admin should hold %s", c)
		}
	}

	managerDenied := map[Capability]bool{CanDeleteReports: true, CanManageUsers: true, CanBackupRestore: true}
	for _, c := range AllCapabilities {
		if ManagerPermissions.Has(c) == managerDenied[c] {
			t.Fatalf("manager capability %s has unexpected value %v", c, ManagerPermissions.Has(c))
		}
	}

	employeeAllowed := map[Capability]bool{CanViewReports: true, CanCreateReports: true, CanExportData: true}
	for _, c := range AllCapabilities {
		if EmployeePermissions.Has(c) != employeeAllowed[c] {
			t.Fatalf("employee capability %s has unexpected value %v", c, EmployeePermissions.Has(c))
		}
	}
}

func TestPermissions_UnknownCapability(t *testing.T) {
	if AdminPermissions.Has(Capability("canFly")) {
		t.Fatalf("unknown capability must never be granted")
	}
	p := EmployeePermissions.With(Capability("canFly"), true)
	if p != EmployeePermissions {
		t.Fatalf("With on unknown capability must not change the bag")
	}
}

func TestPermissions_WithReturnsCopy(t *testing.T) {
	p := EmployeePermissions.With(CanDeleteReports, true)
	if !p.CanDeleteReports {
		t.Fatalf("expected capability to be set on the copy")
	}
	if EmployeePermissions.CanDeleteReports {
		t.Fatalf("original bag must not be mutated")
	}
}

func TestIsReservedRoleName(t *testing.T) {
	for _, name := range []string{"admin", "Manager", " EMPLOYEE "} {
		if !IsReservedRoleName(name) {
			t.Fatalf("%q should be reserved", name)
		}
	}
	if IsReservedRoleName("Supervisor") {
		t.Fatalf("Supervisor should not be reserved")
	}
}

func TestValidateRoleDefinition(t *testing.T) {
	if err := ValidateRoleDefinition("Shift Lead_2", "runs the evening shift"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := []string{"x", "this role name is far too long to be accepted", "lead-cashier"}
	for _, name := range bad {
		err := ValidateRoleDefinition(name, "")
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation error for %q, got %v", name, err)
		}
	}

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidateRoleDefinition("Auditor", string(long)); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for long description, got %v", err)
	}
}

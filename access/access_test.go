package access

import (
	"testing"

	"github.com/xraph/tokenledger/account"
)

func TestRoleString(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleOwner, "OWNER"},
		{RoleAdmin, "ADMIN"},
		{RoleUnpaused, "UNPAUSED"},
		{AllRoles, "UNKNOWN"},
		{Role(0), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.role.String(); got != tt.want {
				t.Errorf("Got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleOwner, RoleAdmin, RoleUnpaused} {
		if !r.Valid() {
			t.Errorf("%s should be valid", r)
		}
	}
	for _, r := range []Role{0, AllRoles, RoleOwner | RoleAdmin, 1 << 5} {
		if r.Valid() {
			t.Errorf("%d should not be valid", r)
		}
	}
}

func TestGrants(t *testing.T) {
	alice := account.MustParse("0x00000000000000000000000000000000000000aa")
	bob := account.MustParse("0x00000000000000000000000000000000000000bb")

	g := NewGrants()

	if g.Has(alice, RoleOwner) {
		t.Error("fresh table should grant nothing")
	}

	g.Grant(alice, RoleOwner)
	g.Grant(alice, RoleAdmin)

	if !g.Has(alice, RoleOwner) || !g.Has(alice, RoleAdmin) {
		t.Error("granted roles should be held")
	}
	if g.Has(alice, RoleUnpaused) {
		t.Error("ungranted role should not be held")
	}
	if g.Has(bob, RoleOwner) {
		t.Error("grants should not leak between principals")
	}
	if g.Roles(alice) != RoleOwner|RoleAdmin {
		t.Errorf("Roles: got %d, want %d", g.Roles(alice), RoleOwner|RoleAdmin)
	}

	// Any-of semantics: a combined mask matches if at least one bit is held.
	if !g.Has(alice, RoleOwner|RoleUnpaused) {
		t.Error("combined mask should match on any held bit")
	}

	g.Revoke(alice, RoleOwner)
	if g.Has(alice, RoleOwner) {
		t.Error("revoked role should not be held")
	}
	if !g.Has(alice, RoleAdmin) {
		t.Error("revoking one role should not clear others")
	}

	// Revoking a role that is not held is a no-op.
	g.Revoke(bob, RoleAdmin)
	if g.Roles(bob) != 0 {
		t.Error("revoke on empty grant should stay empty")
	}

	g.Revoke(alice, RoleAdmin)
	if g.Roles(alice) != 0 {
		t.Error("all roles revoked, role set should be empty")
	}
}

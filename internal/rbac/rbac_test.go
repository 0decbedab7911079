package rbac

import "testing"

func TestHasCapabilityMatrix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		roles      []string
		capability Capability
		want       bool
	}{
		{
			name:       "admin has defined capability",
			roles:      []string{"admin"},
			capability: CapMarginAdd,
			want:       true,
		},
		{
			name:       "admin denied for undefined capability",
			roles:      []string{"admin"},
			capability: Capability("made.up"),
			want:       false,
		},
		{
			name:       "kitchen sees the prep queue",
			roles:      []string{"kitchen"},
			capability: CapKitchenQueue,
			want:       true,
		},
		{
			name:       "kitchen cannot add margins",
			roles:      []string{"kitchen"},
			capability: CapMarginAdd,
			want:       false,
		},
		{
			name:       "courier sees deliveries",
			roles:      []string{"courier"},
			capability: CapDeliveries,
			want:       true,
		},
		{
			name:       "courier cannot view all orders",
			roles:      []string{"courier"},
			capability: CapOrdersAll,
			want:       false,
		},
		{
			name:       "marketing can add margins",
			roles:      []string{"marketing"},
			capability: CapMarginAdd,
			want:       true,
		},
		{
			name:       "buyer sees own orders and cashback",
			roles:      []string{"buyer"},
			capability: CapCashbackView,
			want:       true,
		},
		{
			name:       "operations handles incoming orders",
			roles:      []string{"operations"},
			capability: CapOrdersIncoming,
			want:       true,
		},
		{
			name:       "role strings are normalised",
			roles:      []string{" Kitchen "},
			capability: CapKitchenQueue,
			want:       true,
		},
		{
			name:       "empty capability always allowed",
			roles:      nil,
			capability: "",
			want:       true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := HasCapability(tc.roles, tc.capability); got != tc.want {
				t.Fatalf("HasCapability(%v, %q) = %v, want %v", tc.roles, tc.capability, got, tc.want)
			}
		})
	}
}

func TestCapabilitiesForRoles(t *testing.T) {
	t.Parallel()

	caps := CapabilitiesForRoles([]string{"kitchen"})
	if !caps[CapKitchenQueue] || !caps[CapDashboardOverview] {
		t.Fatalf("kitchen missing expected capabilities: %v", caps)
	}
	if caps[CapMarginAdd] {
		t.Fatalf("kitchen should not gain margin capability: %v", caps)
	}

	adminCaps := CapabilitiesForRoles([]string{"admin"})
	if len(adminCaps) != len(capabilityRoles) {
		t.Fatalf("admin should hold every capability, got %d of %d", len(adminCaps), len(capabilityRoles))
	}
}

func TestNormaliseDeduplicates(t *testing.T) {
	t.Parallel()

	roles := Normalise([]string{"buyer", "BUYER", "", "courier"})
	if len(roles) != 2 {
		t.Fatalf("expected 2 roles, got %v", roles)
	}
	if !roles.Has(RoleBuyer) || !roles.Has(RoleCourier) {
		t.Fatalf("unexpected roles %v", roles)
	}
}

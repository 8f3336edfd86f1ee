package key

import "testing"

func TestModifierHas(t *testing.T) {
	tests := []struct {
		mod    Modifier
		check  Modifier
		expect bool
	}{
		{ModNone, ModCtrl, false},
		{ModCtrl, ModCtrl, true},
		{ModCtrl | ModAlt, ModCtrl, true},
		{ModCtrl | ModAlt, ModAlt, true},
		{ModCtrl | ModAlt, ModShift, false},
		{ModCtrl | ModAlt | ModShift | ModMeta, ModMeta, true},
	}

	for _, tt := range tests {
		if got := tt.mod.Has(tt.check); got != tt.expect {
			t.Errorf("Modifier(%d).Has(%d) = %v, want %v", tt.mod, tt.check, got, tt.expect)
		}
	}
}

func TestModifierHasHelpers(t *testing.T) {
	combo := ModCtrl | ModShift
	if !combo.HasCtrl() || !combo.HasShift() {
		t.Errorf("HasCtrl/HasShift false for %v", combo)
	}
	if combo.HasAlt() || combo.HasMeta() {
		t.Errorf("HasAlt/HasMeta true for %v", combo)
	}
}

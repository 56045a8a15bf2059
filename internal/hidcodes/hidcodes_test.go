package hidcodes

import "testing"

func TestKeyNameToHIDKnownValues(t *testing.T) {
	cases := []struct {
		name string
		want byte
	}{
		{"KeyA", 0x04},
		{"Enter", 0x28},
		{"Space", 0x2c},
	}
	for _, tc := range cases {
		got, ok := KeyNameToHID(tc.name)
		if !ok {
			t.Fatalf("%s: expected ok", tc.name)
		}
		if got != tc.want {
			t.Fatalf("%s: expected 0x%02x, got 0x%02x", tc.name, tc.want, got)
		}
	}
}

func TestKeyNameToHIDUnknown(t *testing.T) {
	if _, ok := KeyNameToHID("Nonexistent"); ok {
		t.Fatal("expected unknown key name to miss")
	}
}

func TestModifierNameToMaskKnownValues(t *testing.T) {
	cases := []struct {
		name string
		want byte
	}{
		{"ShiftLeft", 0x02},
		{"ControlLeft", 0x01},
		{"AltRight", 0x40},
	}
	for _, tc := range cases {
		got, ok := ModifierNameToMask(tc.name)
		if !ok {
			t.Fatalf("%s: expected ok", tc.name)
		}
		if got != tc.want {
			t.Fatalf("%s: expected 0x%02x, got 0x%02x", tc.name, tc.want, got)
		}
	}
}

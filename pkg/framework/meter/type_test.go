package meter

import "testing"

func TestTypeString(t *testing.T) {
	tests := []struct {
		mask Type
		want string
	}{
		{0, "None"},
		{TypePeak, "Peak"},
		{TypeK20, "K20"},
		{TypeVU, "VU"},
		{TypeK20 | TypeVU, "K20+VU"},
		{TypeIEC1DIN | TypeIEC2EBU, "IEC1/DIN+IEC2/EBU"},
		{1 << 20, "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.mask.String(); got != tt.want {
			t.Errorf("Type(%d).String(): expected %q, got %q", tt.mask, tt.want, got)
		}
	}
}

func TestFamilyMasks(t *testing.T) {
	// Every scale bit belongs to at most one ballistics family.
	families := []Type{FamilyMaskK, FamilyMaskIEC1, FamilyMaskIEC2, FamilyMaskVU}
	for i, a := range families {
		for _, b := range families[i+1:] {
			if a&b != 0 {
				t.Errorf("Family masks %s and %s overlap", a, b)
			}
		}
	}

	// The display bits are not part of any ballistics family.
	display := TypeMaxSignal | TypeMaxPeak | TypePeak
	for _, f := range families {
		if f&display != 0 {
			t.Errorf("Family mask %s claims a display bit", f)
		}
	}

	// The fixed K falloff covers the headroom scales, not K/RMS.
	if FamilyMaskKFalloff&TypeKRMS != 0 {
		t.Error("K/RMS must use the configured falloff rate")
	}
	if FamilyMaskKFalloff != TypeK20|TypeK14|TypeK12 {
		t.Errorf("Unexpected K falloff mask: %s", FamilyMaskKFalloff)
	}
}

func TestFamilyToggled(t *testing.T) {
	tests := []struct {
		old, next Type
		family    Type
		want      bool
	}{
		{0, TypeK20, FamilyMaskK, true},
		{TypeK20, 0, FamilyMaskK, true},
		{TypeK20, TypeK14, FamilyMaskK, false},  // stays selected
		{TypeVU, TypeVU | TypeK20, FamilyMaskVU, false},
		{TypeVU, TypeK20, FamilyMaskVU, true},
		{TypePeak, TypeMaxPeak, FamilyMaskIEC1, false}, // stays unselected
	}

	for _, tt := range tests {
		if got := familyToggled(tt.old, tt.next, tt.family); got != tt.want {
			t.Errorf("familyToggled(%s, %s, %s): expected %v, got %v",
				tt.old, tt.next, tt.family, tt.want, got)
		}
	}
}

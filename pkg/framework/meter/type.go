package meter

import "strings"

// Type is a bitmask of requested metering standards. Multiple bits may
// be active at once - they are differing dB scales of the same signal.
type Type uint32

const (
	// TypeMaxSignal is the read-only running maximum of the raw signal.
	TypeMaxSignal Type = 1 << iota
	// TypeMaxPeak is the read-only running maximum of the dB-scaled level.
	TypeMaxPeak
	// TypePeak is the plain digital peak meter.
	TypePeak
	// TypeKRMS is the K-system RMS scale.
	TypeKRMS
	// TypeK20 is the K-20 scale (20dB of headroom).
	TypeK20
	// TypeK14 is the K-14 scale (14dB of headroom).
	TypeK14
	// TypeK12 is the K-12 scale (12dB of headroom).
	TypeK12
	// TypeIEC1DIN is the IEC type I PPM, DIN scale.
	TypeIEC1DIN
	// TypeIEC1NOR is the IEC type I PPM, Nordic scale.
	TypeIEC1NOR
	// TypeIEC2BBC is the IEC type II PPM, BBC scale.
	TypeIEC2BBC
	// TypeIEC2EBU is the IEC type II PPM, EBU scale.
	TypeIEC2EBU
	// TypeVU is the classic VU meter.
	TypeVU
)

// Family masks group the bits that share one ballistics unit per channel.
const (
	// FamilyMaskK covers all K-system scales.
	FamilyMaskK = TypeKRMS | TypeK20 | TypeK14 | TypeK12
	// FamilyMaskIEC1 covers the IEC type I PPM scales.
	FamilyMaskIEC1 = TypeIEC1DIN | TypeIEC1NOR
	// FamilyMaskIEC2 covers the IEC type II PPM scales.
	FamilyMaskIEC2 = TypeIEC2BBC | TypeIEC2EBU
	// FamilyMaskVU covers the VU meter.
	FamilyMaskVU = TypeVU
	// FamilyMaskKFalloff covers the K scales that use the fixed
	// 24dB-over-2s display falloff instead of the configured rate.
	FamilyMaskKFalloff = TypeK20 | TypeK14 | TypeK12
)

var typeNames = []struct {
	bit  Type
	name string
}{
	{TypeMaxSignal, "MaxSignal"},
	{TypeMaxPeak, "MaxPeak"},
	{TypePeak, "Peak"},
	{TypeKRMS, "K/RMS"},
	{TypeK20, "K20"},
	{TypeK14, "K14"},
	{TypeK12, "K12"},
	{TypeIEC1DIN, "IEC1/DIN"},
	{TypeIEC1NOR, "IEC1/Nordic"},
	{TypeIEC2BBC, "IEC2/BBC"},
	{TypeIEC2EBU, "IEC2/EBU"},
	{TypeVU, "VU"},
}

// String returns the names of all set bits, "+"-joined.
func (t Type) String() string {
	if t == 0 {
		return "None"
	}
	var parts []string
	for _, tn := range typeNames {
		if t&tn.bit != 0 {
			parts = append(parts, tn.name)
		}
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, "+")
}

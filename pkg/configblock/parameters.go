package configblock

import (
	"fmt"
	"math"
)

// Parameters is the resolved content of a configuration block.
// Values from a valid record are carried verbatim, without clamping.
type Parameters struct {
	RadioChannel uint8
	RadioSpeed   RadioSpeed
	RadioAddress uint64
	CalibPitch   float32
	CalibRoll    float32
}

// RangeIssues lists the fields that lie outside what the hardware supports.
// The record checksum says nothing about physical range, so a valid record
// may still carry these; callers decide what to do with them.
func (p Parameters) RangeIssues() []string {
	var issues []string

	if p.RadioChannel > MaxRadioChannel {
		issues = append(issues, fmt.Sprintf("radio channel %d exceeds %d", p.RadioChannel, MaxRadioChannel))
	}
	if !p.RadioSpeed.Valid() {
		issues = append(issues, fmt.Sprintf("radio speed %d is not a known data rate", uint8(p.RadioSpeed)))
	}
	if !isFinite(p.CalibPitch) {
		issues = append(issues, fmt.Sprintf("calib pitch %v is not finite", p.CalibPitch))
	}
	if !isFinite(p.CalibRoll) {
		issues = append(issues, fmt.Sprintf("calib roll %v is not finite", p.CalibRoll))
	}

	return issues
}

func isFinite(f float32) bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

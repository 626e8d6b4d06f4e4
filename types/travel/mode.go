package travel

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Mode is how the traveler covered a stretch of route.
// Ground is the default; flight is inferred; train and boat only ever
// come from operator-authored overrides.
type Mode int

const (
	ModeGround Mode = iota
	ModeFlight
	ModeTrain
	ModeBoat
	ModeUnknown Mode = -1
)

var AllModeNames = []string{
	ModeGround.String(),
	ModeFlight.String(),
	ModeTrain.String(),
	ModeBoat.String(),
}

var (
	modeGround = regexp.MustCompile(`(?i)^ground|walk|drive|bus|car`)
	modeFlight = regexp.MustCompile(`(?i)^flight|^fly|^air|^plane`)
	modeTrain  = regexp.MustCompile(`(?i)^train|^rail`)
	modeBoat   = regexp.MustCompile(`(?i)^boat|^ferry|^ship|^sail`)
)

// String implements the Stringer interface.
func (m Mode) String() string {
	switch m {
	case ModeGround:
		return "ground"
	case ModeFlight:
		return "flight"
	case ModeTrain:
		return "train"
	case ModeBoat:
		return "boat"
	}
	return "unknown"
}

// IsKnown returns true if the mode is one of the four real modes.
func (m Mode) IsKnown() bool {
	return m >= ModeGround && m <= ModeBoat
}

// ParseMode matches a mode name leniently, "ferry" is a boat, etc.
func ParseMode(s string) Mode {
	switch {
	case modeFlight.MatchString(s):
		return ModeFlight
	case modeTrain.MatchString(s):
		return ModeTrain
	case modeBoat.MatchString(s):
		return ModeBoat
	case modeGround.MatchString(s):
		return ModeGround
	}
	return ModeUnknown
}

// MarshalJSON implements the json.Marshaler interface.
// Modes travel as their lowercase names.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v := ParseMode(s)
	if !v.IsKnown() {
		return fmt.Errorf("unknown travel mode: %q", s)
	}
	*m = v
	return nil
}

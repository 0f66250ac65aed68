package analysis

import (
	"fmt"
	"strings"
)

// Mode selects the depth of analysis requested from the service and which
// result sections are eligible for display.
type Mode string

const (
	// ModeBasic requests summary, persons, sentiment and contact info.
	ModeBasic Mode = "basic"

	// ModeFinancial additionally requests statistical insights,
	// organizations and a financial status label.
	ModeFinancial Mode = "financial"
)

// DefaultMode is used when no mode was chosen.
const DefaultMode = ModeBasic

// ParseMode normalizes and validates a mode string. An empty string yields
// the default mode.
func ParseMode(raw string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch normalized {
	case "":
		return DefaultMode, nil
	case string(ModeBasic):
		return ModeBasic, nil
	case string(ModeFinancial):
		return ModeFinancial, nil
	default:
		return "", fmt.Errorf("invalid analysis mode: %s (must be one of: basic, financial)", raw)
	}
}

// IsFinancial reports whether financial-only fields are in play.
func (m Mode) IsFinancial() bool {
	return m == ModeFinancial
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m.IsFinancial() {
		return ModeBasic
	}
	return ModeFinancial
}

func (m Mode) String() string {
	if m == "" {
		return string(DefaultMode)
	}
	return string(m)
}

// Modes returns the supported modes in display order.
func Modes() []Mode {
	return []Mode{ModeBasic, ModeFinancial}
}

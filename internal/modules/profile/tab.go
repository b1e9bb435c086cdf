package profile

import (
	"errors"
	"fmt"
)

// Tab selects which section of the profile form is shown.
type Tab string

const (
	TabPersonal    Tab = "personal"
	TabBilling     Tab = "billing"
	TabPreferences Tab = "preferences"
)

// Tabs lists the sections in display order.
var Tabs = []Tab{TabPersonal, TabBilling, TabPreferences}

var ErrUnknownTab = errors.New("unknown profile tab")

// ParseTab validates a tab selector. The empty string selects the personal tab.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case "":
		return TabPersonal, nil
	case TabPersonal, TabBilling, TabPreferences:
		return Tab(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
	}
}

// Label is the human-readable tab name.
func (t Tab) Label() string {
	switch t {
	case TabBilling:
		return "Billing"
	case TabPreferences:
		return "Preferences"
	default:
		return "Personal Info"
	}
}

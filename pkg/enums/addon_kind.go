package enums

import "fmt"

// AddonKind distinguishes the two selectable addon families.
type AddonKind string

const (
	AddonKindEquipment AddonKind = "equipment"
	AddonKindAccessory AddonKind = "accessory"
)

var validAddonKinds = []AddonKind{
	AddonKindEquipment,
	AddonKindAccessory,
}

// String implements fmt.Stringer.
func (a AddonKind) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AddonKind.
func (a AddonKind) IsValid() bool {
	for _, candidate := range validAddonKinds {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAddonKind converts raw input into an AddonKind.
func ParseAddonKind(value string) (AddonKind, error) {
	for _, candidate := range validAddonKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid addon kind %q", value)
}

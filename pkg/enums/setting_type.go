package enums

import "fmt"

// SettingType constrains the value variant a setting record may carry.
type SettingType string

const (
	SettingTypeString  SettingType = "string"
	SettingTypeNumber  SettingType = "number"
	SettingTypeBoolean SettingType = "boolean"
	SettingTypeJSON    SettingType = "json"
)

var validSettingTypes = []SettingType{
	SettingTypeString,
	SettingTypeNumber,
	SettingTypeBoolean,
	SettingTypeJSON,
}

// String implements fmt.Stringer.
func (s SettingType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SettingType.
func (s SettingType) IsValid() bool {
	for _, candidate := range validSettingTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSettingType converts raw input into a SettingType.
func ParseSettingType(value string) (SettingType, error) {
	for _, candidate := range validSettingTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid setting type %q", value)
}

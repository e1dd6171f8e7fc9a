package fields

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Value reads the current value of a setting from field as the string the
// settings panel displays.
func Value(field model.FieldDescriptor, key SettingKey) string {
	switch key {
	case SettingLabel, SettingHeadingText:
		return field.Label
	case SettingSize:
		if field.Size == "" {
			return string(model.SizeFull)
		}
		return string(field.Size)
	case SettingDefaultValue:
		return field.DefaultValue
	case SettingChecked:
		return strconv.FormatBool(field.DefaultValue == "true")
	case SettingPlaceholder:
		return field.Placeholder
	case SettingOptions:
		return field.Options
	case SettingMin:
		return field.Min
	case SettingMax:
		return field.Max
	case SettingRequired:
		return strconv.FormatBool(field.Required)
	case SettingCustomClass:
		return field.CustomClass
	default:
		return ""
	}
}

// Apply writes value into the attribute bound to key. Boolean settings accept
// the strconv.ParseBool spellings; sizes must be one of model.Sizes. Label
// emptiness is not checked.
func Apply(field model.FieldDescriptor, key SettingKey, value string) (model.FieldDescriptor, error) {
	switch key {
	case SettingLabel, SettingHeadingText:
		field.Label = value
	case SettingSize:
		size := model.Size(strings.TrimSpace(value))
		if !size.Valid() {
			return field, fmt.Errorf("fields: invalid size %q", value)
		}
		field.Size = size
	case SettingDefaultValue:
		field.DefaultValue = value
	case SettingChecked:
		checked, err := parseBool(value)
		if err != nil {
			return field, err
		}
		field.DefaultValue = strconv.FormatBool(checked)
	case SettingPlaceholder:
		field.Placeholder = value
	case SettingOptions:
		field.Options = value
	case SettingMin:
		field.Min = strings.TrimSpace(value)
	case SettingMax:
		field.Max = strings.TrimSpace(value)
	case SettingRequired:
		required, err := parseBool(value)
		if err != nil {
			return field, err
		}
		field.Required = required
	case SettingCustomClass:
		field.CustomClass = value
	default:
		return field, fmt.Errorf("fields: unknown setting %q", key)
	}
	return field, nil
}

func parseBool(value string) (bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return false, fmt.Errorf("fields: invalid boolean %q", value)
	}
	return parsed, nil
}

package fields

import "github.com/goliatone/go-formbuilder/pkg/model"

// Control identifies the preview representation of a field.
type Control string

// Built-in preview controls.
const (
	ControlInput    Control = "input"
	ControlTextarea Control = "textarea"
	ControlToggle   Control = "toggle"
	ControlSelect   Control = "select"
	ControlRadio    Control = "radio"
	ControlRange    Control = "range"
	ControlHeading  Control = "heading"
	ControlFile     Control = "file"
	ControlRatings  Control = "ratings"
	ControlDivider  Control = "divider"
	ControlSpacer   Control = "spacer"
)

// Controls lists every built-in preview control.
func Controls() []Control {
	return []Control{
		ControlInput, ControlTextarea, ControlToggle, ControlSelect, ControlRadio,
		ControlRange, ControlHeading, ControlFile, ControlRatings, ControlDivider,
		ControlSpacer,
	}
}

// SettingKey names the descriptor attribute a setting input is bound to.
type SettingKey string

const (
	SettingLabel        SettingKey = "label"
	SettingSize         SettingKey = "size"
	SettingDefaultValue SettingKey = "defaultValue"
	SettingPlaceholder  SettingKey = "placeholder"
	SettingChecked      SettingKey = "checked"
	SettingOptions      SettingKey = "options"
	SettingMin          SettingKey = "min"
	SettingMax          SettingKey = "max"
	SettingHeadingText  SettingKey = "headingText"
	SettingRequired     SettingKey = "required"
	SettingCustomClass  SettingKey = "customClass"
)

// InputKind is the editor control used for a setting.
type InputKind string

const (
	InputText     InputKind = "text"
	InputNumber   InputKind = "number"
	InputCheckbox InputKind = "checkbox"
	InputSelect   InputKind = "select"
	InputDate     InputKind = "date"
	InputTime     InputKind = "time"
	InputDateTime InputKind = "datetime-local"
	InputColor    InputKind = "color"
)

// Setting is one configuration input shown in the settings panel.
type Setting struct {
	Key     SettingKey
	Label   string
	Input   InputKind
	Default string
}

// Spec is the registry entry for one field type: the type-specific settings
// (in panel order), the preview control, and the defaults the preview falls
// back to when the descriptor leaves them empty.
type Spec struct {
	Type     model.FieldType
	Settings []Setting
	Control  Control
	// InputType is the HTML input type used by input-like preview controls.
	InputType  string
	DefaultMin string
	DefaultMax string
	// Static fields render no input and never appear in submissions.
	Static bool
}

// HasSetting reports whether the spec lists the setting key.
func (s Spec) HasSetting(key SettingKey) bool {
	for _, setting := range s.Settings {
		if setting.Key == key {
			return true
		}
	}
	return false
}

// Min returns the descriptor minimum or the spec default.
func (s Spec) Min(field model.FieldDescriptor) string {
	if field.Min != "" {
		return field.Min
	}
	return s.DefaultMin
}

// Max returns the descriptor maximum or the spec default.
func (s Spec) Max(field model.FieldDescriptor) string {
	if field.Max != "" {
		return field.Max
	}
	return s.DefaultMax
}

// Common settings shown for every field type, split around the type-specific
// inputs the way the panel lays them out.
var (
	leadingSettings = []Setting{
		{Key: SettingLabel, Label: "Field label", Input: InputText},
		{Key: SettingSize, Label: "Field Size", Input: InputSelect, Default: string(model.SizeFull)},
	}
	trailingSettings = []Setting{
		{Key: SettingRequired, Label: "Required field", Input: InputCheckbox},
		{Key: SettingCustomClass, Label: "Field Custom Class", Input: InputText},
	}
)

// PanelSettings returns the full ordered list of settings for spec: the
// common leading inputs, the type-specific ones, then the common trailing
// inputs.
func PanelSettings(spec Spec) []Setting {
	out := make([]Setting, 0, len(leadingSettings)+len(spec.Settings)+len(trailingSettings))
	out = append(out, leadingSettings...)
	out = append(out, spec.Settings...)
	out = append(out, trailingSettings...)
	return out
}

// SizeLabel returns the settings panel label for a layout hint.
func SizeLabel(size model.Size) string {
	switch size {
	case model.SizeOneThird:
		return "One Third"
	case model.SizeHalf:
		return "Half"
	default:
		return "Full"
	}
}

package fields

import "github.com/goliatone/go-formbuilder/pkg/model"

func textSettings(input InputKind) []Setting {
	return []Setting{
		{Key: SettingDefaultValue, Label: "Field default value", Input: input},
		{Key: SettingPlaceholder, Label: "Field placeholder", Input: InputText},
	}
}

func builtinSpecs() []Spec {
	checked := []Setting{{Key: SettingChecked, Label: "Checked by default", Input: InputCheckbox}}
	options := []Setting{{Key: SettingOptions, Label: "Options (comma separated)", Input: InputText}}

	return []Spec{
		{Type: model.FieldTypeText, Settings: textSettings(InputText), Control: ControlInput, InputType: "text"},
		{Type: model.FieldTypeTextarea, Settings: textSettings(InputText), Control: ControlTextarea},
		{
			Type:     model.FieldTypeFile,
			Settings: []Setting{{Key: SettingPlaceholder, Label: "Field placeholder", Input: InputText}},
			Control:  ControlFile,
		},
		{Type: model.FieldTypeEmail, Settings: textSettings(InputText), Control: ControlInput, InputType: "email"},
		{Type: model.FieldTypePassword, Settings: textSettings(InputText), Control: ControlInput, InputType: "password"},
		{Type: model.FieldTypeNumber, Settings: textSettings(InputNumber), Control: ControlInput, InputType: "number"},
		{Type: model.FieldTypeTelephone, Settings: textSettings(InputText), Control: ControlInput, InputType: "tel"},
		{Type: model.FieldTypeCheckbox, Settings: checked, Control: ControlToggle},
		{Type: model.FieldTypeSingleCheckbox, Settings: checked, Control: ControlToggle},
		{Type: model.FieldTypeSelect, Settings: options, Control: ControlSelect},
		{Type: model.FieldTypeRadio, Settings: options, Control: ControlRadio},
		{
			Type:      model.FieldTypeDate,
			Settings:  []Setting{{Key: SettingDefaultValue, Label: "Field default value", Input: InputDate}},
			Control:   ControlInput,
			InputType: "date",
		},
		{
			Type:      model.FieldTypeTime,
			Settings:  []Setting{{Key: SettingDefaultValue, Label: "Field default value", Input: InputTime}},
			Control:   ControlInput,
			InputType: "time",
		},
		{
			Type:      model.FieldTypeDateTime,
			Settings:  []Setting{{Key: SettingDefaultValue, Label: "Field default value", Input: InputDateTime}},
			Control:   ControlInput,
			InputType: "datetime-local",
		},
		{
			Type:      model.FieldTypeColor,
			Settings:  []Setting{{Key: SettingDefaultValue, Label: "Field default value", Input: InputColor}},
			Control:   ControlInput,
			InputType: "color",
		},
		{
			Type: model.FieldTypeRange,
			Settings: []Setting{
				{Key: SettingMin, Label: "Minimum value", Input: InputNumber, Default: "0"},
				{Key: SettingMax, Label: "Maximum value", Input: InputNumber, Default: "100"},
			},
			Control:    ControlRange,
			DefaultMin: "0",
			DefaultMax: "100",
		},
		{Type: model.FieldTypeURL, Settings: textSettings(InputText), Control: ControlInput, InputType: "url"},
		{
			Type:       model.FieldTypeRatings,
			Settings:   []Setting{{Key: SettingMax, Label: "Maximum rating value", Input: InputNumber, Default: "5"}},
			Control:    ControlRatings,
			DefaultMax: "5",
		},
		{Type: model.FieldTypeDivider, Control: ControlDivider, Static: true},
		{Type: model.FieldTypeSpacer, Control: ControlSpacer, Static: true},
		{
			Type:     model.FieldTypeHeading,
			Settings: []Setting{{Key: SettingHeadingText, Label: "Heading Text", Input: InputText}},
			Control:  ControlHeading,
			Static:   true,
		},
	}
}

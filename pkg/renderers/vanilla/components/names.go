package components

import "github.com/goliatone/go-formbuilder/pkg/fields"

// Canonical component names; they match the preview controls of the field
// registry.
const (
	NameInput    = string(fields.ControlInput)
	NameTextarea = string(fields.ControlTextarea)
	NameToggle   = string(fields.ControlToggle)
	NameSelect   = string(fields.ControlSelect)
	NameRadio    = string(fields.ControlRadio)
	NameRange    = string(fields.ControlRange)
	NameHeading  = string(fields.ControlHeading)
	NameFile     = string(fields.ControlFile)
	NameRatings  = string(fields.ControlRatings)
	NameDivider  = string(fields.ControlDivider)
	NameSpacer   = string(fields.ControlSpacer)
)

package model

import (
	"strings"
	"time"
)

// FieldType is the fixed enumeration of field kinds a merchant can add to a
// form. Values match the labels shown in the add-field menu and are persisted
// verbatim.
type FieldType string

const (
	FieldTypeText           FieldType = "Text"
	FieldTypeTextarea       FieldType = "Textarea"
	FieldTypeFile           FieldType = "File"
	FieldTypeEmail          FieldType = "Email"
	FieldTypePassword       FieldType = "Password"
	FieldTypeNumber         FieldType = "Number"
	FieldTypeTelephone      FieldType = "Telephone"
	FieldTypeCheckbox       FieldType = "Checkbox"
	FieldTypeSingleCheckbox FieldType = "Single checkbox"
	FieldTypeSelect         FieldType = "Select"
	FieldTypeRadio          FieldType = "Radio"
	FieldTypeDate           FieldType = "Date"
	FieldTypeTime           FieldType = "Time"
	FieldTypeDateTime       FieldType = "Date time"
	FieldTypeColor          FieldType = "Color"
	FieldTypeRange          FieldType = "Range"
	FieldTypeURL            FieldType = "URL"
	FieldTypeRatings        FieldType = "Ratings"
	FieldTypeDivider        FieldType = "Divider"
	FieldTypeSpacer         FieldType = "Spacer"
	FieldTypeHeading        FieldType = "Heading"
)

// FieldTypes lists every field type in add-field menu order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText, FieldTypeTextarea, FieldTypeFile, FieldTypeEmail,
		FieldTypePassword, FieldTypeNumber, FieldTypeTelephone, FieldTypeCheckbox,
		FieldTypeSingleCheckbox, FieldTypeSelect, FieldTypeRadio, FieldTypeDate,
		FieldTypeTime, FieldTypeDateTime, FieldTypeColor, FieldTypeRange,
		FieldTypeURL, FieldTypeRatings, FieldTypeDivider, FieldTypeSpacer,
		FieldTypeHeading,
	}
}

// ParseFieldType matches raw against the enumeration ignoring case and
// surrounding whitespace.
func ParseFieldType(raw string) (FieldType, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, candidate := range FieldTypes() {
		if strings.EqualFold(string(candidate), trimmed) {
			return candidate, true
		}
	}
	return "", false
}

// Size is the layout hint for a field.
type Size string

const (
	SizeOneThird Size = "one-third"
	SizeHalf     Size = "half"
	SizeFull     Size = "full"
)

// Sizes lists the accepted layout hints, narrowest first.
func Sizes() []Size {
	return []Size{SizeOneThird, SizeHalf, SizeFull}
}

// Valid reports whether s is one of the accepted layout hints.
func (s Size) Valid() bool {
	switch s {
	case SizeOneThird, SizeHalf, SizeFull:
		return true
	default:
		return false
	}
}

// FieldDescriptor describes one form field. It only carries the editable
// attributes; editor state such as selection lives in the draft.
type FieldDescriptor struct {
	Type         FieldType `json:"type" yaml:"type" bson:"type"`
	Label        string    `json:"label" yaml:"label" bson:"label"`
	Size         Size      `json:"size" yaml:"size,omitempty" bson:"size"`
	Required     bool      `json:"required" yaml:"required,omitempty" bson:"required"`
	DefaultValue string    `json:"defaultValue" yaml:"defaultValue,omitempty" bson:"defaultValue,omitempty"`
	Placeholder  string    `json:"placeholder" yaml:"placeholder,omitempty" bson:"placeholder,omitempty"`
	Options      string    `json:"options" yaml:"options,omitempty" bson:"options,omitempty"`
	Min          string    `json:"min,omitempty" yaml:"min,omitempty" bson:"min,omitempty"`
	Max          string    `json:"max,omitempty" yaml:"max,omitempty" bson:"max,omitempty"`
	CustomClass  string    `json:"customClass" yaml:"customClass,omitempty" bson:"customClass,omitempty"`
}

// Form is a persisted form definition keyed by FormID.
type Form struct {
	FormID    string            `json:"formId" yaml:"formId,omitempty" bson:"formId"`
	FormName  string            `json:"formName" yaml:"formName" bson:"formName"`
	Fields    []FieldDescriptor `json:"fields" yaml:"fields" bson:"fields"`
	StoreID   string            `json:"storeId" yaml:"storeId,omitempty" bson:"storeId"`
	CreatedAt time.Time         `json:"createdAt" yaml:"-" bson:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt,omitempty" yaml:"-" bson:"updatedAt,omitempty"`
}

// FormSummary is a dashboard listing row: the form plus its submission count.
type FormSummary struct {
	Form             `bson:",inline"`
	TotalSubmissions int64 `json:"totalSubmissions" bson:"-"`
}

// Submission is one shopper submission for a form.
type Submission struct {
	ID             string            `json:"id" bson:"_id"`
	FormID         string            `json:"formId" bson:"formId"`
	StoreID        string            `json:"storeId" bson:"storeId"`
	SubmissionData map[string]string `json:"submissionData" bson:"submissionData"`
	SubmittedAt    time.Time         `json:"submittedAt" bson:"submittedAt"`
}

// SubmissionView is a submission with its referenced form populated.
type SubmissionView struct {
	Submission `bson:",inline"`
	Form       *Form `json:"form,omitempty" bson:"-"`
}

// SaveFormRequest is the wire shape the editor sends to persist a draft.
type SaveFormRequest struct {
	FormID   string            `json:"formId"`
	FormName string            `json:"formName"`
	Fields   []FieldDescriptor `json:"fields"`
	StoreID  string            `json:"storeId"`
}

// CloneFields returns a deep copy of fields. Nil stays nil.
func CloneFields(fields []FieldDescriptor) []FieldDescriptor {
	if fields == nil {
		return nil
	}
	out := make([]FieldDescriptor, len(fields))
	copy(out, fields)
	return out
}

// Clone returns a copy of the form that shares no slices with f.
func (f Form) Clone() Form {
	f.Fields = CloneFields(f.Fields)
	return f
}

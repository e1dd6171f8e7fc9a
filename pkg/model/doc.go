// Package model defines the form definition types shared by the draft editor,
// the renderers, the HTTP API, and the document stores. A Form is an ordered
// list of FieldDescriptor values plus its owning store; Submission documents
// reference a form by its formId and carry an open-ended key/value payload.
// Struct tags cover every wire format the module speaks (JSON for the API,
// YAML for definition files, BSON for the MongoDB store) so the same values
// flow end to end without intermediate mapping types.
package model

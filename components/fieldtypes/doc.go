// Package fieldtypes serves the field type catalogue as JSON so an embedded
// editor can build its add-field menu and settings panel without hard-coding
// the registry.
//
// The default handler responds to GET and HEAD requests. An empty query lists
// every type in menu order; q filters case-insensitively with prefix matches
// first, and limit caps the result.
package fieldtypes

package validation

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// SubmitPath is the endpoint the exported document describes.
const SubmitPath = "/api/submit-form"

// Document describes the submit-form request for form as an OpenAPI 3
// document. The submission schema is published under
// components.schemas.SubmissionData.
func (v *Validator) Document(form model.Form) *openapi3.T {
	title := form.FormName
	if title == "" {
		title = "Untitled Form"
	}

	data := v.Schema(form)
	body := openapi3.NewObjectSchema().
		WithProperty("formId", openapi3.NewStringSchema().WithEnum(form.FormID)).
		WithPropertyRef("submissionData", openapi3.NewSchemaRef("#/components/schemas/SubmissionData", data))
	body.Required = []string{"formId", "submissionData"}

	operation := openapi3.NewOperation()
	operation.OperationID = "submitForm"
	operation.Summary = "Submit " + title
	operation.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(body),
	}
	operation.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Form submitted successfully")}),
		openapi3.WithStatus(404, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Form not found")}),
		openapi3.WithStatus(422, &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Submission failed validation")}),
	)

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    &openapi3.Info{Title: title, Version: form.FormID},
		Paths:   openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{"SubmissionData": openapi3.NewSchemaRef("", data)},
		},
	}
	doc.AddOperation(SubmitPath, "POST", operation)
	return doc
}

package api

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

type submitFormRequest struct {
	FormID         string                     `json:"formId"`
	SubmissionData map[string]json.RawMessage `json:"submissionData"`
}

type submissionResponse struct {
	Message    string           `json:"message"`
	Submission model.Submission `json:"submission"`
}

func (s *Server) submitForm(w http.ResponseWriter, r *http.Request) {
	formID, data, err := decodeSubmission(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	form, err := s.store.GetForm(r.Context(), formID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data = s.validator.Sanitize(data)
	if err := s.validator.Validate(form, data); err != nil {
		s.fail(w, r, err)
		return
	}

	submission, err := s.store.CreateSubmission(r.Context(), model.Submission{
		ID:             s.newID(),
		FormID:         form.FormID,
		StoreID:        form.StoreID,
		SubmissionData: data,
		SubmittedAt:    s.now().Truncate(time.Millisecond),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("form submitted",
		zap.String("form_id", form.FormID),
		zap.String("submission_id", submission.ID),
	)
	writeJSON(w, http.StatusOK, submissionResponse{Message: "Form submitted successfully", Submission: submission})
}

// decodeSubmission reads a submission from a JSON body or, for browser posts
// of the preview form, from url-encoded or multipart form values.
func decodeSubmission(r *http.Request) (string, map[string]string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		return decodeFormPost(r)
	}

	var req submitFormRequest
	if err := decodeJSON(r, &req); err != nil {
		return "", nil, err
	}
	formID := strings.TrimSpace(req.FormID)
	if formID == "" || req.SubmissionData == nil {
		return "", nil, badRequest("Form ID and submission data are required.", nil)
	}
	data, err := flattenValues(req.SubmissionData)
	if err != nil {
		return "", nil, err
	}
	return formID, data, nil
}

// decodeFormPost takes formId from the posted values and every other key as
// submission data. Repeated keys are kept as a JSON array.
func decodeFormPost(r *http.Request) (string, map[string]string, error) {
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		err = r.ParseMultipartForm(maxBodyBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return "", nil, err
		}
		return "", nil, badRequest("Invalid form body", err)
	}

	formID := strings.TrimSpace(r.PostForm.Get(render.FormIDKey))
	if formID == "" {
		return "", nil, badRequest("Form ID and submission data are required.", nil)
	}
	data := make(map[string]string, len(r.PostForm))
	for key, values := range r.PostForm {
		if key == render.FormIDKey || len(values) == 0 {
			continue
		}
		if len(values) == 1 {
			data[key] = values[0]
			continue
		}
		encoded, err := json.Marshal(values)
		if err != nil {
			return "", nil, badRequest("Invalid submission data", err)
		}
		data[key] = string(encoded)
	}
	return formID, data, nil
}

// flattenValues turns submitted JSON values into the stored string form.
// Strings are kept, booleans and numbers use their literal text, null is
// empty, and objects or arrays keep their JSON encoding.
func flattenValues(raw map[string]json.RawMessage) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		var decoded any
		if err := json.Unmarshal(value, &decoded); err != nil {
			return nil, badRequest("Invalid submission data", err)
		}
		switch v := decoded.(type) {
		case nil:
			out[key] = ""
		case string:
			out[key] = v
		case bool:
			out[key] = strconv.FormatBool(v)
		case float64:
			out[key] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			out[key] = string(value)
		}
	}
	return out, nil
}

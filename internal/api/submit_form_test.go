package api_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

var (
	formAction  = regexp.MustCompile(`<form[^>]* action="([^"]+)"`)
	hiddenInput = regexp.MustCompile(`<input type="hidden" name="([^"]+)" value="([^"]*)">`)
)

func (h harness) post(t *testing.T, target, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

// previewPost renders the preview and returns its action with the hidden
// values a browser would send back.
func previewPost(t *testing.T, h harness, formID string) (string, url.Values) {
	t.Helper()
	rec := h.do(t, http.MethodGet, "/api/forms/"+formID+"/preview", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("preview status = %d body = %s", rec.Code, rec.Body)
	}
	page := rec.Body.String()
	match := formAction.FindStringSubmatch(page)
	if match == nil {
		t.Fatalf("preview has no form action:\n%s", page)
	}
	values := url.Values{}
	for _, hidden := range hiddenInput.FindAllStringSubmatch(page, -1) {
		values.Add(hidden[1], hidden[2])
	}
	for _, name := range []string{"full_name", "email", "colour", "budget"} {
		if !strings.Contains(page, `name="`+name+`"`) {
			t.Fatalf("preview has no %q input:\n%s", name, page)
		}
	}
	return match[1], values
}

func TestPreviewFormPostsBack(t *testing.T) {
	h := newHarness(t, nil)
	seed(t, h.store, testsupport.SampleForm("form_1", "store-1"))

	action, values := previewPost(t, h, "form_1")
	values.Set("full_name", " <b>Ada</b> ")
	values.Set("email", "ada@example.com")
	values.Set("colour", "Red")
	values.Set("budget", "42")

	rec := h.post(t, action, "application/x-www-form-urlencoded", []byte(values.Encode()))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	got := decode[struct {
		Message    string           `json:"message"`
		Submission model.Submission `json:"submission"`
	}](t, rec)
	if got.Message != "Form submitted successfully" {
		t.Fatalf("message = %q", got.Message)
	}
	want := map[string]string{"full_name": "Ada", "email": "ada@example.com", "colour": "Red", "budget": "42"}
	if diff := cmp.Diff(want, got.Submission.SubmissionData); diff != "" {
		t.Fatalf("submission data mismatch (-want +got):\n%s", diff)
	}
	if got.Submission.FormID != "form_1" || got.Submission.StoreID != "store-1" {
		t.Fatalf("unexpected submission: %+v", got.Submission)
	}
}

func TestPreviewFormPostsMultipart(t *testing.T) {
	h := newHarness(t, nil)
	seed(t, h.store, testsupport.SampleForm("form_1", "store-1"))
	action, values := previewPost(t, h, "form_1")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range map[string]string{
		"formId":    values.Get("formId"),
		"full_name": "Ada",
		"email":     "ada@example.com",
	} {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	rec := h.post(t, action, writer.FormDataContentType(), body.Bytes())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
}

func TestFormPostValidation(t *testing.T) {
	h := newHarness(t, nil)
	seed(t, h.store, testsupport.SampleForm("form_1", "store-1"))
	const urlencoded = "application/x-www-form-urlencoded"

	rec := h.post(t, "/api/submit-form", urlencoded, []byte("full_name=Ada&email=ada%40example.com"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing form id status = %d body = %s", rec.Code, rec.Body)
	}

	rec = h.post(t, "/api/submit-form", urlencoded, []byte("formId=form_1&full_name=Ada&email=nope"))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid email status = %d body = %s", rec.Code, rec.Body)
	}

	rec = h.post(t, "/api/submit-form", urlencoded, []byte("formId=form_9&full_name=Ada&email=ada%40example.com"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown form status = %d body = %s", rec.Code, rec.Body)
	}

	rec = h.post(t, "/api/submit-form", urlencoded, []byte("formId=form_1&full_name=Ada&email=ada%40example.com&tags=a&tags=b"))
	if rec.Code != http.StatusOK {
		t.Fatalf("repeated key status = %d body = %s", rec.Code, rec.Body)
	}
	got := decode[struct {
		Submission model.Submission `json:"submission"`
	}](t, rec)
	if tags := got.Submission.SubmissionData["tags"]; tags != `["a","b"]` {
		t.Fatalf("tags = %q", tags)
	}
}

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	formbuilder "github.com/goliatone/go-formbuilder"
	"github.com/goliatone/go-formbuilder/internal/store"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
)

type saveFormRequest struct {
	FormID   string                   `json:"formId"`
	FormName string                   `json:"formName"`
	Fields   *[]model.FieldDescriptor `json:"fields"`
	StoreID  string                   `json:"storeId"`
}

type formResponse struct {
	Message string     `json:"message"`
	Form    model.Form `json:"form"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) saveForm(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.Header.Get(IdempotencyHeader))
	if key == "" {
		s.createForm(r).write(w, false)
		return
	}
	if rec, ok := s.replays.get(key); ok {
		rec.write(w, true)
		return
	}

	// Concurrent requests with the same key share the first one's outcome.
	value, _, shared := s.flight.Do(key, func() (any, error) {
		if rec, ok := s.replays.get(key); ok {
			return rec, nil
		}
		rec := s.createForm(r)
		if rec.status < http.StatusInternalServerError {
			s.replays.put(key, rec)
		}
		return rec, nil
	})
	value.(recorded).write(w, shared)
}

// createForm handles one save and records the response.
func (s *Server) createForm(r *http.Request) recorded {
	form, err := s.decodeNewForm(r)
	if err == nil {
		form, err = s.store.CreateForm(r.Context(), form)
	}
	if err != nil {
		status, body := s.errorResponse(r, err)
		return record(status, body)
	}
	s.logger.Info("form saved",
		zap.String("form_id", form.FormID),
		zap.String("store_id", form.StoreID),
		zap.Int("fields", len(form.Fields)),
	)
	return record(http.StatusCreated, formResponse{Message: "Form saved successfully", Form: form})
}

func (s *Server) decodeNewForm(r *http.Request) (model.Form, error) {
	var req saveFormRequest
	if err := decodeJSON(r, &req); err != nil {
		return model.Form{}, err
	}
	req.FormID = strings.TrimSpace(req.FormID)
	req.FormName = strings.TrimSpace(req.FormName)
	req.StoreID = strings.TrimSpace(req.StoreID)
	if req.FormID == "" || req.FormName == "" || req.Fields == nil || req.StoreID == "" {
		return model.Form{}, badRequest("Form ID, name, fields, and store ID are required.", nil)
	}
	descriptors, err := s.normalizeFields(*req.Fields)
	if err != nil {
		return model.Form{}, err
	}
	return model.Form{
		FormID:    req.FormID,
		FormName:  req.FormName,
		Fields:    descriptors,
		StoreID:   req.StoreID,
		CreatedAt: s.now(),
	}, nil
}

func (s *Server) normalizeFields(descriptors []model.FieldDescriptor) ([]model.FieldDescriptor, error) {
	out := make([]model.FieldDescriptor, 0, len(descriptors))
	for _, descriptor := range descriptors {
		normalized, err := s.registry.Normalize(descriptor)
		if err != nil {
			return nil, badRequest(err.Error(), err)
		}
		out = append(out, normalized)
	}
	return out, nil
}

func record(status int, payload any) recorded {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(payload)
	return recorded{status: status, body: buf.Bytes()}
}

type updateFormRequest struct {
	FormName string                   `json:"formName"`
	Fields   *[]model.FieldDescriptor `json:"fields"`
}

func (s *Server) updateForm(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formId")
	var req updateFormRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	req.FormName = strings.TrimSpace(req.FormName)
	if req.FormName == "" || req.Fields == nil {
		s.fail(w, r, badRequest("Form name and fields are required.", nil))
		return
	}
	descriptors, err := s.normalizeFields(*req.Fields)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	form, err := s.store.UpdateForm(r.Context(), formID, store.FormUpdate{
		FormName:  req.FormName,
		Fields:    descriptors,
		UpdatedAt: s.now(),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, formResponse{Message: "Form updated successfully", Form: form})
}

func (s *Server) deleteForm(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formId")
	if err := s.store.DeleteForm(r.Context(), formID); err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("form deleted", zap.String("form_id", formID))
	writeJSON(w, http.StatusOK, messageResponse{Message: "Form deleted successfully"})
}

func (s *Server) previewForm(w http.ResponseWriter, r *http.Request) {
	form, err := s.store.GetForm(r.Context(), chi.URLParam(r, "formId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	name := r.URL.Query().Get("renderer")
	if name == "" {
		name = vanilla.PreviewName
	}
	if _, err := s.renderers.Get(name); err != nil {
		s.fail(w, r, &Error{Status: http.StatusNotFound, Message: "Unknown renderer", Err: err})
		return
	}

	out, contentType, err := s.renderers.Render(r.Context(), name, form, formbuilder.PreviewOptions(form))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) formSchema(w http.ResponseWriter, r *http.Request) {
	form, err := s.store.GetForm(r.Context(), chi.URLParam(r, "formId"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.validator.Document(form))
}

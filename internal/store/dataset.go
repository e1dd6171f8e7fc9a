package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// dataset is the in-process representation shared by Memory and File.
// Callers serialise access.
type dataset struct {
	Forms       []model.Form       `json:"forms"`
	Submissions []model.Submission `json:"submissions"`
}

func newDataset() *dataset {
	return &dataset{Forms: []model.Form{}, Submissions: []model.Submission{}}
}

func (d *dataset) formIndex(formID string) int {
	for idx, form := range d.Forms {
		if form.FormID == formID {
			return idx
		}
	}
	return -1
}

func (d *dataset) createForm(form model.Form) (model.Form, error) {
	if d.formIndex(form.FormID) >= 0 {
		return model.Form{}, fmt.Errorf("%w: form %s already exists", ErrConflict, form.FormID)
	}
	form = form.Clone()
	if form.Fields == nil {
		form.Fields = []model.FieldDescriptor{}
	}
	d.Forms = append(d.Forms, form)
	return form.Clone(), nil
}

func (d *dataset) getForm(formID string) (model.Form, error) {
	idx := d.formIndex(formID)
	if idx < 0 {
		return model.Form{}, fmt.Errorf("%w: form %s", ErrNotFound, formID)
	}
	return d.Forms[idx].Clone(), nil
}

func (d *dataset) updateForm(formID string, update FormUpdate) (model.Form, error) {
	idx := d.formIndex(formID)
	if idx < 0 {
		return model.Form{}, fmt.Errorf("%w: form %s", ErrNotFound, formID)
	}
	form := d.Forms[idx]
	form.FormName = update.FormName
	form.Fields = model.CloneFields(update.Fields)
	if form.Fields == nil {
		form.Fields = []model.FieldDescriptor{}
	}
	form.UpdatedAt = update.UpdatedAt
	d.Forms[idx] = form
	return form.Clone(), nil
}

func (d *dataset) deleteForm(formID string) error {
	idx := d.formIndex(formID)
	if idx < 0 {
		return fmt.Errorf("%w: form %s", ErrNotFound, formID)
	}
	d.Forms = append(d.Forms[:idx], d.Forms[idx+1:]...)

	kept := d.Submissions[:0]
	for _, submission := range d.Submissions {
		if submission.FormID != formID {
			kept = append(kept, submission)
		}
	}
	clear(d.Submissions[len(kept):])
	d.Submissions = kept
	return nil
}

func (d *dataset) countForms(storeID string) int64 {
	var count int64
	for _, form := range d.Forms {
		if storeID == "" || form.StoreID == storeID {
			count++
		}
	}
	return count
}

func (d *dataset) listForms(storeID string) []model.FormSummary {
	counts := make(map[string]int64)
	for _, submission := range d.Submissions {
		counts[submission.FormID]++
	}
	out := make([]model.FormSummary, 0, len(d.Forms))
	for _, form := range d.Forms {
		if storeID != "" && form.StoreID != storeID {
			continue
		}
		out = append(out, model.FormSummary{Form: form.Clone(), TotalSubmissions: counts[form.FormID]})
	}
	return out
}

func (d *dataset) createSubmission(submission model.Submission) (model.Submission, error) {
	form, err := d.getForm(submission.FormID)
	if err != nil {
		return model.Submission{}, err
	}
	if submission.StoreID == "" {
		submission.StoreID = form.StoreID
	}
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	submission.SubmissionData = model.CloneData(submission.SubmissionData)
	if submission.SubmissionData == nil {
		submission.SubmissionData = map[string]string{}
	}
	d.Submissions = append(d.Submissions, submission)
	submission.SubmissionData = model.CloneData(submission.SubmissionData)
	return submission, nil
}

func (d *dataset) listSubmissions(storeID string) []model.SubmissionView {
	forms := make(map[string]model.Form, len(d.Forms))
	for _, form := range d.Forms {
		forms[form.FormID] = form
	}
	out := make([]model.SubmissionView, 0, len(d.Submissions))
	for _, submission := range d.Submissions {
		if storeID != "" && submission.StoreID != storeID {
			continue
		}
		view := model.SubmissionView{Submission: submission}
		view.SubmissionData = model.CloneData(submission.SubmissionData)
		if form, ok := forms[submission.FormID]; ok {
			populated := form.Clone()
			view.Form = &populated
		}
		out = append(out, view)
	}
	return out
}

func (d *dataset) countSubmissions(filter SubmissionFilter) int64 {
	var count int64
	for _, submission := range d.Submissions {
		if filter.matches(submission) {
			count++
		}
	}
	return count
}

package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goliatone/go-formbuilder/pkg/draft"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// StoreInfo identifies the store the editor works for.
type StoreInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain"`
}

// ErrNoStore is returned when the store-info endpoint lists no store.
var ErrNoStore = errors.New("gateway: no store information returned")

// StoreInfo fetches the owning store.
func (c *Client) StoreInfo(ctx context.Context) (StoreInfo, error) {
	var resp struct {
		Data []StoreInfo `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/store/info", nil, nil, &resp); err != nil {
		return StoreInfo{}, err
	}
	if len(resp.Data) == 0 || resp.Data[0].ID == "" {
		return StoreInfo{}, ErrNoStore
	}
	return resp.Data[0], nil
}

// ResolveStore looks up the owning store and records its id on d. Saving is
// blocked until this succeeds.
func (c *Client) ResolveStore(ctx context.Context, d *draft.Draft) (StoreInfo, error) {
	info, err := c.StoreInfo(ctx)
	if err != nil {
		return StoreInfo{}, err
	}
	d.SetStoreID(info.ID)
	return info, nil
}

type countResponse struct {
	Count int64 `json:"count"`
}

// TotalForms returns the number of persisted forms.
func (c *Client) TotalForms(ctx context.Context) (int64, error) {
	var resp countResponse
	if err := c.do(ctx, http.MethodGet, "/api/forms/total", nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// SubmissionsToday returns the number of submissions received today.
func (c *Client) SubmissionsToday(ctx context.Context) (int64, error) {
	var resp countResponse
	if err := c.do(ctx, http.MethodGet, "/api/forms/today", nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// Submissions lists the store's submissions with their forms populated.
func (c *Client) Submissions(ctx context.Context) ([]model.SubmissionView, error) {
	var resp []model.SubmissionView
	if err := c.do(ctx, http.MethodGet, "/api/submissions", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// FormDetails lists the store's forms with submission counts.
func (c *Client) FormDetails(ctx context.Context) ([]model.FormSummary, error) {
	var resp []model.FormSummary
	if err := c.do(ctx, http.MethodGet, "/api/forms/details", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteForm removes a form and its submissions.
func (c *Client) DeleteForm(ctx context.Context, formID string) error {
	if formID == "" {
		return fmt.Errorf("gateway: form id is required")
	}
	return c.do(ctx, http.MethodDelete, "/api/forms/"+url.PathEscape(formID), nil, nil, nil)
}

// UpdateForm replaces the name and fields of an existing form.
func (c *Client) UpdateForm(ctx context.Context, formID, formName string, fields []model.FieldDescriptor) (model.Form, error) {
	if formID == "" {
		return model.Form{}, fmt.Errorf("gateway: form id is required")
	}
	if fields == nil {
		fields = []model.FieldDescriptor{}
	}
	body := map[string]any{"formName": formName, "fields": fields}
	var resp saveResponse
	if err := c.do(ctx, http.MethodPut, "/api/forms/"+url.PathEscape(formID), body, nil, &resp); err != nil {
		return model.Form{}, err
	}
	return resp.Form, nil
}

package gateway

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/draft"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// IdempotencyHeader carries the per-save key the API uses to collapse
// retried or duplicated submissions.
const IdempotencyHeader = "Idempotency-Key"

var (
	// ErrSaveInFlight is returned when Save is called while a previous save
	// has not finished.
	ErrSaveInFlight = errors.New("gateway: save already in progress")
	// ErrMissingName is returned for drafts without a form name.
	ErrMissingName = errors.New("gateway: form name is required")
	// ErrMissingStore is returned while the owning store is unresolved.
	ErrMissingStore = errors.New("gateway: store id is not resolved")
)

type inflight struct {
	busy atomic.Bool
}

func (f *inflight) acquire() bool { return f.busy.CompareAndSwap(false, true) }
func (f *inflight) release()      { f.busy.Store(false) }

type saveResponse struct {
	Message string     `json:"message"`
	Form    model.Form `json:"form"`
}

// Save persists d with a fresh form_<unix-millis> id. Only the documented
// descriptor attributes are sent. On success the draft is reset; on failure
// it is left untouched and no retry is attempted.
func (c *Client) Save(ctx context.Context, d *draft.Draft) (model.Form, error) {
	snapshot := d.Snapshot()
	if strings.TrimSpace(snapshot.Name) == "" {
		return model.Form{}, ErrMissingName
	}
	if strings.TrimSpace(snapshot.StoreID) == "" {
		return model.Form{}, ErrMissingStore
	}
	if !c.saving.acquire() {
		return model.Form{}, ErrSaveInFlight
	}
	defer c.saving.release()

	formID := "form_" + strconv.FormatInt(c.now().UnixMilli(), 10)
	header := http.Header{}
	header.Set(IdempotencyHeader, c.newKey())

	var resp saveResponse
	if err := c.do(ctx, http.MethodPost, "/api/save-form", snapshot.Payload(formID), header, &resp); err != nil {
		return model.Form{}, err
	}

	c.logger.Info("form saved", zap.String("form_id", formID), zap.Int("fields", len(snapshot.Fields)))
	d.Reset()
	if resp.Form.FormID == "" {
		resp.Form = model.Form{
			FormID:   formID,
			FormName: snapshot.Name,
			Fields:   snapshot.Descriptors(),
			StoreID:  snapshot.StoreID,
		}
	}
	return resp.Form, nil
}

package api

import (
	"net/http"
	"time"

	"github.com/goliatone/go-formbuilder/internal/shop"
	"github.com/goliatone/go-formbuilder/internal/store"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

type countResponse struct {
	Count int64 `json:"count"`
}

func (s *Server) storeInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.shop.Resolve(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]shop.Info{"data": {info}})
}

// storeID resolves the store whose data the dashboard reads are scoped to.
func (s *Server) storeID(r *http.Request) (string, error) {
	info, err := s.shop.Resolve(r.Context())
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

func (s *Server) totalForms(w http.ResponseWriter, r *http.Request) {
	storeID, err := s.storeID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	count, err := s.store.CountForms(r.Context(), storeID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: count})
}

// todayWindow spans the current calendar day in loc, from midnight up to
// but excluding the next midnight.
func todayWindow(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

func (s *Server) submissionsToday(w http.ResponseWriter, r *http.Request) {
	storeID, err := s.storeID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	from, to := todayWindow(s.now(), s.loc)
	count, err := s.store.CountSubmissions(r.Context(), store.SubmissionFilter{
		StoreID: storeID,
		From:    from,
		To:      to,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: count})
}

func (s *Server) formDetails(w http.ResponseWriter, r *http.Request) {
	storeID, err := s.storeID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	forms, err := s.store.ListForms(r.Context(), storeID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if forms == nil {
		forms = []model.FormSummary{}
	}
	writeJSON(w, http.StatusOK, forms)
}

func (s *Server) listSubmissions(w http.ResponseWriter, r *http.Request) {
	storeID, err := s.storeID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	submissions, err := s.store.ListSubmissions(r.Context(), storeID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if submissions == nil {
		submissions = []model.SubmissionView{}
	}
	writeJSON(w, http.StatusOK, submissions)
}

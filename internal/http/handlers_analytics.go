package http

import (
	"net/http"

	"tally/internal/core"
)

// view returns the cached unfiltered analytics for a user, computing
// and caching it on miss. Filtered requests bypass the cache.
func (s *Server) view(r *http.Request, userID string, filter core.Filter, top int) analyticsView {
	cacheable := filter.IsZero() && top == core.DefaultTopCategories
	if cacheable {
		if v, ok := s.viewCache.Get(userID); ok {
			return v
		}
	}

	txs := filter.Apply(s.ledger.List(r.Context(), userID))
	v := analyticsView{
		Summary:    core.Summarize(txs),
		Categories: core.CategoryBreakdown(txs, top),
		Trend:      core.MonthlyTrend(txs),
	}
	if cacheable {
		s.viewCache.Set(userID, v)
	}
	return v
}

func (s *Server) analyticsRequest(w http.ResponseWriter, r *http.Request, prefix string) (analyticsView, bool) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return analyticsView{}, false
	}
	userID, ok := pathSuffix(r, prefix)
	if !ok {
		writeMessage(w, http.StatusNotFound, "not found")
		return analyticsView{}, false
	}
	filter, err := parseFilter(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return analyticsView{}, false
	}
	return s.view(r, userID, filter, parseTop(r)), true
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if v, ok := s.analyticsRequest(w, r, "/api/summary/"); ok {
		writeJSON(w, http.StatusOK, v.Summary)
	}
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if v, ok := s.analyticsRequest(w, r, "/api/categories/"); ok {
		if v.Categories == nil {
			v.Categories = []core.CategoryTotal{}
		}
		writeJSON(w, http.StatusOK, v.Categories)
	}
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	if v, ok := s.analyticsRequest(w, r, "/api/trend/"); ok {
		if v.Trend == nil {
			v.Trend = []core.MonthFlow{}
		}
		writeJSON(w, http.StatusOK, v.Trend)
	}
}

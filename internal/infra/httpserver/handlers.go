package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dhnext/launchpad/internal/middleware"
)

type complianceCheckRequest struct {
	ConfluencePageURL string `json:"confluencePageUrl"`
	// PageURL is accepted as an alias
	PageURL string `json:"pageUrl"`
}

func (b complianceCheckRequest) url() string {
	if b.ConfluencePageURL != "" {
		return b.ConfluencePageURL
	}
	return b.PageURL
}

type saveLinkRequest struct {
	Link string `json:"link"`
}

// POST /v1/{tenant}/compliance/check
// Body: {"confluencePageUrl": "<url>"}
// Always 200 once the body is valid; the envelope's status tells success from error.
func (r *Router) handleComplianceCheck(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")

	var body complianceCheckRequest
	if err := decodeJSONBody(w, req, &body); err != nil {
		return badRequest("invalid JSON body: " + err.Error())
	}

	pageURL := middleware.SanitizeString(body.url())
	if err := middleware.ValidatePageURL(pageURL); err != nil {
		return validationFailed(err.Error())
	}

	result := r.checker.RunComplianceCheck(req.Context(), tenant, pageURL)
	r.metrics.ObserveCheck(string(r.strategy), string(result.Status))

	writeJSON(w, http.StatusOK, result)
	return nil
}

// POST /v1/{tenant}/confluence-link
// Body: {"link": "<anything>"}
func (r *Router) handleSaveLink(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")

	var body saveLinkRequest
	if err := decodeJSONBody(w, req, &body); err != nil {
		return badRequest("invalid JSON body: " + err.Error())
	}

	if err := r.workspace.SaveLink(req.Context(), tenant, middleware.SanitizeString(body.Link)); err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	return nil
}

// GET /v1/{tenant}/initial-data
func (r *Router) handleInitialData(w http.ResponseWriter, req *http.Request) error {
	data, err := r.workspace.InitialData(req.Context(), chi.URLParam(req, "tenant"))
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, data)
	return nil
}

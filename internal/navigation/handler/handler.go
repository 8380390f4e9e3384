package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mobiq/internal/navigation"
	dErrors "mobiq/pkg/domain-errors"
	"mobiq/pkg/platform/httputil"
)

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/nav/breadcrumbs", h.HandleBreadcrumbs)
}

// BreadcrumbsResponse wraps the trail so an empty one serializes as [].
type BreadcrumbsResponse struct {
	Crumbs []navigation.Crumb `json:"crumbs"`
}

func (h *Handler) HandleBreadcrumbs(w http.ResponseWriter, r *http.Request) {
	pathname := r.URL.Query().Get("path")
	if pathname == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "path query parameter is required"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BreadcrumbsResponse{Crumbs: navigation.Breadcrumbs(pathname)})
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mobiq/internal/impersonation"
	id "mobiq/pkg/domain"
	dErrors "mobiq/pkg/domain-errors"
	"mobiq/pkg/platform/httputil"
	authmw "mobiq/pkg/platform/middleware/auth"
	request "mobiq/pkg/platform/middleware/request"
)

type Handler struct {
	manager *impersonation.Manager
	logger  *slog.Logger
}

func New(manager *impersonation.Manager, logger *slog.Logger) *Handler {
	return &Handler{manager: manager, logger: logger}
}

// Register mounts the state read/clear routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/me/impersonation", h.HandleCurrent)
	r.Delete("/me/impersonation", h.HandleStop)
}

// RegisterAdmin mounts the start route, which requires the admin role. The
// role check gates who may start impersonating; the impersonated identity
// itself never grants or removes privilege.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/me/impersonation", h.HandleStart)
}

// StateResponse describes the session's impersonation state.
type StateResponse struct {
	Impersonating bool                            `json:"impersonating"`
	User          *impersonation.ImpersonatedUser `json:"user,omitempty"`
}

func (h *Handler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	principal := authmw.GetPrincipal(r.Context())
	if principal == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	user, ok := h.manager.Current(principal.SessionID)
	httputil.WriteJSON(w, http.StatusOK, StateResponse{Impersonating: ok, User: user})
}

// StartRequest begins impersonating a user for display purposes.
type StartRequest struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

func (req *StartRequest) Validate() error {
	if req.UserID == "" {
		return dErrors.New(dErrors.CodeValidation, "user_id is required")
	}
	if !id.Role(req.Role).Valid() {
		return dErrors.New(dErrors.CodeValidation, "unknown role")
	}
	return nil
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	principal := authmw.GetPrincipal(ctx)
	if principal == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[StartRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	userID, err := id.ParseUserID(req.UserID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	user := impersonation.ImpersonatedUser{
		ID:          userID,
		DisplayName: req.DisplayName,
		Role:        id.Role(req.Role),
	}
	h.manager.Start(principal.SessionID, user)

	h.logger.InfoContext(ctx, "impersonation started",
		"admin_id", principal.UserID.String(),
		"impersonated_id", userID.String(),
		"request_id", requestID,
	)

	httputil.WriteJSON(w, http.StatusOK, StateResponse{Impersonating: true, User: &user})
}

func (h *Handler) HandleStop(w http.ResponseWriter, r *http.Request) {
	principal := authmw.GetPrincipal(r.Context())
	if principal == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	h.manager.Stop(principal.SessionID)
	httputil.WriteJSON(w, http.StatusOK, StateResponse{Impersonating: false})
}

package balance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ymansouri/splitwise/pkg/middleware"
	"github.com/ymansouri/splitwise/pkg/response"
)

// Handler handles HTTP requests for balance queries
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/user", h.GetUserBalances)
	r.Get("/group/{groupId}", h.GetGroupBalances)

	return r
}

// GetUserBalances handles GET /balances/user
// @Summary      Get balances across all groups
// @Description  Compute the requesting user's simplified debts merged across every group they belong to
// @Tags         balances
// @Produce      json
// @Success      200 {object} response.APIResponse{data=UserBalancesResponse}
// @Router       /balances/user [get]
func (h *Handler) GetUserBalances(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	result, err := h.service.GetUserBalances(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to compute balances")
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// GetGroupBalances handles GET /balances/group/{groupId}
// @Summary      Get balances for a group
// @Description  Compute net balances and simplified debts for one group
// @Tags         balances
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupBalancesResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /balances/group/{groupId} [get]
func (h *Handler) GetGroupBalances(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	result, err := h.service.GetGroupBalances(r.Context(), userID, groupID)
	if err != nil {
		switch {
		case errors.Is(err, ErrAccessDenied):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrGroupNotFound):
			response.NotFound(w, err.Error())
		default:
			response.InternalError(w, "Failed to compute balances")
		}
		return
	}

	response.JSON(w, http.StatusOK, result)
}

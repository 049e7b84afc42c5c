package settlement

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ymansouri/splitwise/pkg/middleware"
	"github.com/ymansouri/splitwise/pkg/response"
	"github.com/ymansouri/splitwise/pkg/validate"
)

// Handler handles HTTP requests for settlement operations
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/group/{groupId}", h.ListByGroup)

	return r
}

// Create handles POST /settlements
// @Summary      Record a settlement
// @Description  Record a payment made to another group member; the settlement completes immediately
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Param        request body CreateSettlementRequest true "Settlement details"
// @Success      201 {object} response.APIResponse{data=SettlementResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /settlements [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrSelfSettlement), errors.Is(err, ErrPayeeNotInGroup):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrAccessDenied):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to record settlement")
		}
		return
	}

	response.JSON(w, http.StatusCreated, created.ToResponse())
}

// ListByGroup handles GET /settlements/group/{groupId}
// @Summary      List a group's settlements
// @Tags         settlements
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]SettlementResponse}
// @Failure      403 {object} response.APIResponse
// @Router       /settlements/group/{groupId} [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
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

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	settlements, total, err := h.service.ListByGroup(r.Context(), userID, groupID, page, perPage)
	if err != nil {
		if errors.Is(err, ErrAccessDenied) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list settlements")
		return
	}

	response.JSONWithMeta(w, http.StatusOK, settlements, response.NewMeta(page, perPage, total))
}

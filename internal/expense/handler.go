package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ymansouri/splitwise/internal/expense/split"
	"github.com/ymansouri/splitwise/pkg/middleware"
	"github.com/ymansouri/splitwise/pkg/response"
	"github.com/ymansouri/splitwise/pkg/validate"
)

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/group/{groupId}", h.ListByGroup)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /expenses
// @Summary      Create an expense
// @Description  Record an expense split among group members using the EQUAL, PERCENTAGE or EXACT strategy
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body CreateExpenseRequest true "Expense details"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateExpenseRequest
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
		case errors.Is(err, split.ErrInvalidSplitType), errors.Is(err, split.ErrInvalidSplit):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrAccessDenied):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to create expense")
		}
		return
	}

	resp := created.Expense.ToResponse()
	for _, s := range created.Splits {
		resp.Splits = append(resp.Splits, s.ToResponse())
	}

	response.JSON(w, http.StatusCreated, resp)
}

// ListByGroup handles GET /expenses/group/{groupId}
// @Summary      List a group's expenses
// @Tags         expenses
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Failure      403 {object} response.APIResponse
// @Router       /expenses/group/{groupId} [get]
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

	expenses, total, err := h.service.ListByGroup(r.Context(), userID, groupID, page, perPage)
	if err != nil {
		if errors.Is(err, ErrAccessDenied) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list expenses")
		return
	}

	response.JSONWithMeta(w, http.StatusOK, expenses, response.NewMeta(page, perPage, total))
}

// Delete handles DELETE /expenses/{id}
// @Summary      Delete an expense
// @Description  Delete an expense and all its splits; only the payer can do this
// @Tags         expenses
// @Produce      json
// @Param        id path int true "Expense ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, ErrExpenseNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotPayer), errors.Is(err, ErrAccessDenied):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to delete expense")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully"})
}

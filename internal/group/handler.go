package group

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

// Handler handles HTTP requests for group operations
type Handler struct {
	service *Service
}

// NewHandler creates a new group handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for group endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{groupId}", h.GetDetails)
	r.Delete("/{groupId}", h.Delete)

	r.Post("/{groupId}/members", h.AddMember)
	r.Delete("/{groupId}/members/{memberId}", h.RemoveMember)

	return r
}

// List handles GET /groups
// @Summary      List the current user's groups
// @Tags         groups
// @Produce      json
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]GroupResponse}
// @Router       /groups [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	groups, total, err := h.service.ListForUser(r.Context(), userID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list groups")
		return
	}

	response.JSONWithMeta(w, http.StatusOK, groups, response.NewMeta(page, perPage, total))
}

// Create handles POST /groups
// @Summary      Create a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body CreateGroupRequest true "Group creation request"
// @Success      201 {object} response.APIResponse{data=GroupResponse}
// @Router       /groups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	group, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		response.InternalError(w, "Failed to create group")
		return
	}

	response.JSON(w, http.StatusCreated, group.ToResponse())
}

// GetDetails handles GET /groups/{groupId}
// @Summary      Get group details
// @Tags         groups
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupId} [get]
func (h *Handler) GetDetails(w http.ResponseWriter, r *http.Request) {
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

	details, err := h.service.GetDetails(r.Context(), userID, groupID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, details)
}

// AddMember handles POST /groups/{groupId}/members
// @Summary      Add a member by email
// @Description  Add a registered user to the group, or create a guest account when the email is unknown
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        request body AddMemberRequest true "Member details"
// @Success      201 {object} response.APIResponse{data=MemberResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /groups/{groupId}/members [post]
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
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

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	member, err := h.service.AddMember(r.Context(), userID, groupID, &req)
	if err != nil {
		if errors.Is(err, ErrMemberAlreadyExists) {
			response.Conflict(w, err.Error())
			return
		}
		respondServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, member.ToResponse())
}

// Delete handles DELETE /groups/{groupId}
// @Summary      Delete a group
// @Description  Delete a group and all its expenses, splits and settlements; creator only
// @Tags         groups
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupId} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.Delete(r.Context(), userID, groupID); err != nil {
		respondServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Group deleted successfully"})
}

// RemoveMember handles DELETE /groups/{groupId}/members/{memberId}
// @Summary      Remove a member or leave the group
// @Description  Remove a member with no outstanding balance; members can remove themselves to leave
// @Tags         groups
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        memberId path int true "Member user ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupId}/members/{memberId} [delete]
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
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
	memberID, err := strconv.ParseInt(chi.URLParam(r, "memberId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid member ID")
		return
	}

	if err := h.service.RemoveMember(r.Context(), userID, groupID, memberID); err != nil {
		if errors.Is(err, ErrUnsettledBalance) || errors.Is(err, ErrLastMember) || errors.Is(err, ErrCreatorCannotLeave) {
			response.BadRequest(w, err.Error())
			return
		}
		respondServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Member removed successfully"})
}

// respondServiceError maps common service errors to HTTP responses
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrGroupNotFound), errors.Is(err, ErrMemberNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrAccessDenied), errors.Is(err, ErrNotCreator):
		response.Forbidden(w, err.Error())
	default:
		response.InternalError(w, "Something went wrong")
	}
}

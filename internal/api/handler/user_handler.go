package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/omnicorp/fieldops-api/internal/core/domain"
	"github.com/omnicorp/fieldops-api/internal/core/ports"
)

// UserHandler handles staff management requests (admin only).
type UserHandler struct {
	identity ports.IdentityService
}

func NewUserHandler(identity ports.IdentityService) *UserHandler {
	return &UserHandler{identity: identity}
}

type updateUserRequest struct {
	Name       string `json:"name"`
	Role       string `json:"role" validate:"omitempty,oneof=ADMIN WORKER AUDITOR"`
	AvatarURL  string `json:"avatar_url"`
	Department string `json:"department"`
	Secret     string `json:"secret"`
}

type listUsersResponse struct {
	Data []*domain.User `json:"data"`
}

// List returns all registered users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.identity.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, listUsersResponse{Data: users})
}

// Update merges the provided fields into the matching user record. An empty
// secret leaves the existing credential untouched.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to merge"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.identity.UpdateProfile(c.Request().Context(), c.Param("id"), ports.ProfileUpdate{
		Name:       req.Name,
		Role:       domain.Role(req.Role),
		AvatarURL:  req.AvatarURL,
		Department: req.Department,
		Secret:     req.Secret,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// Delete removes a user record. Deleting the authenticated account is
// rejected; the store itself places no such restriction.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      204  "user removed"
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if id == userID {
		return echo.NewHTTPError(http.StatusConflict, "cannot delete the active session account")
	}

	if err := h.identity.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

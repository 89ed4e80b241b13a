package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Themiya19/Quotation-System-sub001/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type createUserRequest struct {
	Email        string `json:"email"         validate:"required,email"`
	Name         string `json:"name"          validate:"required"`
	Password     string `json:"password"      validate:"required,min=8"`
	Phone        string `json:"phone"         validate:"omitempty"`
	Category     string `json:"category"      validate:"required,oneof=internal external"`
	Role         string `json:"role"          validate:"omitempty"`
	Department   string `json:"department"    validate:"omitempty"`
	CompanyID    string `json:"company_id"    validate:"omitempty"`
	ExternalRole string `json:"external_role" validate:"omitempty"`
}

type updateUserRequest struct {
	Name         string `json:"name"          validate:"omitempty"`
	Password     string `json:"password"      validate:"omitempty,min=8"`
	Phone        string `json:"phone"         validate:"omitempty"`
	Role         string `json:"role"          validate:"omitempty"`
	Department   string `json:"department"    validate:"omitempty"`
	CompanyID    string `json:"company_id"    validate:"omitempty"`
	ExternalRole string `json:"external_role" validate:"omitempty"`
}

// Create registers a new account.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Create(c.Request().Context(), ports.CreateUserInput{
		Email:        req.Email,
		Name:         req.Name,
		Password:     req.Password,
		Phone:        req.Phone,
		Category:     req.Category,
		Role:         req.Role,
		Department:   req.Department,
		CompanyID:    req.CompanyID,
		ExternalRole: req.ExternalRole,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// List returns every account.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns one account by email.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        email  path      string  true  "Account email"
// @Success      200    {object}  domain.User
// @Failure      404    {object}  map[string]string
// @Router       /v1/users/{email} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update applies a partial update. Role changes take effect on live sessions
// at the next drift scan.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        email  path      string             true  "Account email"
// @Param        body   body      updateUserRequest  true  "Fields to change"
// @Success      200    {object}  domain.User
// @Failure      404    {object}  map[string]string
// @Router       /v1/users/{email} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Update(c.Request().Context(), ports.UpdateUserInput{
		Email:        c.Param("email"),
		Name:         req.Name,
		Password:     req.Password,
		Phone:        req.Phone,
		Role:         req.Role,
		Department:   req.Department,
		CompanyID:    req.CompanyID,
		ExternalRole: req.ExternalRole,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes an account. Live sessions for the account are invalidated
// by the next drift scan.
//
// @Summary      Delete a user
// @Tags         users
// @Param        email  path  string  true  "Account email"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{email} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("email")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

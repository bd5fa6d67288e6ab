package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userdir/user-service/internal/api/response"
	"github.com/userdir/user-service/internal/core/domain"
	"github.com/userdir/user-service/internal/core/ports"
)

// AdminHandler serves the record routes of one admin namespace. The router
// mounts one instance for Admin under /admin and one for SuperAdmin under
// /super-admin.
type AdminHandler struct {
	directory ports.DirectoryService
	role      string
	label     string
}

func NewAdminHandler(directory ports.DirectoryService, role string) *AdminHandler {
	label := "Admin"
	if role == domain.RoleSuperAdmin {
		label = "Super Admin"
	}
	return &AdminHandler{directory: directory, role: role, label: label}
}

// List returns the admins of this namespace.
//
// @Summary      List admins
// @Tags         admins
// @Produce      json
// @Param        user  header    string  false  "Forwarded identity JSON"
// @Success      200   {object}  response.Envelope{data=[]domain.Admin}
// @Failure      403   {object}  response.Envelope
// @Router       /admin [get]
// @Router       /super-admin [get]
func (h *AdminHandler) List(c echo.Context) error {
	admins, err := h.directory.ListAdmins(requestContext(c), h.role)
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, admins, h.label+"s retrieved successfully")
}

// Get returns one admin of this namespace.
//
// @Summary      Get admin
// @Tags         admins
// @Produce      json
// @Param        adminId  path      string  true   "Admin ID"
// @Param        user     header    string  false  "Forwarded identity JSON"
// @Success      200      {object}  response.Envelope{data=domain.Admin}
// @Failure      403      {object}  response.Envelope
// @Failure      404      {object}  response.Envelope
// @Router       /admin/{adminId} [get]
// @Router       /super-admin/{adminId} [get]
func (h *AdminHandler) Get(c echo.Context) error {
	admin, err := h.directory.GetAdmin(requestContext(c), h.role, c.Param("adminId"))
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, admin, h.label+" retrieved successfully")
}

// Create adds an admin to this namespace.
//
// @Summary      Create admin
// @Tags         admins
// @Accept       json
// @Produce      json
// @Param        user  header    string              false  "Forwarded identity JSON"
// @Param        body  body      createAdminRequest  true   "Admin details"
// @Success      201   {object}  response.Envelope{data=domain.Admin}
// @Failure      400   {object}  response.Envelope
// @Failure      403   {object}  response.Envelope
// @Failure      409   {object}  response.Envelope
// @Router       /admin [post]
// @Router       /super-admin [post]
func (h *AdminHandler) Create(c echo.Context) error {
	var req createAdminRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	admin, err := h.directory.CreateAdmin(requestContext(c), h.role, ports.CreateAdminInput{
		Name:     req.AdminName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusCreated, admin, h.label+" created successfully")
}

// Update changes an admin's name or email.
//
// @Summary      Update admin
// @Tags         admins
// @Accept       json
// @Produce      json
// @Param        adminId  path      string              true   "Admin ID"
// @Param        user     header    string              false  "Forwarded identity JSON"
// @Param        body     body      updateAdminRequest  true   "Fields to change"
// @Success      200      {object}  response.Envelope{data=domain.Admin}
// @Failure      400      {object}  response.Envelope
// @Failure      404      {object}  response.Envelope
// @Failure      409      {object}  response.Envelope
// @Router       /admin/{adminId} [patch]
// @Router       /super-admin/{adminId} [patch]
func (h *AdminHandler) Update(c echo.Context) error {
	var req updateAdminRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	admin, err := h.directory.UpdateAdmin(requestContext(c), h.role, c.Param("adminId"), ports.UpdateAdminInput{
		Name:  req.AdminName,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, admin, h.label+" updated successfully")
}

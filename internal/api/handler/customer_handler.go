package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userdir/user-service/internal/api/response"
	"github.com/userdir/user-service/internal/core/ports"
)

type CustomerHandler struct {
	directory ports.DirectoryService
}

func NewCustomerHandler(directory ports.DirectoryService) *CustomerHandler {
	return &CustomerHandler{directory: directory}
}

// Create registers a new customer.
//
// @Summary      Register a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      createCustomerRequest  true  "Customer details"
// @Success      201   {object}  response.Envelope{data=domain.Customer}
// @Failure      400   {object}  response.Envelope
// @Failure      409   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /customers [post]
// @Router       /auth/customers/register [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	var req createCustomerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	customer, err := h.directory.CreateCustomer(requestContext(c), ports.CreateCustomerInput{
		Name:        req.CustomerName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, customer, "Customer created successfully")
}

// List returns every customer.
//
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Param        user  header    string  false  "Forwarded identity JSON"
// @Success      200   {object}  response.Envelope{data=[]domain.Customer}
// @Failure      403   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.directory.ListCustomers(requestContext(c))
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, customers, "Customers retrieved successfully")
}

// Get returns one customer. Customers may only read their own record.
//
// @Summary      Get customer
// @Tags         customers
// @Produce      json
// @Param        customerId  path      string  true   "Customer ID"
// @Param        user        header    string  false  "Forwarded identity JSON"
// @Success      200         {object}  response.Envelope{data=domain.Customer}
// @Failure      403         {object}  response.Envelope
// @Failure      404         {object}  response.Envelope
// @Router       /customers/{customerId} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	customer, err := h.directory.GetCustomer(requestContext(c), c.Param("customerId"))
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, customer, "Customer retrieved successfully")
}

// Update changes a customer's name, email or phone number.
//
// @Summary      Update customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        customerId  path      string                 true   "Customer ID"
// @Param        user        header    string                 false  "Forwarded identity JSON"
// @Param        body        body      updateCustomerRequest  true   "Fields to change"
// @Success      200         {object}  response.Envelope{data=domain.Customer}
// @Failure      400         {object}  response.Envelope
// @Failure      403         {object}  response.Envelope
// @Failure      404         {object}  response.Envelope
// @Failure      409         {object}  response.Envelope
// @Router       /customers/{customerId} [patch]
func (h *CustomerHandler) Update(c echo.Context) error {
	var req updateCustomerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	customer, err := h.directory.UpdateCustomer(requestContext(c), c.Param("customerId"), ports.UpdateCustomerInput{
		Name:        req.CustomerName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, customer, "Customer updated successfully")
}

// ListAddresses returns the addresses of a customer.
//
// @Summary      List customer addresses
// @Tags         customers
// @Produce      json
// @Param        customerId  path      string  true   "Customer ID"
// @Param        user        header    string  false  "Forwarded identity JSON"
// @Success      200         {object}  response.Envelope{data=[]domain.Address}
// @Failure      403         {object}  response.Envelope
// @Router       /customers/{customerId}/address [get]
func (h *CustomerHandler) ListAddresses(c echo.Context) error {
	addresses, err := h.directory.ListAddresses(requestContext(c), c.Param("customerId"))
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, addresses, "Addresses retrieved successfully")
}

// CreateAddress adds an address to a customer.
//
// @Summary      Create customer address
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        customerId  path      string                true   "Customer ID"
// @Param        user        header    string                false  "Forwarded identity JSON"
// @Param        body        body      createAddressRequest  true   "Address"
// @Success      201         {object}  response.Envelope{data=domain.Address}
// @Failure      400         {object}  response.Envelope
// @Failure      403         {object}  response.Envelope
// @Failure      404         {object}  response.Envelope
// @Router       /customers/{customerId}/address [post]
func (h *CustomerHandler) CreateAddress(c echo.Context) error {
	var req createAddressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	address, err := h.directory.CreateAddress(requestContext(c), c.Param("customerId"), ports.CreateAddressInput{
		AddressNo:    req.AddressNo,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		ZipCode:      req.ZipCode,
	})
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusCreated, address, "Address created successfully")
}

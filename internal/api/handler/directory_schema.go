package handler

type createCustomerRequest struct {
	CustomerName string `json:"customerName" validate:"required"`
	Email        string `json:"email"        validate:"required,email"`
	Password     string `json:"password"     validate:"required"`
	PhoneNumber  string `json:"phoneNumber"  validate:"required"`
}

type updateCustomerRequest struct {
	CustomerName string `json:"customerName"`
	Email        string `json:"email"       validate:"omitempty,email"`
	PhoneNumber  string `json:"phoneNumber"`
}

type createAddressRequest struct {
	AddressNo    string `json:"addressNo"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"         validate:"required"`
	ZipCode      string `json:"zipCode"      validate:"required"`
}

type createAdminRequest struct {
	AdminName string `json:"adminName" validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required"`
}

type updateAdminRequest struct {
	AdminName string `json:"adminName"`
	Email     string `json:"email"     validate:"omitempty,email"`
}

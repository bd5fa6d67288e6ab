package domain

import "time"

// Role strings carried by identities and admin records.
const (
	RoleCustomer   = "Customer"
	RoleAdmin      = "Admin"
	RoleSuperAdmin = "SuperAdmin"
)

// PrincipalKind identifies which directory namespace a principal lives in.
// Email uniqueness is enforced per kind, not across kinds.
type PrincipalKind string

const (
	KindCustomer PrincipalKind = "customer"
	KindAdmin    PrincipalKind = "admin"
)

// Label is the capitalised name used in response messages.
func (k PrincipalKind) Label() string {
	switch k {
	case KindCustomer:
		return "Customer"
	case KindAdmin:
		return "Admin"
	default:
		return "User"
	}
}

// Customer is a self-registered end user.
type Customer struct {
	ID           string    `json:"customerId"   bson:"_id"           db:"customer_id"`
	Name         string    `json:"customerName" bson:"customer_name" db:"customer_name"`
	Email        string    `json:"email"        bson:"email"         db:"email"`
	PhoneNumber  string    `json:"phoneNumber"  bson:"phone_number"  db:"phone_number"`
	PasswordHash string    `json:"-"            bson:"password_hash" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt"    bson:"created_at"    db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt"    bson:"updated_at"    db:"updated_at"`
}

// Principal returns the kind-agnostic view used by the auth flows.
func (c *Customer) Principal() *Principal {
	return &Principal{
		Kind:         KindCustomer,
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		PhoneNumber:  c.PhoneNumber,
		PasswordHash: c.PasswordHash,
		Role:         RoleCustomer,
	}
}

// Admin is a back-office operator. SuperAdmin is an Admin with Role set accordingly.
type Admin struct {
	ID           string    `json:"adminId"   bson:"_id"           db:"admin_id"`
	Name         string    `json:"adminName" bson:"admin_name"    db:"admin_name"`
	Email        string    `json:"email"     bson:"email"         db:"email"`
	PasswordHash string    `json:"-"         bson:"password_hash" db:"password_hash"`
	Role         string    `json:"adminRole" bson:"admin_role"    db:"admin_role"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"    db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"    db:"updated_at"`
}

func (a *Admin) Principal() *Principal {
	return &Principal{
		Kind:         KindAdmin,
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         a.Role,
	}
}

// Address belongs to a customer.
type Address struct {
	ID           string    `json:"addressId"    bson:"_id"           db:"address_id"`
	CustomerID   string    `json:"customerId"   bson:"customer_id"   db:"customer_id"`
	AddressNo    string    `json:"addressNo"    bson:"address_no"    db:"address_no"`
	AddressLine1 string    `json:"addressLine1" bson:"address_line1" db:"address_line1"`
	AddressLine2 string    `json:"addressLine2" bson:"address_line2" db:"address_line2"`
	City         string    `json:"city"         bson:"city"          db:"city"`
	ZipCode      string    `json:"zipCode"      bson:"zip_code"      db:"zip_code"`
	CreatedAt    time.Time `json:"createdAt"    bson:"created_at"    db:"created_at"`
}

// Principal is the authenticable view shared by customers and admins.
type Principal struct {
	Kind         PrincipalKind
	ID           string
	Name         string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Role         string
}

// Owner returns the tagged reference stored on OTP rows.
func (p *Principal) Owner() OwnerRef {
	return OwnerRef{Kind: p.Kind, ID: p.ID}
}

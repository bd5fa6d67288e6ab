package domain

import "time"

// OwnerRef points at the principal an OTP was issued to. The kind tag keeps a
// customer and an admin sharing an identifier from colliding.
type OwnerRef struct {
	Kind PrincipalKind
	ID   string
}

// OneTimePasscode is a short numeric code proving control of an email address.
// It is deleted on successful verification and otherwise left for the reaper.
type OneTimePasscode struct {
	ID        string        `json:"otpId"        bson:"_id"        db:"otp_id"`
	Code      string        `json:"otpCode"      bson:"otp_code"   db:"otp_code"`
	OwnerKind PrincipalKind `json:"otpUserKind"  bson:"owner_kind" db:"owner_kind"`
	OwnerID   string        `json:"otpUserId"    bson:"owner_id"   db:"owner_id"`
	ExpiresAt time.Time     `json:"expiresAt"    bson:"expires_at" db:"expires_at"`
	CreatedAt time.Time     `json:"createdAt"    bson:"created_at" db:"created_at"`
}

func (o *OneTimePasscode) Owner() OwnerRef {
	return OwnerRef{Kind: o.OwnerKind, ID: o.OwnerID}
}

// IsExpired reports whether now is strictly past the expiry instant.
func (o *OneTimePasscode) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

package adminusers

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminUser is one document of the admin_user collection. Password holds the
// AES-encrypted credential and never serializes into responses.
type AdminUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"`
	Phone     string             `bson:"phone" json:"phone"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// CreateInput is the declared schema of POST /adminUsers.
type CreateInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
}

func (in CreateInput) fields() map[string]interface{} {
	return map[string]interface{}{
		"firstName": in.FirstName,
		"lastName":  in.LastName,
		"email":     in.Email,
		"phone":     in.Phone,
	}
}

// UpdateInput is the declared schema of PATCH /adminUsers/{adminUserId}.
// Email and phone are immutable once created.
type UpdateInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (in UpdateInput) fields() map[string]interface{} {
	return map[string]interface{}{
		"firstName": in.FirstName,
		"lastName":  in.LastName,
		"email":     in.Email,
		"phone":     in.Phone,
	}
}

func (in UpdateInput) setFields() map[string]interface{} {
	set := map[string]interface{}{}
	if in.FirstName != "" {
		set["firstName"] = in.FirstName
	}
	if in.LastName != "" {
		set["lastName"] = in.LastName
	}
	return set
}

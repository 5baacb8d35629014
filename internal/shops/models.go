package shops

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultStatus is applied on create; a shop opens through a later update.
const DefaultStatus = "closed"

// Location pins a shop on the neighbourhood map.
type Location struct {
	Address   string  `bson:"address,omitempty" json:"address,omitempty"`
	Latitude  float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
}

// OpeningHours are stored as "HHMM" strings, e.g. {"0800", "2200"}.
type OpeningHours struct {
	Opening string `bson:"opening,omitempty" json:"opening,omitempty"`
	Closing string `bson:"closing,omitempty" json:"closing,omitempty"`
}

// Shop is one document of the shops collection.
type Shop struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`
	Status       string             `bson:"status" json:"status"`
	Owner        string             `bson:"owner,omitempty" json:"owner,omitempty"`
	Contact      string             `bson:"contact,omitempty" json:"contact,omitempty"`
	Images       []string           `bson:"images,omitempty" json:"images,omitempty"`
	Location     *Location          `bson:"location,omitempty" json:"location,omitempty"`
	OpeningHours *OpeningHours      `bson:"openingHours,omitempty" json:"openingHours,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// CreateInput is the declared schema of POST /shops.
type CreateInput struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Category     string        `json:"category"`
	Status       string        `json:"status"`
	Owner        string        `json:"owner"`
	Contact      string        `json:"contact"`
	Images       []string      `json:"images"`
	Location     *Location     `json:"location"`
	OpeningHours *OpeningHours `json:"openingHours"`
}

// fields exposes the input to the declarative validator.
func (in CreateInput) fields() map[string]interface{} {
	return map[string]interface{}{
		"name":        in.Name,
		"description": in.Description,
	}
}

func (in CreateInput) toShop(now time.Time) Shop {
	status := in.Status
	if status == "" {
		status = DefaultStatus
	}
	return Shop{
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		Status:       status,
		Owner:        in.Owner,
		Contact:      in.Contact,
		Images:       in.Images,
		Location:     in.Location,
		OpeningHours: in.OpeningHours,
		CreatedAt:    now,
	}
}

// UpdateInput is the declared schema of PATCH /shops/{shopId}. Zero-valued
// fields are left untouched.
type UpdateInput struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Category     string        `json:"category"`
	Status       string        `json:"status"`
	Owner        string        `json:"owner"`
	Contact      string        `json:"contact"`
	Images       []string      `json:"images"`
	Location     *Location     `json:"location"`
	OpeningHours *OpeningHours `json:"openingHours"`
}

// setFields builds the patch of provided fields only.
func (in UpdateInput) setFields() map[string]interface{} {
	set := map[string]interface{}{}
	if in.Name != "" {
		set["name"] = in.Name
	}
	if in.Description != "" {
		set["description"] = in.Description
	}
	if in.Category != "" {
		set["category"] = in.Category
	}
	if in.Status != "" {
		set["status"] = in.Status
	}
	if in.Owner != "" {
		set["owner"] = in.Owner
	}
	if in.Contact != "" {
		set["contact"] = in.Contact
	}
	if in.Images != nil {
		set["images"] = in.Images
	}
	if in.Location != nil {
		set["location"] = in.Location
	}
	if in.OpeningHours != nil {
		set["openingHours"] = in.OpeningHours
	}
	return set
}

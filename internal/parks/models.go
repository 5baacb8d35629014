package parks

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location pins a park on the neighbourhood map.
type Location struct {
	Address   string  `bson:"address,omitempty" json:"address,omitempty"`
	Latitude  float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
}

// Park is one document of the parks collection. Condition is the free-form
// upkeep grade the council assigns ("good", "needs maintenance", ...).
type Park struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Condition     string             `bson:"condition" json:"condition"`
	LastInspected string             `bson:"lastInspected" json:"lastInspected"`
	Images        []string           `bson:"images" json:"images"`
	Notes         string             `bson:"notes" json:"notes"`
	Location      *Location          `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// CreateInput is the declared schema of POST /parks. Every field is required.
type CreateInput struct {
	Name          string    `json:"name"`
	Condition     string    `json:"condition"`
	LastInspected string    `json:"lastInspected"`
	Images        []string  `json:"images"`
	Notes         string    `json:"notes"`
	Location      *Location `json:"location"`
}

func (in CreateInput) fields() map[string]interface{} {
	fields := map[string]interface{}{
		"name":          in.Name,
		"condition":     in.Condition,
		"lastInspected": in.LastInspected,
		"notes":         in.Notes,
	}
	if in.Images != nil {
		fields["images"] = in.Images
	}
	if in.Location != nil {
		fields["location"] = in.Location
	}
	return fields
}

func (in CreateInput) toPark(now time.Time) Park {
	return Park{
		Name:          in.Name,
		Condition:     in.Condition,
		LastInspected: in.LastInspected,
		Images:        in.Images,
		Notes:         in.Notes,
		Location:      in.Location,
		CreatedAt:     now,
	}
}

// UpdateInput is the declared schema of PATCH /parks/{parkId}. Zero-valued
// fields are left untouched.
type UpdateInput struct {
	Name          string    `json:"name"`
	Condition     string    `json:"condition"`
	LastInspected string    `json:"lastInspected"`
	Images        []string  `json:"images"`
	Notes         string    `json:"notes"`
	Location      *Location `json:"location"`
}

func (in UpdateInput) setFields() map[string]interface{} {
	set := map[string]interface{}{}
	if in.Name != "" {
		set["name"] = in.Name
	}
	if in.Condition != "" {
		set["condition"] = in.Condition
	}
	if in.LastInspected != "" {
		set["lastInspected"] = in.LastInspected
	}
	if in.Images != nil {
		set["images"] = in.Images
	}
	if in.Notes != "" {
		set["notes"] = in.Notes
	}
	if in.Location != nil {
		set["location"] = in.Location
	}
	return set
}

package reports

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location pins the reported issue on the neighbourhood map.
type Location struct {
	Address   string  `bson:"address,omitempty" json:"address,omitempty"`
	Latitude  float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
}

// Report is one document of the reports collection: a resident-submitted
// issue (broken streetlight, fallen tree, ...). ResidentID is kept as the
// submitted hex string; the platform never joins on it.
type Report struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ResidentID  string             `bson:"residentId" json:"residentId"`
	Title       string             `bson:"title" json:"title"`
	Category    string             `bson:"category" json:"category"`
	Status      string             `bson:"status" json:"status"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Images      []string           `bson:"images" json:"images"`
	Location    *Location          `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// CreateInput is the declared schema of POST /reports.
type CreateInput struct {
	ResidentID  string    `json:"residentId"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	Location    *Location `json:"location"`
}

func (in CreateInput) fields() map[string]interface{} {
	fields := map[string]interface{}{
		"residentId": in.ResidentID,
		"title":      in.Title,
		"category":   in.Category,
		"status":     in.Status,
	}
	if in.Images != nil {
		fields["images"] = in.Images
	}
	return fields
}

func (in CreateInput) toReport(now time.Time) Report {
	return Report{
		ResidentID:  in.ResidentID,
		Title:       in.Title,
		Category:    in.Category,
		Status:      in.Status,
		Description: in.Description,
		Images:      in.Images,
		Location:    in.Location,
		CreatedAt:   now,
	}
}

// UpdateInput is the declared schema of PATCH /reports/{reportId}. Zero-valued
// fields are left untouched; residentId is not updatable.
type UpdateInput struct {
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	Location    *Location `json:"location"`
}

func (in UpdateInput) setFields() map[string]interface{} {
	set := map[string]interface{}{}
	if in.Title != "" {
		set["title"] = in.Title
	}
	if in.Category != "" {
		set["category"] = in.Category
	}
	if in.Status != "" {
		set["status"] = in.Status
	}
	if in.Description != "" {
		set["description"] = in.Description
	}
	if in.Images != nil {
		set["images"] = in.Images
	}
	if in.Location != nil {
		set["location"] = in.Location
	}
	return set
}

package disruptions

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultStatus is applied on create; a disruption goes "active" once the
// council confirms it.
const DefaultStatus = "inactive"

// Disruption is one document of the disruptions collection: road closures,
// water cuts, scheduled outages.
type Disruption struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// CreateInput is the declared schema of POST /disruptions.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (in CreateInput) fields() map[string]interface{} {
	return map[string]interface{}{
		"title":       in.Title,
		"description": in.Description,
	}
}

func (in CreateInput) toDisruption(now time.Time) Disruption {
	status := in.Status
	if status == "" {
		status = DefaultStatus
	}
	return Disruption{
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		CreatedAt:   now,
	}
}

// UpdateInput is the declared schema of PATCH /disruptions/{disruptionId}.
// Zero-valued fields are left untouched.
type UpdateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (in UpdateInput) setFields() map[string]interface{} {
	set := map[string]interface{}{}
	if in.Title != "" {
		set["title"] = in.Title
	}
	if in.Description != "" {
		set["description"] = in.Description
	}
	if in.Status != "" {
		set["status"] = in.Status
	}
	return set
}

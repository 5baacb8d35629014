package events

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultStatus is applied on create; organizers move events to "approved" or
// "cancelled" through updates.
const DefaultStatus = "pending"

// Location pins an event venue on the neighbourhood map.
type Location struct {
	Address   string  `bson:"address,omitempty" json:"address,omitempty"`
	Latitude  float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
}

// Event is one document of the events collection. EventDate stays an opaque
// string; the platform never computes with it.
type Event struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description" json:"description"`
	OrganizerName  string             `bson:"organizerName" json:"organizerName"`
	OrganizerEmail string             `bson:"organizerEmail" json:"organizerEmail"`
	EventDate      string             `bson:"eventDate" json:"eventDate"`
	Status         string             `bson:"status" json:"status"`
	Location       *Location          `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// CreateInput is the declared schema of POST /events. "eventName" is a legacy
// alias for "title" still sent by older clients.
type CreateInput struct {
	Title          string    `json:"title"`
	EventName      string    `json:"eventName"`
	Description    string    `json:"description"`
	OrganizerName  string    `json:"organizerName"`
	OrganizerEmail string    `json:"organizerEmail"`
	EventDate      string    `json:"eventDate"`
	Status         string    `json:"status"`
	Location       *Location `json:"location"`
}

// decodeCreate accepts both the flat body and the legacy {inputObj:{...}}
// wrapper.
func decodeCreate(raw []byte) (CreateInput, error) {
	var wrapper struct {
		InputObj json.RawMessage `json:"inputObj"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return CreateInput{}, err
	}
	if wrapper.InputObj != nil {
		raw = wrapper.InputObj
	}
	var in CreateInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return CreateInput{}, err
	}
	if in.Title == "" {
		in.Title = in.EventName
	}
	return in, nil
}

func (in CreateInput) fields() map[string]interface{} {
	fields := map[string]interface{}{
		"title":          in.Title,
		"description":    in.Description,
		"organizerName":  in.OrganizerName,
		"organizerEmail": in.OrganizerEmail,
		"eventDate":      in.EventDate,
	}
	if in.Location != nil {
		fields["location"] = in.Location
	}
	return fields
}

func (in CreateInput) toEvent(now time.Time) Event {
	status := in.Status
	if status == "" {
		status = DefaultStatus
	}
	return Event{
		Title:          in.Title,
		Description:    in.Description,
		OrganizerName:  in.OrganizerName,
		OrganizerEmail: in.OrganizerEmail,
		EventDate:      in.EventDate,
		Status:         status,
		Location:       in.Location,
		CreatedAt:      now,
	}
}

// UpdateInput is the declared schema of PATCH /events/{eventId}. Zero-valued
// fields are left untouched.
type UpdateInput struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	OrganizerName  string    `json:"organizerName"`
	OrganizerEmail string    `json:"organizerEmail"`
	EventDate      string    `json:"eventDate"`
	Status         string    `json:"status"`
	Location       *Location `json:"location"`
}

func (in UpdateInput) setFields() map[string]interface{} {
	set := map[string]interface{}{}
	if in.Title != "" {
		set["title"] = in.Title
	}
	if in.Description != "" {
		set["description"] = in.Description
	}
	if in.OrganizerName != "" {
		set["organizerName"] = in.OrganizerName
	}
	if in.OrganizerEmail != "" {
		set["organizerEmail"] = in.OrganizerEmail
	}
	if in.EventDate != "" {
		set["eventDate"] = in.EventDate
	}
	if in.Status != "" {
		set["status"] = in.Status
	}
	if in.Location != nil {
		set["location"] = in.Location
	}
	return set
}

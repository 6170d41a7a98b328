package models

import (
	"time"
)

// Canonical field names shared by the input mapper, the stores and the
// handlers. Input keys outside this set are ignored.
const (
	FieldTitle           = "title"
	FieldEventDate       = "eventDate"
	FieldStartTime       = "startTime"
	FieldEndTime         = "endTime"
	FieldDescription     = "description"
	FieldResources       = "resources"
	FieldResponsible     = "responsible"
	FieldEventType       = "eventType"
	FieldParticipantInfo = "participantInfo"
	FieldImageURL        = "imageUrl"
)

// DefaultEventType is assumed when the input carries no eventType.
const DefaultEventType = "public"

// DateLayout is the display form of an event date.
const DateLayout = "2006-01-02"

type Event struct {
	ID              string    `bson:"-" json:"id"`
	Title           string    `bson:"title" json:"title"`
	EventDate       time.Time `bson:"event_date,omitempty" json:"-"` // UTC midnight; zero when the source row had no parseable date
	StartTime       string    `bson:"start_time,omitempty" json:"startTime"`
	EndTime         string    `bson:"end_time,omitempty" json:"endTime"`
	Description     string    `bson:"description,omitempty" json:"description"`
	Resources       string    `bson:"resources,omitempty" json:"resources"` // comma-joined option list
	Responsible     string    `bson:"responsible,omitempty" json:"responsible"`
	EventType       string    `bson:"event_type" json:"eventType"`
	ParticipantInfo string    `bson:"participant_info,omitempty" json:"participantInfo"`
	ImageURL        string    `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"-"`
}

// EventResponse is the wire shape of a record: stored instants rendered back
// to display strings.
type EventResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	EventDate       string `json:"eventDate"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Description     string `json:"description"`
	Resources       string `json:"resources"`
	Responsible     string `json:"responsible"`
	EventType       string `json:"eventType"`
	ParticipantInfo string `json:"participantInfo"`
	ImageURL        string `json:"imageUrl,omitempty"`
	CreatedAt       string `json:"createdAt,omitempty"`
}

// Render converts a stored event to its response form. A zero EventDate
// renders as an empty string.
func (e Event) Render() EventResponse {
	resp := EventResponse{
		ID:              e.ID,
		Title:           e.Title,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		Description:     e.Description,
		Resources:       e.Resources,
		Responsible:     e.Responsible,
		EventType:       e.EventType,
		ParticipantInfo: e.ParticipantInfo,
		ImageURL:        e.ImageURL,
	}
	if !e.EventDate.IsZero() {
		resp.EventDate = e.EventDate.UTC().Format(DateLayout)
	}
	if !e.CreatedAt.IsZero() {
		resp.CreatedAt = e.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// RenderAll maps a slice of stored events, preserving order. Always returns a
// non-nil slice so an empty list serializes as [].
func RenderAll(events []Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Render())
	}
	return out
}

package models

import (
	"fmt"
	"strings"

	utils "github.com/mwangikb/event-planner-go/utils"
)

// Validation failures are distinguished so handlers can word the 400 body.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "missing required field"}
}

// EventFromInput maps a loosely-typed field set (form values or a JSON object
// of strings) to a canonical record. Title and eventDate are mandatory, the
// date must normalize, eventType defaults to the public label and unknown
// keys are dropped. Identity fields (id, createdAt, imageUrl) are never taken
// from the body; the caller owns those.
func EventFromInput(in map[string]string) (Event, error) {
	title := strings.TrimSpace(in[FieldTitle])
	if title == "" {
		return Event{}, missingField(FieldTitle)
	}
	rawDate := strings.TrimSpace(in[FieldEventDate])
	if rawDate == "" {
		return Event{}, missingField(FieldEventDate)
	}

	date, ok := utils.NormalizeDate(rawDate)
	if !ok {
		return Event{}, &ValidationError{Field: FieldEventDate, Reason: "unparseable date"}
	}

	eventType := in[FieldEventType]
	if eventType == "" {
		eventType = DefaultEventType
	}

	return Event{
		Title:           title,
		EventDate:       date,
		StartTime:       in[FieldStartTime],
		EndTime:         in[FieldEndTime],
		Description:     in[FieldDescription],
		Resources:       in[FieldResources],
		Responsible:     in[FieldResponsible],
		EventType:       eventType,
		ParticipantInfo: in[FieldParticipantInfo],
	}, nil
}

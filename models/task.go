package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxTaskTitleLength is the maximal length of a task title in characters.
const MaxTaskTitleLength = 200

// Task is a to-do item owned by exactly one user.
type Task struct {
	// ID is the unique identifier of the task (UUID v7).
	ID uuid.UUID `json:"id"`

	// Title is the trimmed, non-empty task title.
	Title string `json:"title"`

	// Done marks the task as completed.
	Done bool `json:"done"`

	// DueDate is the optional deadline of the task.
	DueDate *time.Time `json:"dueDate"`

	// Tags are normalized: trimmed, lowercased and deduplicated.
	Tags []string `json:"tags"`

	// UserID is the owner of the task. It is set on creation and never changes.
	UserID uuid.UUID `json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Task model.
func (t Task) TableName() string {
	return "tasks"
}

// TaskInput is the body of task create and update requests.
//
// Only title, done, dueDate and tags are read; any other field of the
// request body is ignored. Each field records whether it was present so that
// updates can distinguish "absent" from "cleared".
type TaskInput struct {
	Title   *string      `json:"title"`
	Done    FlexBool     `json:"done"`
	DueDate NullableTime `json:"dueDate"`
	Tags    TagList      `json:"tags"`
}

// IsEmpty reports whether none of the writable fields were provided.
func (in TaskInput) IsEmpty() bool {
	return in.Title == nil && !in.Done.Set && !in.DueDate.Set && !in.Tags.Set
}

// TaskUpdate is a validated partial update of a single task.
// Nil pointers and unset flags leave the stored value untouched.
type TaskUpdate struct {
	ID     uuid.UUID
	UserID uuid.UUID

	Title *string
	Done  *bool

	// DueDate replaces the due date when SetDueDate is true; nil clears it.
	SetDueDate bool
	DueDate    *time.Time

	// Tags replaces the tag list when SetTags is true.
	SetTags bool
	Tags    []string
}

// IsEmpty reports whether the update changes nothing.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Done == nil && !u.SetDueDate && !u.SetTags
}

// TaskPage is one page of a task listing together with the total number
// of tasks matching the filter.
type TaskPage struct {
	Tasks []Task `json:"tasks"`
	Total int64  `json:"total"`
}

// TaskList is the response of the task listing endpoint.
type TaskList struct {
	Data []Task   `json:"data"`
	Meta ListMeta `json:"meta"`
}

// ListMeta echoes the resolved pagination, sort and filter of a listing.
type ListMeta struct {
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalItems int64      `json:"totalItems"`
	TotalPages int        `json:"totalPages"`
	Sort       string     `json:"sort"`
	Filter     ListFilter `json:"filter"`
}

// ListFilter is the resolved filter of a listing. A nil Done means the
// listing was not filtered by completion state.
type ListFilter struct {
	Done *bool    `json:"done"`
	Tags []string `json:"tags"`
}

// ParseBoolLike interprets boolean-like strings case-insensitively:
// true/1/yes/y and false/0/no/n. ok is false for anything else.
func ParseBoolLike(s string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y":
		return true, true
	case "false", "0", "no", "n":
		return false, true
	default:
		return false, false
	}
}

// FlexBool is a JSON boolean that also accepts boolean-like strings and
// the numbers 0 and 1.
type FlexBool struct {
	// Set is true when the field was present in the JSON document.
	Set bool
	// Valid is true when the value could be interpreted as a boolean.
	Valid bool
	Value bool
}

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	b.Set = true
	b.Valid = false
	b.Value = false

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case bool:
		b.Value, b.Valid = value, true
	case string:
		b.Value, b.Valid = ParseBoolLike(value)
	case float64:
		b.Value, b.Valid = ParseBoolLike(strconv.FormatFloat(value, 'f', -1, 64))
	}

	return nil
}

// Pointer returns the value or nil when it was absent or not recognised.
func (b FlexBool) Pointer() *bool {
	if !b.Set || !b.Valid {
		return nil
	}
	v := b.Value
	return &v
}

// Accepted layouts of task due dates.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NullableTime is a JSON timestamp that distinguishes an absent field,
// an explicit null and a value.
type NullableTime struct {
	// Set is true when the field was present in the JSON document.
	Set bool
	// Valid is true when a timestamp was provided. Null and "" leave it false.
	Valid bool
	// Invalid is true when the provided value could not be parsed.
	Invalid bool
	Time    time.Time
}

func (t *NullableTime) UnmarshalJSON(data []byte) error {
	*t = NullableTime{Set: true}

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case string:
		value = strings.TrimSpace(value)
		if value == "" {
			return nil
		}
		for _, layout := range dueDateLayouts {
			if parsed, err := time.Parse(layout, value); err == nil {
				t.Time, t.Valid = parsed.UTC(), true
				return nil
			}
		}
		t.Invalid = true
	case float64:
		t.Time, t.Valid = time.UnixMilli(int64(value)).UTC(), true
	default:
		t.Invalid = true
	}

	return nil
}

// Pointer returns the parsed time or nil for null, empty and absent values.
func (t NullableTime) Pointer() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// TagList is a JSON list of tags that also accepts a single string.
// A null or empty single value yields an empty list.
type TagList struct {
	// Set is true when the field was present in the JSON document.
	Set    bool
	Values []string
}

func (l *TagList) UnmarshalJSON(data []byte) error {
	l.Set = true
	l.Values = []string{}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case []any:
		for _, item := range value {
			if s, ok := tagString(item); ok {
				l.Values = append(l.Values, s)
			}
		}
	default:
		if s, ok := tagString(value); ok && s != "" {
			l.Values = append(l.Values, s)
		}
	}

	return nil
}

func tagString(v any) (string, bool) {
	switch value := v.(type) {
	case string:
		return value, true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(value), true
	default:
		return "", false
	}
}

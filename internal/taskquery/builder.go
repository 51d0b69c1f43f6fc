// Package taskquery translates untrusted task listing parameters into a
// bounded, owner-scoped query specification.
//
// [Build] never fails: malformed input degrades to a safe default instead of
// being rejected. Sorting is restricted to an allow-list of fields, so no
// caller-provided string ever reaches SQL as an identifier.
package taskquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/google/uuid"
)

// Pagination bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// maxParsedInt keeps (page-1)*limit far away from int64 overflow.
	maxParsedInt = 1<<31 - 1
)

// Query parameter names.
const (
	ParamDone  = "done"
	ParamTag   = "tag"
	ParamPage  = "page"
	ParamLimit = "limit"
	ParamSort  = "sort"
)

// Sortable fields.
const (
	FieldTitle     = "title"
	FieldDone      = "done"
	FieldDueDate   = "dueDate"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// sortColumns maps the allow-listed sort fields to their table columns.
var sortColumns = map[string]string{
	FieldTitle:     "title",
	FieldDone:      "done",
	FieldDueDate:   "due_date",
	FieldCreatedAt: "created_at",
	FieldUpdatedAt: "updated_at",
}

// DefaultSort is used when no allow-listed sort field was requested.
var DefaultSort = []SortField{{Field: FieldCreatedAt, Desc: true}}

// Filter restricts a listing to the owner's tasks and optionally by
// completion state and tags.
type Filter struct {
	OwnerID uuid.UUID
	// Done is nil when completion state is not filtered.
	Done *bool
	// Tags matches tasks carrying at least one of the tags. Empty means no
	// tag filter.
	Tags []string
}

// SortField is one allow-listed ordering key.
type SortField struct {
	Field string
	Desc  bool
}

// Column returns the table column of the field.
func (f SortField) Column() string {
	return sortColumns[f.Field]
}

// String renders the field as it is accepted in the sort parameter.
func (f SortField) String() string {
	if f.Desc {
		return "-" + f.Field
	}
	return f.Field
}

// Spec is a validated, bounded task listing query.
type Spec struct {
	Filter Filter
	Page   int
	Limit  int
	// Skip is (Page-1)*Limit.
	Skip int
	Sort []SortField
}

// Build turns raw query parameters into a [Spec] scoped to ownerID.
// Repeated parameters are joined with "," before parsing.
func Build(ownerID uuid.UUID, params url.Values) Spec {
	page := parsePositive(param(params, ParamPage), DefaultPage)
	limit := min(parsePositive(param(params, ParamLimit), DefaultLimit), MaxLimit)

	return Spec{
		Filter: Filter{
			OwnerID: ownerID,
			Done:    parseDone(param(params, ParamDone)),
			Tags:    ParseTags(param(params, ParamTag)),
		},
		Page:  page,
		Limit: limit,
		Skip:  (page - 1) * limit,
		Sort:  parseSort(param(params, ParamSort)),
	}
}

// SortString renders the resolved sort, e.g. "title,-dueDate".
func (s Spec) SortString() string {
	parts := make([]string, 0, len(s.Sort))
	for _, f := range s.Sort {
		parts = append(parts, f.String())
	}
	return strings.Join(parts, ",")
}

// Values renders the spec back into query parameters. Building from the
// result yields an equal spec for the same owner.
func (s Spec) Values() url.Values {
	v := url.Values{}
	v.Set(ParamPage, strconv.Itoa(s.Page))
	v.Set(ParamLimit, strconv.Itoa(s.Limit))
	v.Set(ParamSort, s.SortString())
	if s.Filter.Done != nil {
		v.Set(ParamDone, strconv.FormatBool(*s.Filter.Done))
	}
	if len(s.Filter.Tags) > 0 {
		v.Set(ParamTag, strings.Join(s.Filter.Tags, ","))
	}
	return v
}

// Canonical returns a stable string form of everything but the owner.
func (s Spec) Canonical() string {
	return s.Values().Encode()
}

func param(params url.Values, name string) string {
	return strings.Join(params[name], ",")
}

func parseDone(raw string) *bool {
	value, ok := models.ParseBoolLike(raw)
	if !ok {
		return nil
	}
	return &value
}

// ParseTags splits a comma separated tag list and normalizes it.
func ParseTags(raw string) []string {
	return NormalizeTags(strings.Split(raw, ","))
}

// NormalizeTags trims and lowercases tags, drops empty entries and removes
// duplicates keeping the first occurrence. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func parseSort(raw string) []SortField {
	var fields []SortField
	seen := make(map[string]struct{}, len(sortColumns))
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		field := SortField{Field: part}
		if name, ok := strings.CutPrefix(part, "-"); ok {
			field = SortField{Field: name, Desc: true}
		}

		if _, ok := sortColumns[field.Field]; !ok {
			continue
		}
		if _, dup := seen[field.Field]; dup {
			continue
		}
		seen[field.Field] = struct{}{}
		fields = append(fields, field)
	}

	if len(fields) == 0 {
		return defaultSort()
	}
	return fields
}

func defaultSort() []SortField {
	return append([]SortField(nil), DefaultSort...)
}

// parsePositive reads the leading integer of raw ("3abc" is 3). Missing,
// unparseable and zero values yield def; negatives clamp to 1.
func parsePositive(raw string, def int) int {
	raw = strings.TrimLeft(raw, " \t\n\r")

	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return def
	}

	n, err := strconv.ParseInt(raw[:end], 10, 64)
	switch {
	case err != nil && raw[0] == '-':
		return 1
	case err != nil, n > maxParsedInt:
		return maxParsedInt
	case n == 0:
		return def
	case n < 0:
		return 1
	}
	return int(n)
}

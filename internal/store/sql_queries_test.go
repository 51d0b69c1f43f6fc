// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/taskquery"
	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func Test_buildListTasksQuery_OwnerOnly(t *testing.T) {
	owner := uuid.New()
	spec := taskquery.Spec{
		Filter: taskquery.Filter{OwnerID: owner},
		Page:   1,
		Limit:  10,
		Skip:   0,
		Sort:   taskquery.DefaultSort,
	}

	query, args, err := buildListTasksQuery(spec)
	require.NoError(t, err)

	require.Equal(t, []any{owner}, args)
	assert.True(t, strings.HasPrefix(query, "SELECT "+taskColumns+" FROM tasks"))
	assert.Contains(t, query, "WHERE (user_id = $1)")
	assert.Contains(t, query, "ORDER BY created_at DESC, id ASC")
	assert.Contains(t, query, "LIMIT 10")
	assert.Contains(t, query, "OFFSET 0")
}

func Test_buildListTasksQuery_AllFilters(t *testing.T) {
	owner := uuid.New()
	spec := taskquery.Spec{
		Filter: taskquery.Filter{OwnerID: owner, Done: boolPtr(false), Tags: []string{"work", "home"}},
		Page:   3,
		Limit:  20,
		Skip:   40,
		Sort: []taskquery.SortField{
			{Field: taskquery.FieldDueDate},
			{Field: taskquery.FieldTitle, Desc: true},
		},
	}

	query, args, err := buildListTasksQuery(spec)
	require.NoError(t, err)

	require.Equal(t, []any{owner, false, []string{"work", "home"}}, args)
	assert.Contains(t, query, "WHERE (user_id = $1 AND done = $2 AND tags && $3)")
	assert.Contains(t, query, "ORDER BY due_date ASC, title DESC, id ASC")
	assert.Contains(t, query, "LIMIT 20")
	assert.Contains(t, query, "OFFSET 40")
}

func Test_buildListTasksQuery_UnknownSortFieldIgnored(t *testing.T) {
	spec := taskquery.Spec{
		Filter: taskquery.Filter{OwnerID: uuid.New()},
		Page:   1,
		Limit:  5,
		Sort:   []taskquery.SortField{{Field: "password"}},
	}

	query, _, err := buildListTasksQuery(spec)
	require.NoError(t, err)

	assert.Contains(t, query, "ORDER BY id ASC")
	assert.NotContains(t, query, "password")
}

func Test_buildCountTasksQuery(t *testing.T) {
	owner := uuid.New()

	query, args, err := buildCountTasksQuery(taskquery.Filter{OwnerID: owner, Done: boolPtr(true)})
	require.NoError(t, err)

	require.Equal(t, []any{owner, true}, args)
	assert.Equal(t, "SELECT COUNT(*) FROM tasks WHERE (user_id = $1 AND done = $2)", query)
}

func Test_buildUpdateTaskQuery_OnlyProvidedFields(t *testing.T) {
	id, owner := uuid.New(), uuid.New()
	title := "renamed"

	query, args, err := buildUpdateTaskQuery(models.TaskUpdate{ID: id, UserID: owner, Title: &title})
	require.NoError(t, err)

	require.Equal(t, []any{title, id, owner}, args)
	assert.True(t, strings.HasPrefix(query, "UPDATE tasks SET title = $1, updated_at = NOW()"))
	assert.Contains(t, query, "WHERE id = $2 AND user_id = $3")
	assert.True(t, strings.HasSuffix(query, "RETURNING "+taskColumns))
	assert.NotContains(t, query, "done =")
	assert.NotContains(t, query, "due_date =")
	assert.NotContains(t, query, "tags =")
}

func Test_buildUpdateTaskQuery_AllFields(t *testing.T) {
	id, owner := uuid.New(), uuid.New()
	title := "t"
	due := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	query, args, err := buildUpdateTaskQuery(models.TaskUpdate{
		ID:         id,
		UserID:     owner,
		Title:      &title,
		Done:       boolPtr(true),
		SetDueDate: true,
		DueDate:    &due,
		SetTags:    true,
		Tags:       []string{"a"},
	})
	require.NoError(t, err)

	require.Equal(t, []any{title, true, &due, []string{"a"}, id, owner}, args)
	assert.Contains(t, query, "SET title = $1, done = $2, due_date = $3, tags = $4, updated_at = NOW()")
	assert.Contains(t, query, "WHERE id = $5 AND user_id = $6")
}

func Test_buildUpdateTaskQuery_ClearsDueDateAndTags(t *testing.T) {
	id, owner := uuid.New(), uuid.New()

	query, args, err := buildUpdateTaskQuery(models.TaskUpdate{
		ID:         id,
		UserID:     owner,
		SetDueDate: true,
		SetTags:    true,
	})
	require.NoError(t, err)

	require.Len(t, args, 4)
	assert.Nil(t, args[0])
	assert.Equal(t, []string{}, args[1])
	assert.Contains(t, query, "due_date = $1, tags = $2")
}

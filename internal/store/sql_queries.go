package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-task-keeper/internal/taskquery"
	"github.com/MKhiriev/go-task-keeper/models"
)

const (
	userColumns = `id, username, email, password_hash, created_at, updated_at`
	taskColumns = `id, user_id, title, done, due_date, tags, created_at, updated_at`
)

const (
	createUser = `INSERT INTO users (id, username, email, password_hash)
    VALUES ($1, $2, $3, $4)
    RETURNING ` + userColumns + `;`

	userExists = `SELECT EXISTS (
        SELECT 1 FROM users WHERE username = $1 OR email = $2
    );`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE id = $1;`

	findUserByEmail = `SELECT ` + userColumns + `
    FROM users
    WHERE email = $1;`

	findUserByUsername = `SELECT ` + userColumns + `
    FROM users
    WHERE username = $1;`

	createTask = `INSERT INTO tasks (id, user_id, title, done, due_date, tags)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING ` + taskColumns + `;`

	getTask = `SELECT ` + taskColumns + `
    FROM tasks
    WHERE id = $1 AND user_id = $2;`

	deleteTask = `DELETE FROM tasks
    WHERE id = $1 AND user_id = $2
    RETURNING id;`
)

// psql renders squirrel statements with Postgres placeholders ($1, $2, ...).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// taskFilter renders the WHERE clause shared by the listing and the count.
func taskFilter(filter taskquery.Filter) sq.And {
	where := sq.And{sq.Expr("user_id = ?", filter.OwnerID)}
	if filter.Done != nil {
		where = append(where, sq.Eq{"done": *filter.Done})
	}
	if len(filter.Tags) > 0 {
		where = append(where, sq.Expr("tags && ?", filter.Tags))
	}
	return where
}

// taskOrderBy renders the ORDER BY terms of spec with id as a tie-breaker,
// so pages are stable.
func taskOrderBy(sort []taskquery.SortField) []string {
	orderBy := make([]string, 0, len(sort)+1)
	for _, field := range sort {
		column := field.Column()
		if column == "" {
			continue
		}
		if field.Desc {
			orderBy = append(orderBy, column+" DESC")
		} else {
			orderBy = append(orderBy, column+" ASC")
		}
	}
	return append(orderBy, "id ASC")
}

func buildListTasksQuery(spec taskquery.Spec) (string, []any, error) {
	query, args, err := psql.
		Select(taskColumns).
		From("tasks").
		Where(taskFilter(spec.Filter)).
		OrderBy(taskOrderBy(spec.Sort)...).
		Limit(uint64(spec.Limit)).
		Offset(uint64(spec.Skip)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildCountTasksQuery(filter taskquery.Filter) (string, []any, error) {
	query, args, err := psql.
		Select("COUNT(*)").
		From("tasks").
		Where(taskFilter(filter)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpdateTaskQuery sets only the provided fields and always bumps
// updated_at.
func buildUpdateTaskQuery(update models.TaskUpdate) (string, []any, error) {
	builder := psql.Update("tasks")

	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
	}
	if update.Done != nil {
		builder = builder.Set("done", *update.Done)
	}
	if update.SetDueDate {
		builder = builder.Set("due_date", update.DueDate)
	}
	if update.SetTags {
		tags := update.Tags
		if tags == nil {
			tags = []string{}
		}
		builder = builder.Set("tags", tags)
	}

	query, args, err := builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Expr("id = ? AND user_id = ?", update.ID, update.UserID)).
		Suffix("RETURNING " + taskColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

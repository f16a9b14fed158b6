package repo

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func uniqueErr(constraint string) *pq.Error {
	return &pq.Error{Code: "23505", Constraint: constraint}
}

var hackathonColumns = []string{
	"id", "title", "tagline", "description", "starts_at", "ends_at",
	"image", "thumbnail", "results_declared", "max_team_size", "slug",
}

func hackathonRow(id int64, title, slug string, start, end time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(hackathonColumns).
		AddRow(id, title, "", "", start, end, "", "", false, 10, slug)
}

var teamColumns = []string{"id", "name", "leader_id", "hackathon_id", "team_code"}

var submissionColumns = []string{
	"id", "team_id", "hackathon_id", "title", "submission_url",
	"description", "score", "review", "updated_at",
}

func TestUniqueViolation(t *testing.T) {
	require.True(t, uniqueViolation(uniqueErr("any_key"), ""))
	require.True(t, uniqueViolation(uniqueErr("teams_name_per_hackathon_key"), "teams_name_per_hackathon_key"))
	require.False(t, uniqueViolation(uniqueErr("other_key"), "teams_name_per_hackathon_key"))
	require.False(t, uniqueViolation(&pq.Error{Code: "23503"}, ""))
	require.False(t, uniqueViolation(nil, ""))
}

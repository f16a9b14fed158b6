package repo

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"hackathon-manager/internal/apperrors"
	"hackathon-manager/internal/domain/models"
)

func TestCreateTeam(t *testing.T) {
	team := models.Team{Name: "Bit Crushers", LeaderID: "alice", HackathonID: 1, TeamCode: "ABC123AB"}

	t.Run("team and leader membership in one transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := NewTeamRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO teams`)).
			WithArgs("Bit Crushers", "alice", int64(1), "ABC123AB").
			WillReturnRows(sqlmock.NewRows(teamColumns).
				AddRow(7, "Bit Crushers", "alice", 1, "ABC123AB"))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO team_members (team_id, hackathon_id, user_id) VALUES ($1, $2, $3)`)).
			WithArgs(int64(7), int64(1), "alice").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		created, err := r.CreateTeam(team)
		require.NoError(t, err)
		require.Equal(t, int64(7), created.ID)
		require.Equal(t, []string{"alice"}, created.Members)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("name taken rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := NewTeamRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO teams`)).
			WillReturnError(uniqueErr("teams_name_per_hackathon_key"))
		mock.ExpectRollback()

		_, err := r.CreateTeam(team)
		require.ErrorIs(t, err, apperrors.ErrTeamNameTaken)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("leader already in a team rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := NewTeamRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO teams`)).
			WillReturnRows(sqlmock.NewRows(teamColumns).
				AddRow(7, "Bit Crushers", "alice", 1, "ABC123AB"))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO team_members`)).
			WillReturnError(uniqueErr("team_members_one_team_per_hackathon_key"))
		mock.ExpectRollback()

		_, err := r.CreateTeam(team)
		require.ErrorIs(t, err, apperrors.ErrAlreadyInTeam)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetTeamByCode(t *testing.T) {
	t.Run("found with members", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := NewTeamRepo(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM teams WHERE team_code = $1`)).
			WithArgs("ABC123AB").
			WillReturnRows(sqlmock.NewRows(teamColumns).
				AddRow(7, "Bit Crushers", "alice", 1, "ABC123AB"))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT user_id FROM team_members WHERE team_id = $1`)).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("alice").AddRow("bob"))

		team, err := r.GetTeamByCode("ABC123AB")
		require.NoError(t, err)
		require.Equal(t, "alice", team.LeaderID)
		require.Equal(t, []string{"alice", "bob"}, team.Members)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown code maps to not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := NewTeamRepo(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM teams WHERE team_code = $1`)).
			WithArgs("NOPE0000").
			WillReturnRows(sqlmock.NewRows(teamColumns))

		_, err := r.GetTeamByCode("NOPE0000")
		require.ErrorIs(t, err, apperrors.ErrTeamNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAddMember(t *testing.T) {
	t.Run("joins under the row lock", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := NewTeamRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM teams WHERE id = $1 FOR UPDATE`)).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM team_members WHERE team_id = $1`)).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO team_members`)).
			WithArgs(int64(7), int64(1), "carol").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, r.AddMember(7, 1, "carol", 4))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("full team rolls back before the insert", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := NewTeamRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM teams WHERE id = $1 FOR UPDATE`)).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM team_members WHERE team_id = $1`)).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectRollback()

		err := r.AddMember(7, 1, "carol", 2)
		require.ErrorIs(t, err, apperrors.ErrTeamFull)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown team", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := NewTeamRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM teams WHERE id = $1 FOR UPDATE`)).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		err := r.AddMember(42, 1, "carol", 4)
		require.ErrorIs(t, err, apperrors.ErrTeamNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second membership in the hackathon rolls back", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := NewTeamRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM teams WHERE id = $1 FOR UPDATE`)).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM team_members WHERE team_id = $1`)).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO team_members`)).
			WillReturnError(uniqueErr("team_members_one_team_per_hackathon_key"))
		mock.ExpectRollback()

		err := r.AddMember(7, 1, "carol", 4)
		require.ErrorIs(t, err, apperrors.ErrAlreadyInTeam)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRemoveMember(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := NewTeamRepo(db)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`)).
			WithArgs(int64(7), "bob").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, r.RemoveMember(7, "bob"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows maps to member not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		r := NewTeamRepo(db)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`)).
			WithArgs(int64(7), "mallory").
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.ErrorIs(t, r.RemoveMember(7, "mallory"), apperrors.ErrMemberNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserTeamNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewTeamRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`JOIN team_members tm ON tm.team_id = t.id`)).
		WithArgs(int64(1), "carol").
		WillReturnRows(sqlmock.NewRows(teamColumns))

	_, err := r.GetUserTeam(1, "carol")
	require.ErrorIs(t, err, apperrors.ErrTeamNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

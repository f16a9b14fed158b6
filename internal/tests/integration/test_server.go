package integration

import (
	"fmt"
	"log/slog"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"hackathon-manager/internal/config"
	v1 "hackathon-manager/internal/http/v1"
	"hackathon-manager/internal/http/v1/mdlwr"
	"hackathon-manager/internal/lib/migrator"
	"hackathon-manager/internal/repo"
	"hackathon-manager/internal/service"
)

const authSecret = "integration-secret"

type TestServer struct {
	DB     *sqlx.DB
	Server *httptest.Server
}

func NewTestServer() (*TestServer, error) {
	pgCfg := config.PostgresConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "postgres",
		DbName:   "hackathon_db",
		SslMode:  "disable",
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		pgCfg.Host, pgCfg.Port, pgCfg.User, pgCfg.Password, pgCfg.DbName, pgCfg.SslMode)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	if err := migrator.RunMigrations(pgCfg, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	hackathonRepo := repo.NewHackathonRepo(db)
	teamRepo := repo.NewTeamRepo(db)
	submissionRepo := repo.NewSubmissionRepo(db)

	deps := v1.RouterDependencies{
		HackathonService:  service.NewHackathonService(log, hackathonRepo),
		TeamService:       service.NewTeamService(log, teamRepo, hackathonRepo),
		SubmissionService: service.NewSubmissionService(log, submissionRepo, teamRepo, hackathonRepo),
	}

	r := chi.NewRouter()
	r.Use(mdlwr.Actor(authSecret))
	v1.SetupRoutes(r, &deps, log)

	ts := httptest.NewServer(r)

	return &TestServer{
		DB:     db,
		Server: ts,
	}, nil
}

// LoadFixtures resets the tables and seeds one hackathon per status:
// "Ongoing Hack" (max team size 2) with a full team and a one-member team,
// "Completed Hack" with a scored submission, and "Upcoming Hack" with a
// submission that is not readable yet.
func (s *TestServer) LoadFixtures() error {
	tables := []string{"submissions", "team_members", "teams", "hackathons"}
	for _, table := range tables {
		_, err := s.DB.Exec(fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}

	fixtures := `
		INSERT INTO hackathons (title, starts_at, ends_at, results_declared, max_team_size, slug) VALUES
			('Ongoing Hack',   now() - interval '1 hour', now() + interval '1 hour', false, 2, 'ongoing-hack'),
			('Completed Hack', now() - interval '2 day',  now() - interval '1 day',  true,  4, 'completed-hack'),
			('Upcoming Hack',  now() + interval '1 day',  now() + interval '2 day',  false, 4, 'upcoming-hack');

		INSERT INTO teams (name, leader_id, hackathon_id, team_code) VALUES
			('Bit Crushers',   'alice', 1, 'ABC123AB'),
			('Null Pointers',  'bob',   1, 'DEF456DE'),
			('Archive Divers', 'dave',  2, 'GHI789GH'),
			('Early Birds',    'erin',  3, 'JKL012JK');

		INSERT INTO team_members (team_id, hackathon_id, user_id) VALUES
			(1, 1, 'alice'),
			(1, 1, 'ben'),
			(2, 1, 'bob'),
			(3, 2, 'dave'),
			(3, 2, 'frank'),
			(3, 2, 'grace'),
			(4, 3, 'erin');

		INSERT INTO submissions (team_id, hackathon_id, title, submission_url, score, review) VALUES
			(3, 2, 'Archive Search', 'https://example.com/archive', 87, 'thorough work'),
			(4, 3, 'Bird Feeder',    'https://example.com/birds',   0,  '');
	`

	_, err := s.DB.Exec(fixtures)
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	return nil
}

func (s *TestServer) Close() {
	s.Server.Close()
	s.DB.Close()
}

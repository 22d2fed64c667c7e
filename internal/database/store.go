package database

import (
	"context"

	"github.com/mscuttari/domjudge-exam-configurator/internal/models"

	"gorm.io/gorm"
)

// Store is the relational access layer over the DOMjudge schema. Every
// method is a single parameterized round trip; the store performs no
// caching and no retries. Transaction boundaries belong to the caller,
// at the per-student granularity the pipelines use.
type Store interface {
	ContestByShortname(ctx context.Context, shortname string) (*models.Contest, error)
	RoleByName(ctx context.Context, name string) (*models.Role, error)
	TeamCategoryByName(ctx context.Context, name string) (*models.TeamCategory, error)
	ProblemByName(ctx context.Context, name string) (*models.Problem, error)

	UserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	SetUserPassword(ctx context.Context, userID int64, hashedPassword string) error
	GrantRole(ctx context.Context, userID, roleID int64) (bool, error)

	TeamByName(ctx context.Context, name string) (*models.Team, error)
	CreateTeam(ctx context.Context, team *models.Team) error
	AssignUserToTeam(ctx context.Context, userID, teamID int64) error
	EnrollTeamInContest(ctx context.Context, teamID, contestID int64) (bool, error)

	SubmissionsForProblem(ctx context.Context, userID, contestID, problemID int64) ([]models.Submission, error)
	TestCaseResults(ctx context.Context, submissionID int64) ([]models.TestCaseResult, error)

	// Transaction runs fn against a store bound to a single database
	// transaction, committing when fn returns nil and rolling back all
	// of its writes otherwise.
	Transaction(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *GormDB) Store {
	return &gormStore{db: db.DB}
}

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

package database

import (
	"context"
	"fmt"

	"github.com/mscuttari/domjudge-exam-configurator/internal/models"
)

func (s *gormStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("username = ?", username).
		Limit(2).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %q: %w", username, err)
	}

	switch len(users) {
	case 0:
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	case 1:
		return &users[0], nil
	default:
		return nil, fmt.Errorf("user %q: %w", username, ErrMultipleMatches)
	}
}

func (s *gormStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user %q: %w", user.Username, err)
	}
	return nil
}

func (s *gormStore) SetUserPassword(ctx context.Context, userID int64, hashedPassword string) error {
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("userid = ?", userID).
		Update("password", hashedPassword).Error
	if err != nil {
		return fmt.Errorf("failed to update password of user %d: %w", userID, err)
	}
	return nil
}

// GrantRole inserts the user-role link unless it already exists. The
// userrole table has no upsert-friendly shape, so this is a guarded
// check-then-insert; safe under the single-writer assumption. Reports
// whether the link was inserted.
func (s *gormStore) GrantRole(ctx context.Context, userID, roleID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("userid = ? AND roleid = ?", userID, roleID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role %d of user %d: %w", roleID, userID, err)
	}
	if count > 0 {
		return false, nil
	}

	link := models.UserRole{UserID: userID, RoleID: roleID}
	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		return false, fmt.Errorf("failed to grant role %d to user %d: %w", roleID, userID, err)
	}
	return true, nil
}

func (s *gormStore) TeamByName(ctx context.Context, name string) (*models.Team, error) {
	var teams []models.Team
	err := s.db.WithContext(ctx).
		Where("name = ?", name).
		Limit(2).
		Find(&teams).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up team %q: %w", name, err)
	}

	switch len(teams) {
	case 0:
		return nil, fmt.Errorf("team %q: %w", name, ErrNotFound)
	case 1:
		return &teams[0], nil
	default:
		return nil, fmt.Errorf("team %q: %w", name, ErrMultipleMatches)
	}
}

func (s *gormStore) CreateTeam(ctx context.Context, team *models.Team) error {
	if err := s.db.WithContext(ctx).Create(team).Error; err != nil {
		return fmt.Errorf("failed to create team %q: %w", team.Name, err)
	}
	return nil
}

// AssignUserToTeam is an unconditional update and therefore idempotent.
func (s *gormStore) AssignUserToTeam(ctx context.Context, userID, teamID int64) error {
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("userid = ?", userID).
		Update("teamid", teamID).Error
	if err != nil {
		return fmt.Errorf("failed to assign user %d to team %d: %w", userID, teamID, err)
	}
	return nil
}

// EnrollTeamInContest inserts the contest-team link unless present,
// mirroring GrantRole. Reports whether the link was inserted.
func (s *gormStore) EnrollTeamInContest(ctx context.Context, teamID, contestID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.ContestTeam{}).
		Where("cid = ? AND teamid = ?", contestID, teamID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment of team %d in contest %d: %w", teamID, contestID, err)
	}
	if count > 0 {
		return false, nil
	}

	link := models.ContestTeam{ContestID: contestID, TeamID: teamID}
	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		return false, fmt.Errorf("failed to enroll team %d in contest %d: %w", teamID, contestID, err)
	}
	return true, nil
}

package database

import (
	"context"
	"fmt"

	"github.com/mscuttari/domjudge-exam-configurator/internal/models"
)

// The lookups below resolve a human-readable key to a schema row and
// expect at most one match. Two matches mean the shared schema is
// corrupt, so they report ErrMultipleMatches instead of picking one.

func (s *gormStore) ContestByShortname(ctx context.Context, shortname string) (*models.Contest, error) {
	var contests []models.Contest
	err := s.db.WithContext(ctx).
		Where("shortname = ?", shortname).
		Limit(2).
		Find(&contests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up contest %q: %w", shortname, err)
	}

	switch len(contests) {
	case 0:
		return nil, fmt.Errorf("contest %q: %w", shortname, ErrNotFound)
	case 1:
		return &contests[0], nil
	default:
		return nil, fmt.Errorf("contest %q: %w", shortname, ErrMultipleMatches)
	}
}

func (s *gormStore) RoleByName(ctx context.Context, name string) (*models.Role, error) {
	var roles []models.Role
	err := s.db.WithContext(ctx).
		Where("role = ?", name).
		Limit(2).
		Find(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up role %q: %w", name, err)
	}

	switch len(roles) {
	case 0:
		return nil, fmt.Errorf("role %q: %w", name, ErrNotFound)
	case 1:
		return &roles[0], nil
	default:
		return nil, fmt.Errorf("role %q: %w", name, ErrMultipleMatches)
	}
}

func (s *gormStore) TeamCategoryByName(ctx context.Context, name string) (*models.TeamCategory, error) {
	var categories []models.TeamCategory
	err := s.db.WithContext(ctx).
		Where("name = ?", name).
		Limit(2).
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up team category %q: %w", name, err)
	}

	switch len(categories) {
	case 0:
		return nil, fmt.Errorf("team category %q: %w", name, ErrNotFound)
	case 1:
		return &categories[0], nil
	default:
		return nil, fmt.Errorf("team category %q: %w", name, ErrMultipleMatches)
	}
}

func (s *gormStore) ProblemByName(ctx context.Context, name string) (*models.Problem, error) {
	var problems []models.Problem
	err := s.db.WithContext(ctx).
		Where("name = ?", name).
		Limit(2).
		Find(&problems).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up problem %q: %w", name, err)
	}

	switch len(problems) {
	case 0:
		return nil, fmt.Errorf("problem %q: %w", name, ErrNotFound)
	case 1:
		return &problems[0], nil
	default:
		return nil, fmt.Errorf("problem %q: %w", name, ErrMultipleMatches)
	}
}

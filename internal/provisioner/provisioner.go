package provisioner

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mscuttari/domjudge-exam-configurator/internal/config"
	"github.com/mscuttari/domjudge-exam-configurator/internal/database"
	"github.com/mscuttari/domjudge-exam-configurator/internal/models"
	"github.com/mscuttari/domjudge-exam-configurator/internal/roster"

	"github.com/google/uuid"
)

const (
	// Role granted to every exam account.
	teamRoleName = "team"

	// Suffix appended to the person code to form the exam username.
	// The download pipeline derives usernames with the "polimi-"
	// prefix instead: the two mappings are an external contract
	// between contest setups, not something enforced here.
	usernameSuffix = "-esami"

	// CredentialsFileName is where the run exports the plaintext
	// credentials, overwriting any previous file.
	CredentialsFileName = "credentials.txt"
)

// Username derives the judging-system username for a student.
func Username(student roster.Student) string {
	return student.PersonCode + usernameSuffix
}

// Provisioner creates exam accounts: one user and one team per
// student, linked together and enrolled in the contest.
type Provisioner struct {
	store database.Store
	cfg   *config.ExamConfig
}

func New(store database.Store, cfg *config.ExamConfig) *Provisioner {
	return &Provisioner{store: store, cfg: cfg}
}

// Run provisions every student in roster order. Students are processed
// one at a time, each inside its own transaction: a failure rolls back
// that student's writes, is logged, and does not stop the loop.
// Returns the person codes of the students that failed. The error
// result is non-nil only for fatal conditions (missing or ambiguous
// contest, role or team category, credentials file not writable),
// which abort the run before or after the loop.
func (p *Provisioner) Run(ctx context.Context, students []roster.Student) ([]string, error) {
	if p.cfg.TeamCategory == "" {
		return nil, fmt.Errorf("exam config: missing team category")
	}

	log.Printf("provisioning run %s: %d students, contest %q, team category %q",
		uuid.NewString(), len(students), p.cfg.Shortname, p.cfg.TeamCategory)

	contest, err := p.store.ContestByShortname(ctx, p.cfg.Shortname)
	if err != nil {
		return nil, err
	}
	role, err := p.store.RoleByName(ctx, teamRoleName)
	if err != nil {
		return nil, err
	}
	category, err := p.store.TeamCategoryByName(ctx, p.cfg.TeamCategory)
	if err != nil {
		return nil, err
	}

	var credentials []Credential
	var failed []string

	for _, student := range students {
		log.Printf("----------------------------------------------")

		credential, err := p.provisionStudent(ctx, student, contest.ID, role.ID, category.ID)
		if err != nil {
			log.Printf("error while processing student %s: %v", student.PersonCode, err)
			failed = append(failed, student.PersonCode)
			continue
		}

		credentials = append(credentials, *credential)
	}

	if err := WriteCredentialsFile(CredentialsFileName, credentials); err != nil {
		return nil, err
	}

	log.Printf("students for which the insertion failed: %v", failed)
	return failed, nil
}

// provisionStudent runs steps 1-5 of the per-student workflow inside
// one transaction and returns the credential to export. Re-running for
// an already provisioned student finds the existing rows and only
// restores the missing links.
func (p *Provisioner) provisionStudent(ctx context.Context, student roster.Student, contestID, roleID, categoryID int64) (*Credential, error) {
	username := Username(student)
	password, err := GeneratePassword(passwordLength)
	if err != nil {
		return nil, err
	}

	err = p.store.Transaction(ctx, func(tx database.Store) error {
		user, err := tx.UserByUsername(ctx, username)
		switch {
		case errors.Is(err, database.ErrNotFound):
			hashed, err := hashPassword(password)
			if err != nil {
				return err
			}

			user = &models.User{
				Username: username,
				Name:     student.Name,
				Email:    student.Email,
				Password: hashed,
			}
			if err := tx.CreateUser(ctx, user); err != nil {
				return err
			}
			log.Printf("created user %s with ID %d", username, user.ID)

			granted, err := tx.GrantRole(ctx, user.ID, roleID)
			if err != nil {
				return err
			}
			if granted {
				log.Printf("granted role %d to user %d", roleID, user.ID)
			}

		case err != nil:
			return err

		default:
			log.Printf("student %s already exists with ID %d", student.PersonCode, user.ID)

			if p.cfg.AssignNewPasswordToExistingUsers {
				hashed, err := hashPassword(password)
				if err != nil {
					return err
				}
				if err := tx.SetUserPassword(ctx, user.ID, hashed); err != nil {
					return err
				}
				log.Printf("updated password of user %d", user.ID)
			}
		}

		team, err := tx.TeamByName(ctx, username)
		switch {
		case errors.Is(err, database.ErrNotFound):
			team = &models.Team{
				Name:        username,
				DisplayName: student.PersonCode,
				CategoryID:  categoryID,
			}
			if err := tx.CreateTeam(ctx, team); err != nil {
				return err
			}
			log.Printf("created team %s with ID %d", username, team.ID)

		case err != nil:
			return err

		default:
			log.Printf("team %s already exists with ID %d", team.Name, team.ID)
		}

		if err := tx.AssignUserToTeam(ctx, user.ID, team.ID); err != nil {
			return err
		}
		log.Printf("user %d assigned to team %d", user.ID, team.ID)

		enrolled, err := tx.EnrollTeamInContest(ctx, team.ID, contestID)
		if err != nil {
			return err
		}
		if enrolled {
			log.Printf("added team %d to contest %d", team.ID, contestID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Credential{Name: student.Name, Username: username, Password: password}, nil
}

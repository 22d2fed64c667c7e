package harvester

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mscuttari/domjudge-exam-configurator/internal/config"
	"github.com/mscuttari/domjudge-exam-configurator/internal/database"
	"github.com/mscuttari/domjudge-exam-configurator/internal/models"
	"github.com/mscuttari/domjudge-exam-configurator/internal/roster"

	"github.com/google/uuid"
)

const (
	// Prefix prepended to the person code to form the exam username.
	// Must agree with the name the accounts were provisioned under.
	usernamePrefix = "polimi-"

	// DefaultOutputDir is where the per-student folder tree is
	// materialized.
	DefaultOutputDir = "submissions"

	sourceFileName = "main.c"
	reportFileName = "test_cases.txt"
)

// Username derives the judging-system username for a student.
func Username(student roster.Student) string {
	return usernamePrefix + student.PersonCode
}

// Harvester retrieves each student's final graded submission and its
// per-test-case results into a per-student folder tree.
type Harvester struct {
	store     database.Store
	cfg       *config.ExamConfig
	outputDir string
}

func New(store database.Store, cfg *config.ExamConfig, outputDir string) *Harvester {
	return &Harvester{store: store, cfg: cfg, outputDir: outputDir}
}

// Run harvests every student in roster order and returns the person
// codes of the students that failed. A missing or ambiguous contest,
// or an unknown configured problem name, is a broken configuration and
// aborts the whole run with an error before any student is touched.
// Everything else (missing user, query or file failure) is a
// per-student condition: logged, rolled back, loop continues.
func (h *Harvester) Run(ctx context.Context, students []roster.Student) ([]string, error) {
	if len(h.cfg.ProblemNames) == 0 {
		return nil, fmt.Errorf("exam config: missing problem names")
	}

	log.Printf("download run %s: %d students, contest %q, %d problems",
		uuid.NewString(), len(students), h.cfg.Shortname, len(h.cfg.ProblemNames))

	contest, err := h.store.ContestByShortname(ctx, h.cfg.Shortname)
	if err != nil {
		return nil, err
	}

	problems := make([]*models.Problem, 0, len(h.cfg.ProblemNames))
	for _, name := range h.cfg.ProblemNames {
		problem, err := h.store.ProblemByName(ctx, name)
		if err != nil {
			return nil, err
		}
		problems = append(problems, problem)
	}

	var failed []string

	for _, student := range students {
		log.Printf("----------------------------------------------")
		log.Printf("processing student %s", student.PersonCode)

		if err := h.harvestStudent(ctx, student, contest.ID, problems); err != nil {
			log.Printf("error while processing student %s: %v", student.PersonCode, err)
			failed = append(failed, student.PersonCode)
			continue
		}
	}

	log.Printf("students for which the download failed: %v", failed)
	return failed, nil
}

// harvestStudent materializes the selected submission of each problem
// under <outputDir>/<person code>/<problem name>/. Problems without
// any valid judged submission leave no directory behind.
func (h *Harvester) harvestStudent(ctx context.Context, student roster.Student, contestID int64, problems []*models.Problem) error {
	username := Username(student)

	return h.store.Transaction(ctx, func(tx database.Store) error {
		user, err := tx.UserByUsername(ctx, username)
		if err != nil {
			return err
		}

		studentDir := filepath.Join(h.outputDir, student.PersonCode)
		if err := os.MkdirAll(studentDir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", studentDir, err)
		}

		for _, problem := range problems {
			submissions, err := tx.SubmissionsForProblem(ctx, user.ID, contestID, problem.ID)
			if err != nil {
				return err
			}
			log.Printf("found %d submissions for problem %s", len(submissions), problem.Name)

			if len(submissions) == 0 {
				continue
			}

			final := selectFinalSubmission(submissions)
			log.Printf("final submission %d: result %s", final.ID, final.Result)

			testCases, err := tx.TestCaseResults(ctx, final.ID)
			if err != nil {
				return err
			}

			problemDir := filepath.Join(studentDir, problem.Name)
			if err := os.MkdirAll(problemDir, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", problemDir, err)
			}

			sourcePath := filepath.Join(problemDir, sourceFileName)
			if err := os.WriteFile(sourcePath, final.SourceCode, 0o644); err != nil {
				return fmt.Errorf("failed to write source file %s: %w", sourcePath, err)
			}

			reportPath := filepath.Join(problemDir, reportFileName)
			report := FormatReport(final, testCases)
			if err := os.WriteFile(reportPath, []byte(report), 0o644); err != nil {
				return fmt.Errorf("failed to write report %s: %w", reportPath, err)
			}
		}

		return nil
	})
}

// selectFinalSubmission implements the last-correct-else-last-attempt
// policy: scanning newest first, the first correct submission wins;
// with no correct submission the newest one is taken.
func selectFinalSubmission(submissions []models.Submission) models.Submission {
	for _, s := range submissions {
		if s.Result == models.VerdictCorrect {
			return s
		}
	}
	return submissions[0]
}

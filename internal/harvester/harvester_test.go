package harvester

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mscuttari/domjudge-exam-configurator/internal/config"
	"github.com/mscuttari/domjudge-exam-configurator/internal/database"
	"github.com/mscuttari/domjudge-exam-configurator/internal/models"
	"github.com/mscuttari/domjudge-exam-configurator/internal/roster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is a read-only in-memory database.Store: the harvester
// never writes rows, so its transactions are plain pass-through.
type fakeStore struct {
	contests    []models.Contest
	problems    []models.Problem
	users       []models.User
	submissions map[string][]models.Submission // "<userID>/<problemID>", newest first
	testCases   map[int64][]models.TestCaseResult
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		contests: []models.Contest{{ID: 1, Shortname: "exam2026"}},
		problems: []models.Problem{
			{ID: 30, Name: "sorting"},
			{ID: 31, Name: "graphs"},
		},
		users: []models.User{
			{ID: 100, Username: "polimi-10001234"},
		},
		submissions: make(map[string][]models.Submission),
		testCases:   make(map[int64][]models.TestCaseResult),
	}
}

func submissionKey(userID, problemID int64) string {
	return fmt.Sprintf("%d/%d", userID, problemID)
}

func (f *fakeStore) Transaction(ctx context.Context, fn func(database.Store) error) error {
	return fn(f)
}

func (f *fakeStore) ContestByShortname(_ context.Context, shortname string) (*models.Contest, error) {
	var matches []models.Contest
	for _, c := range f.contests {
		if c.Shortname == shortname {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("contest %q: %w", shortname, database.ErrNotFound)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("contest %q: %w", shortname, database.ErrMultipleMatches)
	}
}

func (f *fakeStore) RoleByName(_ context.Context, name string) (*models.Role, error) {
	return nil, fmt.Errorf("role %q: %w", name, database.ErrNotFound)
}

func (f *fakeStore) TeamCategoryByName(_ context.Context, name string) (*models.TeamCategory, error) {
	return nil, fmt.Errorf("team category %q: %w", name, database.ErrNotFound)
}

func (f *fakeStore) ProblemByName(_ context.Context, name string) (*models.Problem, error) {
	for i, p := range f.problems {
		if p.Name == name {
			return &f.problems[i], nil
		}
	}
	return nil, fmt.Errorf("problem %q: %w", name, database.ErrNotFound)
}

func (f *fakeStore) UserByUsername(_ context.Context, username string) (*models.User, error) {
	for i, u := range f.users {
		if u.Username == username {
			return &f.users[i], nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, database.ErrNotFound)
}

func (f *fakeStore) CreateUser(_ context.Context, _ *models.User) error { return nil }

func (f *fakeStore) SetUserPassword(_ context.Context, _ int64, _ string) error { return nil }

func (f *fakeStore) GrantRole(_ context.Context, _, _ int64) (bool, error) { return false, nil }

func (f *fakeStore) TeamByName(_ context.Context, name string) (*models.Team, error) {
	return nil, fmt.Errorf("team %q: %w", name, database.ErrNotFound)
}

func (f *fakeStore) CreateTeam(_ context.Context, _ *models.Team) error { return nil }

func (f *fakeStore) AssignUserToTeam(_ context.Context, _, _ int64) error { return nil }

func (f *fakeStore) EnrollTeamInContest(_ context.Context, _, _ int64) (bool, error) {
	return false, nil
}

func (f *fakeStore) SubmissionsForProblem(_ context.Context, userID, _, problemID int64) ([]models.Submission, error) {
	return f.submissions[submissionKey(userID, problemID)], nil
}

func (f *fakeStore) TestCaseResults(_ context.Context, submissionID int64) ([]models.TestCaseResult, error) {
	return f.testCases[submissionID], nil
}

func examConfig(problems ...string) *config.ExamConfig {
	return &config.ExamConfig{Shortname: "exam2026", ProblemNames: problems}
}

var testStudent = roster.Student{
	PersonCode: "10001234", IDNumber: "987654", Name: "Rossi Mario", Email: "mario.rossi@mail.polimi.it",
}

func strPtr(s string) *string { return &s }

func TestRunSelectsNewestCorrectSubmission(t *testing.T) {
	outputDir := t.TempDir()
	store := newFakeStore()
	store.submissions[submissionKey(100, 30)] = []models.Submission{
		{ID: 4, SubmitTime: 400, SourceCode: []byte("int main() { return 4; }"), Result: "wrong-answer"},
		{ID: 3, SubmitTime: 300, SourceCode: []byte("int main() { return 3; }"), Result: "wrong-answer"},
		{ID: 2, SubmitTime: 200, SourceCode: []byte("int main() { return 0; }"), Result: "correct"},
		{ID: 1, SubmitTime: 100, SourceCode: []byte("int main() { return 1; }"), Result: "wrong-answer"},
	}

	h := New(store, examConfig("sorting"), outputDir)
	failed, err := h.Run(context.Background(), []roster.Student{testStudent})
	require.NoError(t, err)
	assert.Empty(t, failed)

	source, err := os.ReadFile(filepath.Join(outputDir, "10001234", "sorting", "main.c"))
	require.NoError(t, err)
	assert.Equal(t, "int main() { return 0; }", string(source))

	report, err := os.ReadFile(filepath.Join(outputDir, "10001234", "sorting", "test_cases.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(report), "Overall result: correct\n")
}

func TestRunFallsBackToNewestSubmission(t *testing.T) {
	outputDir := t.TempDir()
	store := newFakeStore()
	store.submissions[submissionKey(100, 30)] = []models.Submission{
		{ID: 3, SubmitTime: 300, SourceCode: []byte("int main() { return 3; }"), Result: "wrong-answer"},
		{ID: 2, SubmitTime: 200, SourceCode: []byte("int main() { return 2; }"), Result: "timelimit"},
		{ID: 1, SubmitTime: 100, SourceCode: []byte("int main() { return 1; }"), Result: "wrong-answer"},
	}

	h := New(store, examConfig("sorting"), outputDir)
	failed, err := h.Run(context.Background(), []roster.Student{testStudent})
	require.NoError(t, err)
	assert.Empty(t, failed)

	source, err := os.ReadFile(filepath.Join(outputDir, "10001234", "sorting", "main.c"))
	require.NoError(t, err)
	assert.Equal(t, "int main() { return 3; }", string(source))

	report, err := os.ReadFile(filepath.Join(outputDir, "10001234", "sorting", "test_cases.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(report), "Overall result: wrong-answer\n")
}

func TestRunSkipsProblemsWithoutSubmissions(t *testing.T) {
	outputDir := t.TempDir()
	store := newFakeStore()
	store.submissions[submissionKey(100, 30)] = []models.Submission{
		{ID: 1, SubmitTime: 100, SourceCode: []byte("int main() {}"), Result: "correct"},
	}
	// No submissions at all for "graphs".

	h := New(store, examConfig("sorting", "graphs"), outputDir)
	failed, err := h.Run(context.Background(), []roster.Student{testStudent})
	require.NoError(t, err)
	assert.Empty(t, failed)

	assert.DirExists(t, filepath.Join(outputDir, "10001234", "sorting"))
	assert.NoDirExists(t, filepath.Join(outputDir, "10001234", "graphs"))
	assert.DirExists(t, filepath.Join(outputDir, "10001234"))
}

func TestRunWritesTestCaseReport(t *testing.T) {
	outputDir := t.TempDir()
	store := newFakeStore()
	store.submissions[submissionKey(100, 30)] = []models.Submission{
		{ID: 1, SubmitTime: 100, SourceCode: []byte("int main() {}"), Result: "wrong-answer"},
	}
	store.testCases[1] = []models.TestCaseResult{
		{ID: 11, Rank: 1, Description: []byte("base case"), Result: strPtr("correct")},
		{ID: 12, Rank: 2, Description: []byte("empty input"), Result: nil},
		{ID: 13, Rank: 3, Description: []byte("large input"), Result: strPtr("wrong-answer")},
	}

	h := New(store, examConfig("sorting"), outputDir)
	failed, err := h.Run(context.Background(), []roster.Student{testStudent})
	require.NoError(t, err)
	assert.Empty(t, failed)

	report, err := os.ReadFile(filepath.Join(outputDir, "10001234", "sorting", "test_cases.txt"))
	require.NoError(t, err)

	expected := "Overall result: wrong-answer\n" +
		"Passed 1 tests cases out of 3\n\n" +
		"# Test case 1\n" +
		" - Description: \"base case\"\n" +
		" - Result: correct\n\n" +
		"# Test case 2\n" +
		" - Description: \"empty input\"\n" +
		" - Result: not evaluated\n\n" +
		"# Test case 3\n" +
		" - Description: \"large input\"\n" +
		" - Result: wrong-answer\n\n"
	assert.Equal(t, expected, string(report))
}

func TestRunContinuesAfterMissingUser(t *testing.T) {
	outputDir := t.TempDir()
	store := newFakeStore()
	store.submissions[submissionKey(100, 30)] = []models.Submission{
		{ID: 1, SubmitTime: 100, SourceCode: []byte("int main() {}"), Result: "correct"},
	}

	missing := roster.Student{PersonCode: "10990000", Name: "Neri Paolo"}
	h := New(store, examConfig("sorting"), outputDir)

	failed, err := h.Run(context.Background(), []roster.Student{missing, testStudent})
	require.NoError(t, err)
	assert.Equal(t, []string{"10990000"}, failed)

	assert.FileExists(t, filepath.Join(outputDir, "10001234", "sorting", "main.c"))
	assert.NoDirExists(t, filepath.Join(outputDir, "10990000"))
}

func TestRunAbortsOnUnknownProblem(t *testing.T) {
	outputDir := t.TempDir()
	store := newFakeStore()

	h := New(store, examConfig("sorting", "nonexistent"), outputDir)
	_, err := h.Run(context.Background(), []roster.Student{testStudent})
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrNotFound)

	// A broken problem list aborts before any student is processed.
	assert.NoDirExists(t, filepath.Join(outputDir, "10001234"))
}

func TestRunRequiresProblemNames(t *testing.T) {
	h := New(newFakeStore(), examConfig(), t.TempDir())
	_, err := h.Run(context.Background(), []roster.Student{testStudent})
	require.Error(t, err)
}

func TestSelectFinalSubmission(t *testing.T) {
	correct := models.Submission{ID: 2, Result: "correct"}
	newest := models.Submission{ID: 5, Result: "wrong-answer"}

	assert.Equal(t, correct, selectFinalSubmission([]models.Submission{newest, {ID: 4, Result: "timelimit"}, correct, {ID: 1, Result: "wrong-answer"}}))
	assert.Equal(t, newest, selectFinalSubmission([]models.Submission{newest, {ID: 4, Result: "timelimit"}, {ID: 1, Result: "wrong-answer"}}))
	assert.Equal(t, newest, selectFinalSubmission([]models.Submission{newest}))
}

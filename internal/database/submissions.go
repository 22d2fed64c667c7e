package database

import (
	"context"
	"fmt"

	"github.com/mscuttari/domjudge-exam-configurator/internal/models"
)

// SubmissionsForProblem returns every valid, judged submission of one
// user for one contest problem, newest first. Submissions still in the
// judge queue have no judging row and are excluded by the join.
func (s *gormStore) SubmissionsForProblem(ctx context.Context, userID, contestID, problemID int64) ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.db.WithContext(ctx).
		Table("submission AS s").
		Select("s.submitid, s.submittime, sf.sourcecode, j.result").
		Joins("JOIN submission_file AS sf ON s.submitid = sf.submitid").
		Joins("JOIN judging AS j ON s.submitid = j.submitid").
		Where("s.userid = ? AND s.cid = ? AND s.probid = ? AND s.valid = 1 AND j.valid = 1",
			userID, contestID, problemID).
		Order("s.submittime DESC").
		Scan(&submissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions of user %d for problem %d: %w", userID, problemID, err)
	}

	return submissions, nil
}

// TestCaseResults returns the per-test-case outcomes of one submission
// ordered by test case rank. The run result is nil for test cases the
// judge never evaluated.
func (s *gormStore) TestCaseResults(ctx context.Context, submissionID int64) ([]models.TestCaseResult, error) {
	var results []models.TestCaseResult
	err := s.db.WithContext(ctx).
		Table("submission AS s").
		Select("t.testcaseid, t.ranknumber, t.description, jr.runresult").
		Joins("JOIN judging AS j ON s.submitid = j.submitid").
		Joins("JOIN judging_run AS jr ON j.judgingid = jr.judgingid").
		Joins("JOIN testcase AS t ON jr.testcaseid = t.testcaseid").
		Where("s.submitid = ? AND s.valid = 1 AND j.valid = 1", submissionID).
		Order("t.ranknumber ASC").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch test case results of submission %d: %w", submissionID, err)
	}

	return results, nil
}

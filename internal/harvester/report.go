package harvester

import (
	"fmt"
	"strings"

	"github.com/mscuttari/domjudge-exam-configurator/internal/models"
)

// Shown in place of a verdict for test cases the judge never ran.
const notEvaluated = "not evaluated"

// FormatReport renders the human-readable per-problem report: overall
// verdict, pass count, then one section per test case in rank order.
// The wording is kept identical to what graders already parse.
func FormatReport(final models.Submission, testCases []models.TestCaseResult) string {
	correct := 0
	for _, tc := range testCases {
		if tc.Result != nil && *tc.Result == models.VerdictCorrect {
			correct++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Overall result: %s\n", final.Result)
	fmt.Fprintf(&b, "Passed %d tests cases out of %d\n\n", correct, len(testCases))

	for _, tc := range testCases {
		fmt.Fprintf(&b, "# Test case %d\n", tc.Rank)
		fmt.Fprintf(&b, " - Description: \"%s\"\n", string(tc.Description))

		result := notEvaluated
		if tc.Result != nil {
			result = *tc.Result
		}
		fmt.Fprintf(&b, " - Result: %s\n\n", result)
	}

	return b.String()
}

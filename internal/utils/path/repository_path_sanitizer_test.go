package pathutils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/repoweight/repoweight/internal/utils/path"
)

func TestRepositoryPathSanitizerSanitize(testInstance *testing.T) {
	testCases := []struct {
		name           string
		candidatePaths []string
		expectedPaths  []string
	}{
		{
			name:           "trims_whitespace",
			candidatePaths: []string{"  /tmp/repo  "},
			expectedPaths:  []string{"/tmp/repo"},
		},
		{
			name:           "drops_empty_values",
			candidatePaths: []string{"", "   ", "/tmp/repo"},
			expectedPaths:  []string{"/tmp/repo"},
		},
		{
			name:           "removes_duplicates_keeping_first",
			candidatePaths: []string{"/tmp/repo", "/tmp/other", "/tmp/repo"},
			expectedPaths:  []string{"/tmp/repo", "/tmp/other"},
		},
		{
			name:           "all_empty_yields_nil",
			candidatePaths: []string{"", "  "},
			expectedPaths:  nil,
		},
	}

	sanitizer := pathutils.NewRepositoryPathSanitizer()

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			require.Equal(subtestInstance, testCase.expectedPaths, sanitizer.Sanitize(testCase.candidatePaths))
		})
	}
}

func TestRepositoryPathSanitizerExpandsHomeDirectory(testInstance *testing.T) {
	homeExpander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "/home/example", nil
	})

	sanitizer := pathutils.NewRepositoryPathSanitizerWithExpander(homeExpander)
	sanitizedPaths := sanitizer.Sanitize([]string{"~/projects/repo", "~"})
	require.Equal(testInstance, []string{"/home/example/projects/repo", "/home/example"}, sanitizedPaths)
}

package bloat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyPath(testInstance *testing.T) {
	testCases := []struct {
		name             string
		logicalPath      string
		expectedCategory Category
	}{
		{name: "archive_extension", logicalPath: "vendor/lib.tar.gz", expectedCategory: CategoryArchive},
		{name: "source_file_is_other", logicalPath: "src/app.js", expectedCategory: CategoryOther},
		{name: "empty_path_is_other", logicalPath: "", expectedCategory: CategoryOther},
		{name: "no_extension_is_other", logicalPath: "README", expectedCategory: CategoryOther},
		{name: "extension_match_is_case_insensitive", logicalPath: "assets/LOGO.PNG", expectedCategory: CategoryImage},
		{name: "node_modules_directory_signal", logicalPath: "node_modules/pkg/index", expectedCategory: CategoryNodeModules},
		{name: "node_modules_beats_other_signals", logicalPath: "node_modules/pkg/binary", expectedCategory: CategoryNodeModules},
		{name: "log_extension", logicalPath: "build/output.log", expectedCategory: CategoryLog},
		{name: "package_extension", logicalPath: "dist/app.jar", expectedCategory: CategoryPackage},
		{name: "video_extension", logicalPath: "media/clip.mp4", expectedCategory: CategoryVideo},
		{name: "dotted_directory_without_extension", logicalPath: "dir.with.dots/file", expectedCategory: CategoryOther},
		{name: "binary_directory_signal", logicalPath: "prebuilt/binary/tool", expectedCategory: CategoryBinary},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			require.Equal(subtestInstance, testCase.expectedCategory, classifyPath(testCase.logicalPath))
		})
	}
}

func TestComputeCategoryTotalsConservation(testInstance *testing.T) {
	inventory := []SizedObject{
		{Identifier: "a", LogicalPath: "vendor/lib.tar.gz", SizeBytes: 2_000_000, Category: CategoryArchive},
		{Identifier: "b", LogicalPath: "src/app.js", SizeBytes: 1_000, Category: CategoryOther},
		{Identifier: "c", LogicalPath: "assets/logo.png", SizeBytes: 500, Category: CategoryImage},
		{Identifier: "d", LogicalPath: "assets/banner.png", SizeBytes: 700, Category: CategoryImage},
	}

	totals := computeCategoryTotals(inventory)

	require.Equal(testInstance, uint64(2_000_000), totals[CategoryArchive])
	require.Equal(testInstance, uint64(1_000), totals[CategoryOther])
	require.Equal(testInstance, uint64(1_200), totals[CategoryImage])

	var totalsSum uint64
	for _, categoryTotal := range totals {
		totalsSum += categoryTotal
	}
	var inventorySum uint64
	for _, sizedObject := range inventory {
		inventorySum += sizedObject.SizeBytes
	}
	require.Equal(testInstance, inventorySum, totalsSum)
}

package bloat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func knownSummary(historyStoreBytes uint64, workingTreeBytes uint64) Summary {
	return Summary{
		HistoryStore: DirectoryMeasurement{Bytes: historyStoreBytes, Known: true},
		WorkingTree:  DirectoryMeasurement{Bytes: workingTreeBytes, Known: true},
	}
}

func TestBuildRecommendations(testInstance *testing.T) {
	manyLargeObjects := make([]SizedObject, 0, 11)
	for objectIndex := 0; objectIndex < 11; objectIndex++ {
		manyLargeObjects = append(manyLargeObjects, SizedObject{
			LogicalPath: "data/blob",
			SizeBytes:   11_000_000,
			Category:    CategoryOther,
		})
	}

	testCases := []struct {
		name                    string
		inventory               []SizedObject
		summary                 Summary
		expectedRecommendations []string
	}{
		{
			name:                    "empty_inventory_is_healthy",
			inventory:               nil,
			summary:                 knownSummary(100, 100),
			expectedRecommendations: []string{recommendationHealthy},
		},
		{
			name: "node_modules_path_flags_history_rewrite",
			inventory: []SizedObject{
				{LogicalPath: "web/node_modules/left-pad/index.js", SizeBytes: 10, Category: CategoryNodeModules},
			},
			summary:                 knownSummary(100, 100),
			expectedRecommendations: []string{recommendationNodeModules},
		},
		{
			name: "vendor_directory_flags_removal",
			inventory: []SizedObject{
				{LogicalPath: "vendor/dep/source.go", SizeBytes: 10, Category: CategoryOther},
			},
			summary:                 knownSummary(100, 100),
			expectedRecommendations: []string{recommendationVendoredCode},
		},
		{
			name: "large_media_over_threshold",
			inventory: []SizedObject{
				{LogicalPath: "media/trailer.mp4", SizeBytes: 5_000_001, Category: CategoryVideo},
			},
			summary:                 knownSummary(100, 100),
			expectedRecommendations: []string{recommendationLargeMedia},
		},
		{
			name: "media_at_threshold_does_not_fire",
			inventory: []SizedObject{
				{LogicalPath: "media/trailer.mp4", SizeBytes: 5_000_000, Category: CategoryVideo},
			},
			summary:                 knownSummary(100, 100),
			expectedRecommendations: []string{recommendationHealthy},
		},
		{
			name: "packaged_artifacts_over_threshold",
			inventory: []SizedObject{
				{LogicalPath: "dist/app.jar", SizeBytes: 1_000_001, Category: CategoryPackage},
			},
			summary:                 knownSummary(100, 100),
			expectedRecommendations: []string{recommendationPackagedArtifacts},
		},
		{
			name:                    "store_bloat_ratio_fires_on_known_measurements",
			inventory:               []SizedObject{{LogicalPath: "src/app.js", SizeBytes: 10, Category: CategoryOther}},
			summary:                 knownSummary(6_000_000, 1_000_000),
			expectedRecommendations: []string{recommendationStoreBloatRatio},
		},
		{
			name:      "unknown_working_tree_suppresses_ratio_rule",
			inventory: []SizedObject{{LogicalPath: "src/app.js", SizeBytes: 10, Category: CategoryOther}},
			summary: Summary{
				HistoryStore: DirectoryMeasurement{Bytes: 6_000_000, Known: true},
				WorkingTree:  DirectoryMeasurement{Bytes: 0, Known: false},
			},
			expectedRecommendations: []string{recommendationHealthy},
		},
		{
			name:                    "ratio_at_exact_multiple_does_not_fire",
			inventory:               []SizedObject{{LogicalPath: "src/app.js", SizeBytes: 10, Category: CategoryOther}},
			summary:                 knownSummary(3_000_000, 1_000_000),
			expectedRecommendations: []string{recommendationHealthy},
		},
		{
			name:                    "many_large_objects",
			inventory:               manyLargeObjects,
			summary:                 knownSummary(100, 100),
			expectedRecommendations: []string{recommendationManyLargeObjects},
		},
		{
			name: "all_matching_rules_fire_in_table_order",
			inventory: []SizedObject{
				{LogicalPath: "web/node_modules/pkg/index.js", SizeBytes: 10, Category: CategoryNodeModules},
				{LogicalPath: "vendor/lib.tar.gz", SizeBytes: 2_000_000, Category: CategoryArchive},
				{LogicalPath: "media/trailer.mp4", SizeBytes: 6_000_000, Category: CategoryVideo},
			},
			summary: knownSummary(10_000_000, 1_000_000),
			expectedRecommendations: []string{
				recommendationNodeModules,
				recommendationVendoredCode,
				recommendationLargeMedia,
				recommendationPackagedArtifacts,
				recommendationStoreBloatRatio,
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			require.Equal(subtestInstance, testCase.expectedRecommendations, buildRecommendations(testCase.inventory, testCase.summary))
		})
	}
}

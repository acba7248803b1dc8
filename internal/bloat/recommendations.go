package bloat

import "strings"

// recommendationRule evaluates one aggregate signal. Rules run in a fixed
// order, all matching rules fire, and none are mutually exclusive.
type recommendationRule struct {
	advisory string
	applies  func(inventory []SizedObject, summary Summary) bool
}

var recommendationRules = []recommendationRule{
	{
		advisory: recommendationNodeModules,
		applies: func(inventory []SizedObject, _ Summary) bool {
			return anyPathContains(inventory, nodeModulesPathSignalConstant)
		},
	},
	{
		advisory: recommendationVendoredCode,
		applies: func(inventory []SizedObject, _ Summary) bool {
			return anyPathContains(inventory, vendorDirectoryPathSignal)
		},
	},
	{
		advisory: recommendationLargeMedia,
		applies: func(inventory []SizedObject, _ Summary) bool {
			return anyObjectExceeds(inventory, largeMediaSizeThresholdBytes, CategoryImage, CategoryVideo, CategoryAudio)
		},
	},
	{
		advisory: recommendationPackagedArtifacts,
		applies: func(inventory []SizedObject, _ Summary) bool {
			return anyObjectExceeds(inventory, packagedArtifactThresholdBytes, CategoryPackage, CategoryArchive)
		},
	},
	{
		advisory: recommendationStoreBloatRatio,
		applies: func(_ []SizedObject, summary Summary) bool {
			if !summary.HistoryStore.Known || !summary.WorkingTree.Known {
				return false
			}
			return summary.HistoryStore.Bytes > storeBloatRatioMultiplier*summary.WorkingTree.Bytes
		},
	},
	{
		advisory: recommendationManyLargeObjects,
		applies: func(inventory []SizedObject, _ Summary) bool {
			largeObjectCount := 0
			for _, sizedObject := range inventory {
				if sizedObject.SizeBytes > largeObjectSizeThresholdBytes {
					largeObjectCount++
				}
			}
			return largeObjectCount > largeObjectCountThreshold
		},
	},
}

// buildRecommendations evaluates every rule against the full inventory and
// summary. The healthy affirmation is emitted only when no rule fired.
func buildRecommendations(inventory []SizedObject, summary Summary) []string {
	advisories := make([]string, 0, len(recommendationRules))
	for _, rule := range recommendationRules {
		if rule.applies(inventory, summary) {
			advisories = append(advisories, rule.advisory)
		}
	}
	if len(advisories) == 0 {
		return []string{recommendationHealthy}
	}
	return advisories
}

func anyPathContains(inventory []SizedObject, pathSignal string) bool {
	for _, sizedObject := range inventory {
		if strings.Contains(sizedObject.LogicalPath, pathSignal) {
			return true
		}
	}
	return false
}

func anyObjectExceeds(inventory []SizedObject, sizeThresholdBytes uint64, categories ...Category) bool {
	for _, sizedObject := range inventory {
		if sizedObject.SizeBytes <= sizeThresholdBytes {
			continue
		}
		for _, category := range categories {
			if sizedObject.Category == category {
				return true
			}
		}
	}
	return false
}

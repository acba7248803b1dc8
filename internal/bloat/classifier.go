package bloat

import (
	"path/filepath"
	"strings"
)

// extensionCategories maps lowercase file extensions to content categories.
var extensionCategories = map[string]Category{
	".bin":     CategoryBinary,
	".exe":     CategoryBinary,
	".dll":     CategoryBinary,
	".so":      CategoryBinary,
	".dylib":   CategoryBinary,
	".o":       CategoryBinary,
	".a":       CategoryBinary,
	".class":   CategoryBinary,
	".wasm":    CategoryBinary,
	".zip":     CategoryArchive,
	".tar":     CategoryArchive,
	".gz":      CategoryArchive,
	".tgz":     CategoryArchive,
	".bz2":     CategoryArchive,
	".xz":      CategoryArchive,
	".zst":     CategoryArchive,
	".7z":      CategoryArchive,
	".rar":     CategoryArchive,
	".png":     CategoryImage,
	".jpg":     CategoryImage,
	".jpeg":    CategoryImage,
	".gif":     CategoryImage,
	".bmp":     CategoryImage,
	".tiff":    CategoryImage,
	".webp":    CategoryImage,
	".ico":     CategoryImage,
	".svg":     CategoryImage,
	".psd":     CategoryImage,
	".mp4":     CategoryVideo,
	".mov":     CategoryVideo,
	".avi":     CategoryVideo,
	".mkv":     CategoryVideo,
	".webm":    CategoryVideo,
	".wmv":     CategoryVideo,
	".mp3":     CategoryAudio,
	".wav":     CategoryAudio,
	".flac":    CategoryAudio,
	".ogg":     CategoryAudio,
	".m4a":     CategoryAudio,
	".aac":     CategoryAudio,
	".csv":     CategoryData,
	".json":    CategoryData,
	".xml":     CategoryData,
	".parquet": CategoryData,
	".sqlite":  CategoryData,
	".db":      CategoryData,
	".dat":     CategoryData,
	".pdf":     CategoryDocument,
	".doc":     CategoryDocument,
	".docx":    CategoryDocument,
	".xls":     CategoryDocument,
	".xlsx":    CategoryDocument,
	".ppt":     CategoryDocument,
	".pptx":    CategoryDocument,
	".jar":     CategoryPackage,
	".war":     CategoryPackage,
	".whl":     CategoryPackage,
	".gem":     CategoryPackage,
	".nupkg":   CategoryPackage,
	".deb":     CategoryPackage,
	".rpm":     CategoryPackage,
	".apk":     CategoryPackage,
	".log":     CategoryLog,
}

// categorySubstringSignal pairs a category with the path fragment that marks it
// when no extension matches. Order matters: the first matching signal wins.
type categorySubstringSignal struct {
	category Category
	signal   string
}

var categorySubstringSignals = []categorySubstringSignal{
	{category: CategoryNodeModules, signal: nodeModulesPathSignalConstant},
	{category: CategoryBinary, signal: string(CategoryBinary)},
	{category: CategoryArchive, signal: string(CategoryArchive)},
	{category: CategoryImage, signal: string(CategoryImage)},
	{category: CategoryVideo, signal: string(CategoryVideo)},
	{category: CategoryAudio, signal: string(CategoryAudio)},
	{category: CategoryData, signal: string(CategoryData)},
	{category: CategoryDocument, signal: string(CategoryDocument)},
	{category: CategoryPackage, signal: string(CategoryPackage)},
	{category: CategoryLog, signal: string(CategoryLog)},
}

// classifyPath assigns exactly one category to any logical path. Extension
// lookup runs first; substring signals catch directory-name hints extension
// matching misses. Unmatched paths classify as other.
func classifyPath(logicalPath string) Category {
	loweredPath := strings.ToLower(logicalPath)

	extension := filepath.Ext(loweredPath)
	if len(extension) > 0 {
		if category, found := extensionCategories[extension]; found {
			return category
		}
	}

	for _, substringSignal := range categorySubstringSignals {
		if strings.Contains(loweredPath, substringSignal.signal) {
			return substringSignal.category
		}
	}

	return CategoryOther
}

// computeCategoryTotals rolls up per-category byte totals over the full inventory.
func computeCategoryTotals(inventory []SizedObject) map[Category]uint64 {
	totals := make(map[Category]uint64, categoryCountConstant)
	for _, sizedObject := range inventory {
		totals[sizedObject.Category] += sizedObject.SizeBytes
	}
	return totals
}

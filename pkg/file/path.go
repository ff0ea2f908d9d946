package file

import (
	"path/filepath"
	"strings"
)

// Stem returns the file name without directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}

// OutputPath builds the destination path for a translated file:
// {stem}_{lowercased target}{ext}, placed in outputDir when given,
// otherwise next to the input file.
func OutputPath(inputPath, outputDir, targetLang string) string {
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}

	name := Stem(inputPath) + "_" + strings.ToLower(targetLang) + filepath.Ext(inputPath)
	return filepath.Join(dir, name)
}

// ReplaceExt swaps the extension of path for ext, adding a leading dot
// when ext lacks one.
func ReplaceExt(path, ext string) string {
	if path == "" {
		return path
	}

	dir := filepath.Dir(path)
	filename := filepath.Base(path)

	lastDot := strings.LastIndex(filename, ".")

	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	if lastDot <= 0 {
		return filepath.Join(dir, filename+ext)
	}

	return filepath.Join(dir, filename[:lastDot]+ext)
}

package distribute

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// TitleFromFile derives a presentable title from a video filename: the stem
// with separators normalized to spaces and words title-cased.
func TitleFromFile(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(stem)
	stem = strings.Join(strings.Fields(stem), " ")
	if stem == "" {
		return "Untitled"
	}
	return titleCaser.String(stem)
}

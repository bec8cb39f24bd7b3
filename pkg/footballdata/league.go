package footballdata

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LeagueLabel turns a league directory name into a display label,
// ie "liga-portugal" becomes "Liga Portugal"
func LeagueLabel(dirName string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(dirName, "-", " "))
}

// LeagueSlug is the directory name for a label, the inverse of LeagueLabel for lower-case names
func LeagueSlug(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), "-"))
}

// LeagueDirs lists the league subdirectories of the datasets root, by name
func LeagueDirs(datasetsDir string) ([]string, error) {
	entries, err := os.ReadDir(datasetsDir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read datasets directory %s", datasetsDir)
	}
	dirs := lo.Filter(entries, func(e os.DirEntry, _ int) bool { return e.IsDir() })
	return lo.Map(dirs, func(e os.DirEntry, _ int) string {
		return filepath.Join(datasetsDir, e.Name())
	}), nil
}

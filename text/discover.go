package text

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultFontNames lists the font files FindSystemFonts looks for.
var DefaultFontNames = []string{
	"arial.ttf", "Arial.ttf", "times.ttf", "Times.ttf",
	"calibri.ttf", "Calibri.ttf", "helvetica.ttf", "Helvetica.ttf",
	"DejaVuSans.ttf", "LiberationSans-Regular.ttf",
}

// DefaultFontDirs returns the usual font directories of the running OS.
func DefaultFontDirs() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{`C:\Windows\Fonts`, `C:\Windows\System32\Fonts`}
	case "darwin":
		return []string{"/System/Library/Fonts", "/Library/Fonts", "~/Library/Fonts"}
	default:
		return []string{"/usr/share/fonts", "/usr/local/share/fonts", "~/.fonts", "~/.local/share/fonts"}
	}
}

// FindSystemFonts returns the files named in names that exist directly in
// one of dirs or in any subdirectory of it. A leading "~" in a directory is
// expanded to the user's home directory. Unreadable directories are ignored.
func FindSystemFonts(dirs, names []string) []string {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var found []string
	seen := make(map[string]bool)
	for _, dir := range dirs {
		dir = expandHome(dir)
		_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				if path == dir {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !want[d.Name()] || seen[path] {
				return nil
			}
			seen[path] = true
			found = append(found, path)
			return nil
		})
	}
	return found
}

func expandHome(dir string) string {
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return dir
	}
	return filepath.Join(home, strings.TrimPrefix(dir, "~"))
}

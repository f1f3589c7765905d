package text

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindSystemFonts(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "truetype", "dejavu")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{
		filepath.Join(root, "Arial.ttf"),
		filepath.Join(nested, "DejaVuSans.ttf"),
		filepath.Join(nested, "Other.ttf"),
	} {
		if err := os.WriteFile(p, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	got := FindSystemFonts([]string{root, filepath.Join(root, "missing")}, DefaultFontNames)
	if len(got) != 2 {
		t.Fatalf("FindSystemFonts = %v, want 2 files", got)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/.fonts"); got != filepath.Join(home, ".fonts") {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("/usr/share/fonts"); got != "/usr/share/fonts" {
		t.Errorf("expandHome changed absolute path: %q", got)
	}
}

package epidemic

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestEpidemicDoesNotImportInternal enforces the layering rule that the
// progression engine stays consumable on its own: nothing under pkg/ may
// depend on internal implementation packages.
func TestEpidemicDoesNotImportInternal(t *testing.T) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: false}
	pkgs, err := packages.Load(cfg, "epicore/pkg/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	var violations []string
	for _, pkg := range pkgs {
		for importPath := range pkg.Imports {
			if strings.HasPrefix(importPath, "epicore/internal/") {
				violations = append(violations, pkg.PkgPath+": "+importPath)
			}
		}
	}
	if len(violations) > 0 {
		sort.Strings(violations)
		for _, v := range violations {
			t.Errorf("forbidden internal import: %s", v)
		}
		t.Fatalf("found %d forbidden internal imports", len(violations))
	}
}

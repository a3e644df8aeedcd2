package analyzer

import (
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

const initFile = "__init__.py"

// AnalyzePackage extracts the public surface of a package directory. The
// directory must contain an __init__.py; without one the result is an
// empty report. The __init__.py seeds the functions, classes, and
// constants; names re-exported from sibling modules are appended to the
// constants; sibling .py files are cataloged as submodules and each is
// analyzed for its public functions and classes.
func AnalyzePackage(dir string) PackageReport {
	initPath := filepath.Join(dir, initFile)
	if _, err := os.Stat(initPath); err != nil {
		return PackageReport{}
	}

	report := PackageReport{ModuleReport: AnalyzeModule(initPath)}

	if source, err := os.ReadFile(initPath); err == nil {
		for _, name := range scanReexports(source) {
			if !report.hasName(name) {
				report.Constants = append(report.Constants, name)
			}
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return report
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) != ".py" || name == initFile || strings.HasPrefix(name, "_") {
			continue
		}

		subName := strings.TrimSuffix(name, ".py")
		report.Submodules = append(report.Submodules, subName)

		sub := AnalyzeModule(filepath.Join(dir, name))
		if len(sub.Functions) > 0 || len(sub.Classes) > 0 {
			if report.SubmoduleReports == nil {
				report.SubmoduleReports = make(map[string]ModuleReport)
			}
			// Submodule catalogs carry functions and classes only.
			report.SubmoduleReports[subName] = ModuleReport{
				Functions: sub.Functions,
				Classes:   sub.Classes,
			}
		}
	}

	return report
}

// hasName reports whether name is already captured as a function, class,
// or constant.
func (r *PackageReport) hasName(name string) bool {
	for _, fn := range r.Functions {
		if fn.Name == name {
			return true
		}
	}
	for _, cls := range r.Classes {
		if cls.Name == name {
			return true
		}
	}
	for _, c := range r.Constants {
		if c == name {
			return true
		}
	}
	return false
}

// scanReexports collects the local names bound by top-level relative
// imports (`from .sub import name` or `from . import name [as alias]`) in
// an aggregation file. Wildcard imports and underscore-prefixed names are
// skipped.
func scanReexports(source []byte) []string {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(pythonLanguage)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil
	}

	var names []string
	for i := 0; i < int(root.ChildCount()); i++ {
		stmt := root.Child(uint(i))
		if stmt.Kind() != "import_from_statement" {
			continue
		}

		module := stmt.ChildByFieldName("module_name")
		if module == nil || module.Kind() != "relative_import" {
			continue
		}

		for j := 0; j < int(stmt.ChildCount()); j++ {
			item := stmt.Child(uint(j))

			var exported string
			switch item.Kind() {
			case "dotted_name":
				// The module path itself is also a dotted_name; only
				// names after the import keyword bind locally.
				if item.StartByte() > module.EndByte() {
					exported = nodeText(item, source)
				}
			case "aliased_import":
				if alias := item.ChildByFieldName("alias"); alias != nil {
					exported = nodeText(alias, source)
				}
			case "wildcard_import":
				continue
			}

			if exported == "" || strings.Contains(exported, ".") || strings.HasPrefix(exported, "_") {
				continue
			}
			names = append(names, exported)
		}
	}

	return names
}

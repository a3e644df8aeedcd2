package analyzer

// Report is the result of analyzing a source path. It is either a
// ModuleReport (single .py file) or a PackageReport (directory with an
// __init__.py). Callers switch on the concrete type.
type Report interface {
	isReport()
}

// Parameter describes one positional parameter of a function or method.
// Only the presence of a default value is recorded, never the value itself.
type Parameter struct {
	Name       string
	HasDefault bool
}

// Function describes a public top-level function or class method.
type Function struct {
	Name       string
	Parameters []Parameter
	Doc        string // first line of the docstring, may be empty
}

// Class describes a public top-level class and its public methods.
type Class struct {
	Name    string
	Methods []Function
	Doc     string
}

// ModuleReport is the public surface of a single Python module. All
// sequences preserve declaration order; underscore-prefixed names are
// never included.
type ModuleReport struct {
	Functions []Function
	Classes   []Class
	Constants []string
}

func (ModuleReport) isReport() {}

// IsEmpty reports whether the module has no public surface. An unparsable
// file and a genuinely empty module both produce an empty report.
func (r ModuleReport) IsEmpty() bool {
	return len(r.Functions) == 0 && len(r.Classes) == 0 && len(r.Constants) == 0
}

// PackageReport is the public surface of a package directory: the exports
// of its __init__.py plus a catalog of sibling submodules.
type PackageReport struct {
	ModuleReport
	Submodules       []string
	SubmoduleReports map[string]ModuleReport
}

func (PackageReport) isReport() {}

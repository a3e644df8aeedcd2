package analyzer

import (
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

var pythonLanguage = sitter.NewLanguage(python.Language())

// Analyze inspects a path and returns a ModuleReport for a single .py file
// or a PackageReport for a directory. Analysis is best effort: unreadable,
// unparsable, or otherwise unusable input yields an empty report rather
// than an error.
func Analyze(path string) Report {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return AnalyzePackage(path)
	}
	return AnalyzeModule(path)
}

// AnalyzeModule extracts the public surface of a single Python file:
// top-level functions, classes with their methods, and simple constant
// assignments. Underscore-prefixed names are excluded and declaration
// order is preserved.
func AnalyzeModule(path string) ModuleReport {
	if filepath.Ext(path) != ".py" {
		return ModuleReport{}
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return ModuleReport{}
	}

	return analyzeSource(source)
}

// analyzeSource parses Python source and walks only the top-level
// statements of the module node.
func analyzeSource(source []byte) ModuleReport {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(pythonLanguage)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return ModuleReport{}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return ModuleReport{}
	}

	report := ModuleReport{}

	for i := 0; i < int(root.ChildCount()); i++ {
		stmt := unwrapDecorated(root.Child(uint(i)))

		switch stmt.Kind() {
		case "function_definition":
			if fn, ok := extractFunction(stmt, source); ok {
				report.Functions = append(report.Functions, fn)
			}
		case "class_definition":
			if cls, ok := extractClass(stmt, source); ok {
				report.Classes = append(report.Classes, cls)
			}
		case "expression_statement":
			if name, ok := extractConstant(stmt, source); ok {
				report.Constants = append(report.Constants, name)
			}
		}
	}

	return report
}

// unwrapDecorated returns the wrapped definition for decorated functions
// and classes, and the node itself otherwise.
func unwrapDecorated(node *sitter.Node) *sitter.Node {
	if node.Kind() == "decorated_definition" {
		if def := node.ChildByFieldName("definition"); def != nil {
			return def
		}
	}
	return node
}

// extractFunction extracts name, parameters, and the first docstring line
// from a function_definition node. Returns ok=false for private names.
func extractFunction(node *sitter.Node, source []byte) (Function, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return Function{}, false
	}

	name := nodeText(nameNode, source)
	if strings.HasPrefix(name, "_") {
		return Function{}, false
	}

	fn := Function{
		Name:       name,
		Parameters: extractParameters(node.ChildByFieldName("parameters"), source),
		Doc:        docstringFirstLine(node.ChildByFieldName("body"), source),
	}

	return fn, true
}

// extractParameters collects positional parameter names with a has-default
// marker. The implicit leading receiver (self or cls) is dropped, as are
// *args / **kwargs and the bare separators.
func extractParameters(paramsNode *sitter.Node, source []byte) []Parameter {
	if paramsNode == nil {
		return nil
	}

	var params []Parameter
	for i := 0; i < int(paramsNode.ChildCount()); i++ {
		child := paramsNode.Child(uint(i))

		switch child.Kind() {
		case "identifier":
			params = append(params, Parameter{Name: nodeText(child, source)})
		case "typed_parameter":
			if id := findChildByKind(child, "identifier"); id != nil {
				params = append(params, Parameter{Name: nodeText(id, source)})
			}
		case "default_parameter", "typed_default_parameter":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				params = append(params, Parameter{
					Name:       nodeText(nameNode, source),
					HasDefault: true,
				})
			}
		}
	}

	if len(params) > 0 && (params[0].Name == "self" || params[0].Name == "cls") {
		params = params[1:]
	}

	return params
}

// extractClass extracts a class_definition node: name, docstring, and
// public methods from the class body.
func extractClass(node *sitter.Node, source []byte) (Class, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return Class{}, false
	}

	name := nodeText(nameNode, source)
	if strings.HasPrefix(name, "_") {
		return Class{}, false
	}

	cls := Class{Name: name}

	body := node.ChildByFieldName("body")
	if body == nil {
		return cls, true
	}

	cls.Doc = docstringFirstLine(body, source)

	for i := 0; i < int(body.ChildCount()); i++ {
		stmt := unwrapDecorated(body.Child(uint(i)))
		if stmt.Kind() != "function_definition" {
			continue
		}
		if method, ok := extractFunction(stmt, source); ok {
			cls.Methods = append(cls.Methods, method)
		}
	}

	return cls, true
}

// extractConstant matches a plain top-level `NAME = <literal>` assignment
// and returns the assigned name. Computed right-hand sides are skipped.
func extractConstant(stmt *sitter.Node, source []byte) (string, bool) {
	assign := findChildByKind(stmt, "assignment")
	if assign == nil {
		return "", false
	}

	left := assign.ChildByFieldName("left")
	right := assign.ChildByFieldName("right")
	if left == nil || right == nil || left.Kind() != "identifier" {
		return "", false
	}

	name := nodeText(left, source)
	if strings.HasPrefix(name, "_") {
		return "", false
	}

	if !isLiteral(right.Kind()) {
		return "", false
	}

	return name, true
}

// isLiteral reports whether a node kind is a simple Python literal.
func isLiteral(kind string) bool {
	switch kind {
	case "string", "concatenated_string", "integer", "float", "true", "false", "none":
		return true
	}
	return false
}

// docstringFirstLine returns the first non-empty line of the docstring
// attached to a function or class body, or "" when there is none.
func docstringFirstLine(body *sitter.Node, source []byte) string {
	if body == nil {
		return ""
	}

	var first *sitter.Node
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))
		if child.Kind() == "comment" {
			continue
		}
		first = child
		break
	}

	if first == nil || first.Kind() != "expression_statement" {
		return ""
	}

	str := findChildByKind(first, "string")
	if str == nil {
		return ""
	}

	content := findChildByKind(str, "string_content")
	if content == nil {
		return ""
	}

	for _, line := range strings.Split(nodeText(content, source), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// nodeText extracts the text content of a tree-sitter node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// findChildByKind finds the first child node with the given kind.
func findChildByKind(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

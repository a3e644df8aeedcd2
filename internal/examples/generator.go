// Package examples turns analyzer reports into display-ready usage lines.
// Blank lines are visual separators and lines starting with "#" are
// documentation or headers; everything else is example code. The generator
// never executes or imports the analyzed module.
package examples

import (
	"fmt"
	"strings"

	"github.com/nopkg/nopkg/internal/analyzer"
)

// Caps on how much of a large report gets rendered.
const (
	maxImportNames      = 6 // names per from-import, wrapped after maxInlineNames
	maxInlineNames      = 3
	maxExampleFuncs     = 3
	maxExampleClasses   = 2
	maxExampleMethods   = 2
	maxSubmoduleFuncs   = 2
	maxSubmoduleClasses = 1
)

// Generate produces usage lines for a report under the given module or
// package name. An empty report yields exactly the base import statement.
func Generate(subject string, report analyzer.Report) []string {
	switch r := report.(type) {
	case analyzer.PackageReport:
		return generatePackage(subject, r)
	case analyzer.ModuleReport:
		return generateModule(subject, r)
	default:
		return []string{"import " + subject}
	}
}

func generateModule(subject string, r analyzer.ModuleReport) []string {
	lines := []string{"import " + subject}

	lines = append(lines, fromImport(subject, functionNames(r.Functions))...)
	lines = append(lines, fromImport(subject, classNames(r.Classes))...)

	usage := usageBlocks(subject, r)
	if len(usage) > 0 {
		lines = append(lines, "", "# Usage examples:")
		lines = append(lines, usage...)
	}

	return lines
}

func generatePackage(subject string, r analyzer.PackageReport) []string {
	lines := generateModule(subject, r.ModuleReport)

	if len(r.Submodules) == 0 {
		return lines
	}

	lines = append(lines, "", "# Submodules:")
	for _, sub := range r.Submodules {
		lines = append(lines, fmt.Sprintf("import %s.%s", subject, sub))
		lines = append(lines, submoduleUsage(subject+"."+sub, r.SubmoduleReports[sub])...)
	}

	return lines
}

// fromImport renders a from-import for the given names: one to three names
// stay inline, more wrap across two lines. Names beyond the import cap are
// dropped.
func fromImport(subject string, names []string) []string {
	if len(names) == 0 {
		return nil
	}
	if len(names) > maxImportNames {
		names = names[:maxImportNames]
	}

	if len(names) <= maxInlineNames {
		return []string{fmt.Sprintf("from %s import %s", subject, strings.Join(names, ", "))}
	}

	return []string{
		fmt.Sprintf("from %s import (%s,", subject, strings.Join(names[:maxInlineNames], ", ")),
		fmt.Sprintf("    %s)", strings.Join(names[maxInlineNames:], ", ")),
	}
}

// usageBlocks renders per-function and per-class example blocks separated
// by blank lines.
func usageBlocks(subject string, r analyzer.ModuleReport) []string {
	var blocks [][]string

	for _, fn := range capFuncs(r.Functions, maxExampleFuncs) {
		blocks = append(blocks, functionBlock(subject, fn))
	}
	for _, cls := range capClasses(r.Classes, maxExampleClasses) {
		blocks = append(blocks, classBlock(subject, cls))
	}

	var lines []string
	for i, block := range blocks {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, block...)
	}
	return lines
}

// functionBlock emits the documentation comment when present, the declared
// signature as a comment, and a concrete call built from suggested values.
func functionBlock(subject string, fn analyzer.Function) []string {
	var block []string
	if fn.Doc != "" {
		block = append(block, fmt.Sprintf("# %s: %s", fn.Name, fn.Doc))
	}
	block = append(block, "# "+renderSignature(subject, fn))
	block = append(block, renderCall(subject+"."+fn.Name, fn.Parameters))
	return block
}

func classBlock(subject string, cls analyzer.Class) []string {
	var block []string
	if cls.Doc != "" {
		block = append(block, fmt.Sprintf("# %s: %s", cls.Name, cls.Doc))
	}
	block = append(block, fmt.Sprintf("obj = %s.%s()", subject, cls.Name))

	for _, m := range capFuncs(cls.Methods, maxExampleMethods) {
		block = append(block, renderCall("obj."+m.Name, m.Parameters))
	}
	return block
}

// submoduleUsage renders a short nested usage sample for one submodule.
func submoduleUsage(qualified string, r analyzer.ModuleReport) []string {
	var lines []string
	for _, fn := range capFuncs(r.Functions, maxSubmoduleFuncs) {
		lines = append(lines, renderCall(qualified+"."+fn.Name, fn.Parameters))
	}
	for _, cls := range capClasses(r.Classes, maxSubmoduleClasses) {
		lines = append(lines, fmt.Sprintf("obj = %s.%s()", qualified, cls.Name))
	}
	return lines
}

// renderSignature shows the declared parameter list, marking defaulted
// parameters with an ellipsis.
func renderSignature(subject string, fn analyzer.Function) string {
	parts := make([]string, 0, len(fn.Parameters))
	for _, p := range fn.Parameters {
		if p.HasDefault {
			parts = append(parts, p.Name+"=...")
		} else {
			parts = append(parts, p.Name)
		}
	}
	return fmt.Sprintf("%s.%s(%s)", subject, fn.Name, strings.Join(parts, ", "))
}

// renderCall builds a concrete call: defaulted parameters become keyword
// arguments, the rest are passed positionally with suggested literals.
func renderCall(target string, params []analyzer.Parameter) string {
	args := make([]string, 0, len(params))
	for _, p := range params {
		if p.HasDefault {
			args = append(args, p.Name+"="+SuggestValue(p.Name))
		} else {
			args = append(args, SuggestValue(p.Name))
		}
	}
	return fmt.Sprintf("%s(%s)", target, strings.Join(args, ", "))
}

func functionNames(fns []analyzer.Function) []string {
	names := make([]string, 0, len(fns))
	for _, fn := range fns {
		names = append(names, fn.Name)
	}
	return names
}

func classNames(classes []analyzer.Class) []string {
	names := make([]string, 0, len(classes))
	for _, cls := range classes {
		names = append(names, cls.Name)
	}
	return names
}

func capFuncs(fns []analyzer.Function, max int) []analyzer.Function {
	if len(fns) > max {
		return fns[:max]
	}
	return fns
}

func capClasses(classes []analyzer.Class, max int) []analyzer.Class {
	if len(classes) > max {
		return classes[:max]
	}
	return classes
}

package driver

import (
	"sort"

	"gor/interpreter-go/pkg/ast"
)

// ModuleSummary is the serialisable view of a lowered module printed by the
// CLI.
type ModuleSummary struct {
	Path      string            `yaml:"path,omitempty"`
	Package   string            `yaml:"package"`
	Imports   []string          `yaml:"imports"`
	Functions []FunctionSummary `yaml:"functions"`
}

// FunctionSummary describes one entry of the function table.
type FunctionSummary struct {
	Name    string   `yaml:"name"`
	Params  []string `yaml:"params"`
	HasBody bool     `yaml:"has_body"`
	Start   int      `yaml:"start"`
	End     int      `yaml:"end"`
}

// Summarize flattens module into a ModuleSummary with functions sorted by name.
func Summarize(path string, module *ast.Module) ModuleSummary {
	summary := ModuleSummary{
		Path:      path,
		Imports:   make([]string, 0),
		Functions: make([]FunctionSummary, 0),
	}
	if module == nil {
		return summary
	}
	summary.Package = module.Package.String()
	for _, imp := range module.Imports {
		summary.Imports = append(summary.Imports, imp.String())
	}
	for _, fn := range module.Functions {
		params := make([]string, 0, len(fn.Params))
		for _, param := range fn.Params {
			params = append(params, param.Name.String())
		}
		span := fn.Span()
		summary.Functions = append(summary.Functions, FunctionSummary{
			Name:    fn.Name.String(),
			Params:  params,
			HasBody: fn.Body != nil,
			Start:   span.Start,
			End:     span.End,
		})
	}
	sort.Slice(summary.Functions, func(i, j int) bool {
		return summary.Functions[i].Name < summary.Functions[j].Name
	})
	return summary
}

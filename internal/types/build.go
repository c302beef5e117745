package types

type Macro struct {
	Name  string
	Value string
}

// BuildDescriptor is everything the toolchain needs to compile one
// extension module: expanded sources, merged include dirs, macros,
// flags and link libraries.  Contains no conditionals; all gating
// happened during graph building.
type BuildDescriptor struct {
	Module        string
	Sources       []string
	IncludeDirs   []string
	Macros        []Macro
	CompileFlags  []string
	LinkLibraries []string
}

type SkippedModule struct {
	Module  string
	Missing []string
}

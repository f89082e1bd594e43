// Package analyze is responsible for the two semantic passes of the Mini
// front end: name analysis, which binds every identifier occurrence to a
// declaration through scoped symbol tables, and type analysis, which
// computes and checks a static type for every construct.
package analyze

import (
	"fmt"

	"github.com/frozendustbunny/Magic4/ast"
	"github.com/frozendustbunny/Magic4/span"
	"github.com/frozendustbunny/Magic4/symtab"
)

// Analyzer holds the state shared by the passes over one compilation unit.
// User errors always degrade to a reported diagnostic plus a best-effort
// continuation; a panic out of this package means the traversal itself is
// buggy, never that the analyzed program is.
type Analyzer struct {
	sink *Sink

	// curfn is the signature of the function whose body is being
	// type-checked. Mini has no nested functions, so one value suffices.
	curfn *symtab.FnSym
}

func New(fn string) *Analyzer {
	return &Analyzer{sink: NewSink(fn)}
}

func (a *Analyzer) Sink() *Sink {
	return a.sink
}

// Analyze runs both passes in order. Type analysis only runs when name
// analysis reported nothing, since types would otherwise be computed
// against broken bindings; the sink's failed flag is reset in between. The
// full diagnostic log is returned either way.
func (a *Analyzer) Analyze(prog *ast.Program) []*Diagnostic {
	a.AnalyzeNames(prog)
	if a.sink.Failed() {
		return a.sink.Diagnostics()
	}
	a.sink.Reset()
	a.AnalyzeTypes(prog)
	return a.sink.Diagnostics()
}

func (a *Analyzer) errorf(pos span.Pos, format string, va ...interface{}) {
	a.sink.Report(pos, fmt.Errorf(format, va...))
}

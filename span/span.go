// Package span locates syntax tree leaves in the original source text.
package span

import "fmt"

// Pos is a single (line, column) position. The parser counts both from 1;
// the zero value marks nodes which carry no position of their own.
type Pos struct {
	Line, Col int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

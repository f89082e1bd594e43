package astjson

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/require"

	"github.com/frozendustbunny/Magic4/ast"
)

const sampleDoc = `{
  "kind": "program",
  "decls": [
    {
      "kind": "structdecl",
      "id": {"kind": "id", "line": 1, "col": 8, "name": "pair"},
      "fields": [
        {
          "kind": "vardecl",
          "type": {"kind": "int"},
          "id": {"kind": "id", "line": 1, "col": 19, "name": "x"}
        }
      ]
    },
    {
      "kind": "fndecl",
      "ret": {"kind": "void"},
      "id": {"kind": "id", "line": 3, "col": 6, "name": "main"},
      "formals": [
        {
          "kind": "vardecl",
          "type": {"kind": "bool"},
          "id": {"kind": "id", "line": 3, "col": 16, "name": "flag"}
        }
      ],
      "decls": [
        {
          "kind": "vardecl",
          "type": {"kind": "struct", "id": {"kind": "id", "line": 4, "col": 12, "name": "pair"}},
          "id": {"kind": "id", "line": 4, "col": 17, "name": "p"}
        }
      ],
      "stmts": [
        {
          "kind": "if",
          "cond": {"kind": "id", "line": 5, "col": 9, "name": "flag"},
          "decls": [],
          "stmts": [
            {
              "kind": "assign",
              "lhs": {
                "kind": "dot",
                "loc": {"kind": "id", "line": 6, "col": 9, "name": "p"},
                "id": {"kind": "id", "line": 6, "col": 11, "name": "x"}
              },
              "rhs": {
                "kind": "binary",
                "op": "plus",
                "left": {"kind": "intlit", "line": 6, "col": 15, "int": 1},
                "right": {"kind": "intlit", "line": 6, "col": 19, "int": 2}
              }
            }
          ]
        },
        {
          "kind": "write",
          "exp": {"kind": "strlit", "line": 8, "col": 13, "str": "done"}
        },
        {"kind": "return", "line": 9, "col": 5}
      ]
    }
  ]
}`

func TestDecode(t *testing.T) {
	prog, err := Decode(strings.NewReader(sampleDoc))
	require.NoError(t, err)
	require.Len(t, prog.Decls.Decls, 2)

	sd, ok := prog.Decls.Decls[0].(*ast.StructDecl)
	require.True(t, ok)
	require.Equal(t, "pair", sd.Id.Name)
	require.Len(t, sd.Fields.Decls, 1)

	fn, ok := prog.Decls.Decls[1].(*ast.FnDecl)
	require.True(t, ok)
	require.Equal(t, "main", fn.Id.Name)
	require.Equal(t, 3, fn.Id.P.Line)
	require.Equal(t, 6, fn.Id.P.Col)
	require.Len(t, fn.Formals.Formals, 1)
	require.Len(t, fn.Body.Stmts.Stmts, 3)

	ret, ok := fn.Body.Stmts.Stmts[2].(*ast.ReturnStmt)
	require.True(t, ok)
	require.Nil(t, ret.Exp)
}

func TestRoundTrip(t *testing.T) {
	first, err := Decode(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, Encode(buf, first))

	second, err := Decode(buf)
	require.NoError(t, err)
	require.Nil(t, deep.Equal(first, second))
}

func TestDecodeErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		doc  string
	}{
		{"not json", "{nope"},
		{"wrong root", `{"kind": "vardecl"}`},
		{"unknown decl", `{"kind": "program", "decls": [{"kind": "classdecl"}]}`},
		{"unknown exp", `{"kind": "program", "decls": [
			{"kind": "fndecl", "ret": {"kind": "void"},
			 "id": {"kind": "id", "line": 1, "col": 6, "name": "f"},
			 "stmts": [{"kind": "write", "exp": {"kind": "lambda"}}]}]}`},
		{"bad binop", `{"kind": "program", "decls": [
			{"kind": "fndecl", "ret": {"kind": "void"},
			 "id": {"kind": "id", "line": 1, "col": 6, "name": "f"},
			 "stmts": [{"kind": "write", "exp": {"kind": "binary", "op": "xor",
			   "left": {"kind": "intlit", "line": 2, "col": 3, "int": 1},
			   "right": {"kind": "intlit", "line": 2, "col": 7, "int": 2}}}]}]}`},
		{"nameless id", `{"kind": "program", "decls": [
			{"kind": "vardecl", "type": {"kind": "int"}, "id": {"kind": "id"}}]}`},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			require.ErrorIs(t, err, ErrBadDocument)
		})
	}
}

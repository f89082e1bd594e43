package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchesPrimitives(t *testing.T) {
	require.True(t, New(TYPE_INT).Matches(New(TYPE_INT)))
	require.True(t, New(TYPE_BOOL).Matches(New(TYPE_BOOL)))
	require.False(t, New(TYPE_INT).Matches(New(TYPE_BOOL)))
	require.False(t, New(TYPE_VOID).Matches(New(TYPE_INT)))
}

func TestErrorAbsorbs(t *testing.T) {
	e := New(TYPE_ERROR)
	for _, k := range []*Type{
		New(TYPE_INT),
		New(TYPE_BOOL),
		New(TYPE_VOID),
		New(TYPE_STRING),
		NewStructVar("pair"),
		NewFunction(nil, New(TYPE_VOID)),
		New(TYPE_ERROR),
	} {
		require.True(t, e.Matches(k), "error sentinel must match %s", k)
		require.True(t, k.Matches(e), "%s must match the error sentinel", k)
	}
}

func TestMatchesStructs(t *testing.T) {
	require.True(t, NewStructVar("pair").Matches(NewStructVar("pair")))
	require.False(t, NewStructVar("pair").Matches(NewStructVar("point")))
	// A layout name and a variable of that layout are different kinds.
	require.False(t, NewStruct("pair").Matches(NewStructVar("pair")))
}

func TestMatchesFunctions(t *testing.T) {
	ib2v := NewFunction([]*Type{New(TYPE_INT), New(TYPE_BOOL)}, New(TYPE_VOID))
	require.True(t, ib2v.Matches(NewFunction([]*Type{New(TYPE_INT), New(TYPE_BOOL)}, New(TYPE_VOID))))
	require.False(t, ib2v.Matches(NewFunction([]*Type{New(TYPE_INT)}, New(TYPE_VOID))))
	require.False(t, ib2v.Matches(NewFunction([]*Type{New(TYPE_INT), New(TYPE_BOOL)}, New(TYPE_INT))))
}

func TestString(t *testing.T) {
	require.Equal(t, "int", New(TYPE_INT).String())
	require.Equal(t, "pair", NewStructVar("pair").String())
	require.Equal(t, "pair", NewStruct("pair").String())
	require.Equal(t,
		"int,bool->void",
		NewFunction([]*Type{New(TYPE_INT), New(TYPE_BOOL)}, New(TYPE_VOID)).String())
	require.Equal(t, "->int", NewFunction(nil, New(TYPE_INT)).String())
}

func TestNewPanicsWithoutPayload(t *testing.T) {
	for _, k := range []TypeEnum{TYPE_STRUCT, TYPE_STRUCTVAR, TYPE_FUNC} {
		require.Panics(t, func() { New(k) })
	}
}

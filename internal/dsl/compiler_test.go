package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCompile_LiteralScenario pins the exact WHERE fragment and bind order
// for a representative multi-clause query (spec §8 scenario 2).
func TestCompile_LiteralScenario(t *testing.T) {
	where, binds, err := Compile("type:(gpu OR compute) price:[50 TO 500] cores:>=8 !stock:out_of_stock")
	require.NoError(t, err)

	want := "(product_type = ? OR product_type = ?) AND monthly_price BETWEEN ? AND ? AND processor_cores >= ? AND NOT (stock_status = ?)"
	assert.Equal(t, want, where)
	assert.Equal(t, []interface{}{"gpu", "compute", 50.0, 500.0, int64(8), "out_of_stock"}, binds)
}

// TestCompile_UnknownFieldIsRejected covers the allowlist boundary: a field
// absent from Allowlist must fail closed, never silently pass through.
func TestCompile_UnknownFieldIsRejected(t *testing.T) {
	_, _, err := Compile("foo:bar")
	require.Error(t, err)

	dslErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ErrUnknownField, dslErr.Kind)
	assert.Equal(t, "unknown field foo", dslErr.Message)
}

// TestCompile_TypeMismatchIsRejected covers coercion failure for a typed
// field (price is TypeFloat).
func TestCompile_TypeMismatchIsRejected(t *testing.T) {
	_, _, err := Compile("price:notanumber")
	require.Error(t, err)

	dslErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ErrTypeMismatch, dslErr.Kind)
	assert.Equal(t, "price expects number", dslErr.Message)
}

// TestCompile_NeverInlinesLiterals asserts the bind-safety invariant: no
// user-supplied value string ever appears inside the compiled SQL text
// itself, only as a '?' placeholder (spec §4.C). The only quote characters
// in the WHERE text are the fixed '%' literals of the LIKE template.
func TestCompile_NeverInlinesLiterals(t *testing.T) {
	where, binds, err := Compile(`name:"Robert'); DROP TABLE offerings;--"`)
	require.NoError(t, err)

	assert.NotContains(t, where, "Robert")
	assert.NotContains(t, where, "DROP TABLE")
	assert.Equal(t, []interface{}{"Robert'); DROP TABLE offerings;--"}, binds)
	assert.Equal(t, "CAST(name AS TEXT) LIKE '%' || ? || '%'", where)
}

// TestCompile_MemoryFieldUsesSubstringMatch guards the LIKE-enabled text
// search over memory_gib (spec §4.C): memory:64 must match any memory
// value containing "64", not only an exact 64 GiB offering.
func TestCompile_MemoryFieldUsesSubstringMatch(t *testing.T) {
	where, binds, err := Compile("memory:64")
	require.NoError(t, err)

	assert.Equal(t, "CAST(memory_gib AS TEXT) LIKE '%' || ? || '%'", where)
	assert.Equal(t, []interface{}{"64"}, binds)
}

package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/streamtable/internal/value"
)

func TestRecord_KeepsFirstPositionOnDuplicate(t *testing.T) {
	r := value.Record(
		value.F("name", value.String("a")),
		value.F("size", value.Int(1)),
		value.F("name", value.String("b")),
	)

	require.True(t, r.IsRecord())
	require.Len(t, r.Fields(), 2)
	assert.Equal(t, "name", r.Fields()[0].Name)
	assert.Equal(t, "b", r.Fields()[0].Value.AsString())

	size, ok := r.Get("size")
	require.True(t, ok)
	assert.Equal(t, int64(1), size.AsInt())

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestZeroValueIsNothing(t *testing.T) {
	var v value.Value
	assert.True(t, v.IsNothing())
	assert.Equal(t, value.KindNothing, v.Kind())
	assert.Empty(t, v.Fields())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "record", value.KindRecord.String())
	assert.Equal(t, "list", value.KindList.String())
	assert.Equal(t, "kind(42)", value.Kind(42).String())
}

package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponents(t *testing.T) {
	assert.Equal(t, []float64{5}, Components(NewScalar(5)))
	assert.Equal(t, []float64{1, 2}, Components(NewVec2(1, 2)))
	assert.Equal(t, []float64{1, 2, 3}, Components(NewVec3(1, 2, 3)))
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 1}, Components(NewColor(0.1, 0.2, 0.3, 1)))
	assert.Nil(t, Components(nil))
}

func TestFromComponents_RoundTrip(t *testing.T) {
	for _, v := range []Value{
		NewScalar(7),
		NewVec2(3, 4),
		NewVec3(-1, 0, 1),
		NewColor(0.5, 0.25, 0, 1),
	} {
		got, err := FromComponents(v.Kind(), Components(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestFromComponents_WrongArity(t *testing.T) {
	_, err := FromComponents(KindVec3, []float64{1, 2})
	assert.Error(t, err)

	_, err = FromComponents(KindScalar, nil)
	assert.Error(t, err)

	_, err = FromComponents(ValueKind("matrix"), []float64{1})
	assert.Error(t, err)
}

func TestValueKinds(t *testing.T) {
	assert.Equal(t, KindScalar, NewScalar(0).Kind())
	assert.Equal(t, KindVec2, NewVec2(0, 0).Kind())
	assert.Equal(t, KindVec3, NewVec3(0, 0, 0).Kind())
	assert.Equal(t, KindColor, NewColor(0, 0, 0, 0).Kind())
}

package vec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	v := Vec3{X: 3, Y: 0, Z: 4}.Normalize()
	assert.InDelta(t, 0.6, v.X, 1e-12)
	assert.InDelta(t, 0.8, v.Z, 1e-12)
	assert.InDelta(t, 1.0, v.Mag(), 1e-12)
}

func TestNormalizeZero(t *testing.T) {
	assert.Equal(t, Zero, Zero.Normalize())
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{W: 2}.Normalize()
	assert.Equal(t, Identity, q)
	assert.Equal(t, Identity, Quat{}.Normalize())
}

func TestSub(t *testing.T) {
	got := Vec3{1, 2, 3}.Sub(Vec3{1, 1, 1})
	assert.Equal(t, Vec3{0, 1, 2}, got)
}

func TestFormatVec3(t *testing.T) {
	assert.Equal(t, "0,0,0", FormatVec3(Zero))
	assert.Equal(t, "0.05,-1.5,100", FormatVec3(Vec3{0.05, -1.5, 100}))
}

func TestFormatQuat(t *testing.T) {
	assert.Equal(t, "0,0,0,1", FormatQuat(Identity))
}

func TestVec3RoundTripExact(t *testing.T) {
	values := []Vec3{
		{0.1, 0.2, 0.3},
		{1.0 / 3.0, math.Pi, -math.E},
		{1e-300, 6.02214076e23, -0},
	}
	for _, v := range values {
		got, err := ParseVec3(FormatVec3(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestQuatRoundTripExact(t *testing.T) {
	q := Quat{X: 0.7071067811865476, Y: 0, Z: 0, W: 0.7071067811865476}
	got, err := ParseQuat(FormatQuat(q))
	require.NoError(t, err)
	assert.Equal(t, q, got)
}

func TestParseVec3AllowsSpaces(t *testing.T) {
	got, err := ParseVec3(" 1, 2 ,3 ")
	require.NoError(t, err)
	assert.Equal(t, Vec3{1, 2, 3}, got)
}

func TestParseVec3WrongArity(t *testing.T) {
	_, err := ParseVec3("1,2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 3 components")
}

func TestParseQuatBadNumber(t *testing.T) {
	_, err := ParseQuat("1,2,x,4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "component 2")
}

package rotation

import (
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/persistrot/internal/vec"
)

func TestStore_Save_Golden(t *testing.T) {
	w := twoVesselWorld(100)
	s := newTestStore(t, w)
	s.Load()
	s.Clean()

	s.SetMomentum(id2, vec.Vec3{X: 0.01, Y: 0.05, Z: 0.09})
	s.SetReference(id1, BodyRef("Mun"))
	s.SetReference(id2, VesselRef(id1))
	s.Save()
	require.NoError(t, s.SaveErr())

	data, err := os.ReadFile(s.Paths().Primary)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "save_file", data)
}

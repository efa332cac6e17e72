package cfgnode

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Node {
	root := New("")
	root.AddValue("TIME", "42.5")
	m := root.AddNode("MOMENTUM")
	m.AddValue("a", "0,0,0")
	m.AddValue("b", "0.01,0.02,0")
	r := root.AddNode("REFERENCE")
	r.AddValue("a", "NONE")
	r.AddValue("b", "Kerbin")
	return root
}

func TestMarshalGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "state_file", Marshal(sampleTree()))
}

func TestMarshalNamedNode(t *testing.T) {
	n := New("OUTER")
	n.AddNode("INNER").AddValue("k", "v")

	want := "OUTER\n{\n\tINNER\n\t{\n\t\tk = v\n\t}\n}\n"
	assert.Equal(t, want, string(Marshal(n)))
}

func TestParseRoundTrip(t *testing.T) {
	orig := sampleTree()
	parsed, err := Parse(Marshal(orig))
	require.NoError(t, err)
	assert.Equal(t, orig, parsed)
}

func TestMarshalKeepsDecomposedText(t *testing.T) {
	root := New("")
	root.AddValue("e\u0301-probe", "Mu\u0308n")

	out := Marshal(root)
	assert.Equal(t, "e\u0301-probe = Mu\u0308n\n", string(out))

	parsed, err := Parse(out)
	require.NoError(t, err)
	got, ok := parsed.GetValue("e\u0301-probe")
	require.True(t, ok)
	assert.Equal(t, "Mu\u0308n", got)
}

func TestParseInlineBraceAndComments(t *testing.T) {
	src := `
// header comment
TIME = 10 // trailing
MOMENTUM {
	id-1 = 1,2,3
}
`
	n, err := Parse([]byte(src))
	require.NoError(t, err)

	v, ok := n.GetValue("TIME")
	require.True(t, ok)
	assert.Equal(t, "10", v)

	m := n.GetNode("MOMENTUM")
	require.NotNil(t, m)
	v, ok = m.GetValue("id-1")
	require.True(t, ok)
	assert.Equal(t, "1,2,3", v)
}

func TestParseValueKeepsInnerEquals(t *testing.T) {
	n, err := Parse([]byte("name = a = b\n"))
	require.NoError(t, err)
	v, _ := n.GetValue("name")
	assert.Equal(t, "a = b", v)
}

func TestParseDuplicateKeysKeepFirstForLookup(t *testing.T) {
	n, err := Parse([]byte("k = 1\nk = 2\n"))
	require.NoError(t, err)
	v, _ := n.GetValue("k")
	assert.Equal(t, "1", v)
	assert.Len(t, n.Values, 2)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"stray close", "}\n", 1, "unexpected '}'"},
		{"open without name", "{\n}\n", 1, "without node name"},
		{"unclosed", "A\n{\nk = v\n", 3, "unclosed node"},
		{"name without body", "A\nk = v\n", 2, "expected '{'"},
		{"dangling name", "A\n", 1, "has no body"},
		{"empty key", " = v\n", 1, "empty key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)

			var se *SyntaxError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.line, se.Line)
			assert.Contains(t, se.Msg, tt.msg)
		})
	}
}

func TestGetNodeMissing(t *testing.T) {
	assert.Nil(t, New("").GetNode("NOPE"))
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.cfg")

	require.NoError(t, Save(sampleTree(), path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, sampleTree(), loaded)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.cfg"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.cfg")
	require.NoError(t, os.WriteFile(path, []byte("}\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	var se *SyntaxError
	assert.True(t, errors.As(err, &se))
}

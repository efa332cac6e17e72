package host

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var fixtureSchema string

// LoadFixture reads a fixture world from a .yaml/.yml or .cue file.
// Both formats are checked against the #World schema before use.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var ff *FixtureFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		ff, err = decodeYAMLFixture(data)
	case ".cue":
		ff, err = decodeCUEFixture(path, data)
	default:
		return nil, fmt.Errorf("unsupported fixture extension %q (want .yaml, .yml or .cue)", ext)
	}
	if err != nil {
		return nil, err
	}

	f, err := ff.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}
	return f, nil
}

func decodeYAMLFixture(data []byte) (*FixtureFile, error) {
	// Schema check runs on the untyped document so that type mismatches
	// are reported by field path rather than as Go decode errors.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	ctx := cuecontext.New()
	if _, err := checkSchema(ctx, ctx.Encode(raw)); err != nil {
		return nil, err
	}

	var ff FixtureFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ff); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &ff, nil
}

func decodeCUEFixture(path string, data []byte) (*FixtureFile, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile CUE: %w", err)
	}
	unified, err := checkSchema(ctx, v)
	if err != nil {
		return nil, err
	}

	var ff FixtureFile
	if err := unified.Decode(&ff); err != nil {
		return nil, fmt.Errorf("failed to decode CUE: %w", err)
	}
	return &ff, nil
}

// checkSchema unifies v with #World and requires a concrete result.
func checkSchema(ctx *cue.Context, v cue.Value) (cue.Value, error) {
	schema := ctx.CompileString(fixtureSchema, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile fixture schema: %w", err)
	}
	world := schema.LookupPath(cue.ParsePath("#World"))
	unified := world.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cue.Value{}, fmt.Errorf("fixture does not match schema: %w", err)
	}
	return unified, nil
}

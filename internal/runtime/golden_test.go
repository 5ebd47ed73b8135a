package runtime

import (
	"errors"
	"os"
	"path/filepath"
	"pirate-speak/internal/lexer"
	"pirate-speak/internal/parser"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// goldenFile is one YAML file under testdata/golden: a program and the
// invocations to run against it.
type goldenFile struct {
	Source   string       `yaml:"source"`
	MaxSteps int          `yaml:"max_steps"`
	Cases    []goldenCase `yaml:"cases"`
}

type goldenCase struct {
	Name   string         `yaml:"name"`
	Class  string         `yaml:"class"`
	Method string         `yaml:"method"`
	Args   []any          `yaml:"args"`
	Fields map[string]any `yaml:"fields"`
	Want   string         `yaml:"want"` // String() of the result
	Type   string         `yaml:"type"` // TypeName() of the result
	Error  string         `yaml:"error"`
}

// goldenTest loads a YAML case file and checks every invocation in it.
func goldenTest(t *testing.T, path string) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	var file goldenFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		t.Fatalf("failed to decode %s: %v", path, err)
	}

	tokens, err := lexer.Tokenize(file.Source)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	classes, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	interp := New(WithMaxSteps(file.MaxSteps))
	reg := interp.Load(classes)

	for _, tc := range file.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			args, fields := goldenInputs(t, reg, tc)

			got, err := interp.Invoke(reg, tc.Class, tc.Method, args, fields)
			if tc.Error != "" {
				var rerr *Error
				if err == nil {
					t.Fatalf("expected %s error, got %s", tc.Error, got)
				}
				if !errors.As(err, &rerr) || rerr.Kind.String() != tc.Error {
					t.Fatalf("expected %s error, got %v", tc.Error, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("runtime error: %v", err)
			}
			if got.String() != tc.Want {
				t.Errorf("result mismatch: expected=%q got=%q", tc.Want, got.String())
			}
			if tc.Type != "" && got.TypeName() != tc.Type {
				t.Errorf("type mismatch: expected=%s got=%s", tc.Type, got.TypeName())
			}
		})
	}
}

// goldenInputs converts YAML arguments and fields using the declared
// parameter and field types where the class provides them.
func goldenInputs(t *testing.T, reg *ClassRegistry, tc goldenCase) ([]Value, map[string]Value) {
	t.Helper()
	class, _ := reg.Lookup(tc.Class)

	args := make([]Value, len(tc.Args))
	for idx, raw := range tc.Args {
		typeName := ""
		if class != nil {
			if m, ok := class.Method(tc.Method); ok && idx < len(m.Params) {
				typeName = m.Params[idx].Type
			}
		}
		v, err := FromGo(typeName, raw)
		if err != nil {
			t.Fatalf("arg %d: %v", idx, err)
		}
		args[idx] = v
	}

	fields := make(map[string]Value, len(tc.Fields))
	for name, raw := range tc.Fields {
		typeName := ""
		if class != nil {
			typeName = class.Fields[name]
		}
		v, err := FromGo(typeName, raw)
		if err != nil {
			t.Fatalf("field %s: %v", name, err)
		}
		fields[name] = v
	}
	return args, fields
}

func TestGolden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "testdata", "golden", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no golden files found")
	}
	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		t.Run(name, func(t *testing.T) {
			goldenTest(t, path)
		})
	}
}

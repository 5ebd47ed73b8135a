package main

import (
	"fmt"
	"os"
	"pirate-speak/internal/runtime"
	"pirate-speak/internal/token"
	"strings"

	"gopkg.in/yaml.v3"
)

// invocation is a method call assembled from command-line text.
type invocation struct {
	class  string
	method string
	args   []runtime.Value
	fields map[string]runtime.Value
}

// paramType returns the declared type of the idx-th parameter, or "" when
// the class, method or parameter is unknown.
func paramType(reg *runtime.ClassRegistry, class, method string, idx int) string {
	def, ok := reg.Lookup(class)
	if !ok {
		return ""
	}
	m, ok := def.Method(method)
	if !ok || idx >= len(m.Params) {
		return ""
	}
	return m.Params[idx].Type
}

// fieldType returns the declared type of a field, or "" when undeclared.
func fieldType(reg *runtime.ClassRegistry, class, field string) string {
	if def, ok := reg.Lookup(class); ok {
		return def.Fields[field]
	}
	return ""
}

// convertArgs converts positional arguments by the declared parameter types.
func convertArgs(reg *runtime.ClassRegistry, class, method string, raw []string) ([]runtime.Value, error) {
	args := make([]runtime.Value, len(raw))
	for idx, text := range raw {
		v, err := runtime.ParseTyped(paramType(reg, class, method, idx), text)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", idx+1, err)
		}
		args[idx] = v
	}
	return args, nil
}

// splitAssignment splits "name=value".
func splitAssignment(pair string) (string, string, error) {
	name, value, ok := strings.Cut(pair, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid field assignment %q (want name=value)", pair)
	}
	if kind := token.Lookup(name); kind != token.IDENTIFIER {
		return "", "", fmt.Errorf("invalid field name %q (reserved %s)", name, kind)
	}
	return name, value, nil
}

// applySets converts name=value pairs by the declared field types and adds
// them to fields.
func applySets(reg *runtime.ClassRegistry, class string, pairs []string, fields map[string]runtime.Value) error {
	for _, pair := range pairs {
		name, text, err := splitAssignment(pair)
		if err != nil {
			return err
		}
		v, err := runtime.ParseTyped(fieldType(reg, class, name), text)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		fields[name] = v
	}
	return nil
}

// loadState reads initial field values from a YAML mapping.
func loadState(path string, reg *runtime.ClassRegistry, class string) (map[string]runtime.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read state file: %w", err)
	}
	return decodeState(data, reg, class)
}

func decodeState(data []byte, reg *runtime.ClassRegistry, class string) (map[string]runtime.Value, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse state: %w", err)
	}
	fields := make(map[string]runtime.Value, len(raw))
	for name, v := range raw {
		val, err := runtime.FromGo(fieldType(reg, class, name), v)
		if err != nil {
			return nil, fmt.Errorf("state field %s: %w", name, err)
		}
		fields[name] = val
	}
	return fields, nil
}

// parseCall parses the REPL form "Class.method arg... field=value...".
// Words containing '=' are field overrides; the rest are arguments.
func parseCall(reg *runtime.ClassRegistry, line string) (*invocation, error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil, fmt.Errorf("usage: :call Ship.adventure [arg...] [field=value...]")
	}
	class, method, ok := strings.Cut(words[0], ".")
	if !ok || class == "" || method == "" {
		return nil, fmt.Errorf("invalid target %q (want Ship.adventure)", words[0])
	}

	var rawArgs, sets []string
	for _, w := range words[1:] {
		if strings.Contains(w, "=") {
			sets = append(sets, w)
		} else {
			rawArgs = append(rawArgs, w)
		}
	}

	args, err := convertArgs(reg, class, method, rawArgs)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]runtime.Value)
	if err := applySets(reg, class, sets, fields); err != nil {
		return nil, err
	}
	return &invocation{class: class, method: method, args: args, fields: fields}, nil
}

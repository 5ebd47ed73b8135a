package main

import (
	"pirate-speak/internal/lexer"
	"pirate-speak/internal/parser"
	"pirate-speak/internal/runtime"
	"testing"
)

const shipSource = `
ship Pirate {
	allHands treasure coin gold;
	allHands treasure loot rum;
	allHands treasure mark flag;
	allHands adventure hail(scroll who, coin times, beacon loud) { return who; }
}
`

func testRegistry(t *testing.T) *runtime.ClassRegistry {
	t.Helper()
	tokens, err := lexer.Tokenize(shipSource)
	if err != nil {
		t.Fatal(err)
	}
	classes, err := parser.Parse(tokens)
	if err != nil {
		t.Fatal(err)
	}
	return runtime.Load(classes)
}

func TestConvertArgsUsesParamTypes(t *testing.T) {
	reg := testRegistry(t)
	args, err := convertArgs(reg, "Pirate", "hail", []string{"42", "3", "aye"})
	if err != nil {
		t.Fatalf("convertArgs() error = %v", err)
	}
	expected := []runtime.Value{runtime.StringVal("42"), runtime.IntVal(3), runtime.BoolVal(true)}
	for i := range expected {
		if args[i] != expected[i] {
			t.Errorf("arg %d = %#v, want %#v", i, args[i], expected[i])
		}
	}
}

func TestConvertArgsInfersUnknown(t *testing.T) {
	reg := testRegistry(t)
	// the fourth argument has no declared parameter
	args, err := convertArgs(reg, "Pirate", "hail", []string{"a", "1", "nay", "2.5"})
	if err != nil {
		t.Fatalf("convertArgs() error = %v", err)
	}
	if args[3] != runtime.FloatVal(2.5) {
		t.Errorf("arg 4 = %#v, want loot 2.5", args[3])
	}

	args, err = convertArgs(reg, "Navy", "sail", []string{"7"})
	if err != nil {
		t.Fatalf("convertArgs() error = %v", err)
	}
	if args[0] != runtime.IntVal(7) {
		t.Errorf("arg 1 = %#v, want coin 7", args[0])
	}
}

func TestConvertArgsRejectsBadText(t *testing.T) {
	reg := testRegistry(t)
	if _, err := convertArgs(reg, "Pirate", "hail", []string{"x", "three", "aye"}); err == nil {
		t.Error("expected error for a non-numeric coin")
	}
}

func TestApplySets(t *testing.T) {
	reg := testRegistry(t)
	fields := map[string]runtime.Value{"gold": runtime.IntVal(1)}
	err := applySets(reg, "Pirate", []string{"gold=9", "rum=2", "flag=x", "parrot=polly"}, fields)
	if err != nil {
		t.Fatalf("applySets() error = %v", err)
	}
	expected := map[string]runtime.Value{
		"gold":   runtime.IntVal(9),
		"rum":    runtime.FloatVal(2),
		"flag":   runtime.CharVal('x'),
		"parrot": runtime.StringVal("polly"),
	}
	for name, want := range expected {
		if fields[name] != want {
			t.Errorf("%s = %#v, want %#v", name, fields[name], want)
		}
	}
}

func TestApplySetsErrors(t *testing.T) {
	reg := testRegistry(t)
	for _, pair := range []string{"gold", "=5", "gold=lots", "flag=xy", "coin=5", "ship=x"} {
		if err := applySets(reg, "Pirate", []string{pair}, map[string]runtime.Value{}); err == nil {
			t.Errorf("applySets(%q): expected error", pair)
		}
	}
}

func TestDecodeState(t *testing.T) {
	reg := testRegistry(t)
	fields, err := decodeState([]byte("gold: 5\nrum: 3\nflag: z\nname: Anne\n"), reg, "Pirate")
	if err != nil {
		t.Fatalf("decodeState() error = %v", err)
	}
	if fields["gold"] != runtime.IntVal(5) {
		t.Errorf("gold = %#v", fields["gold"])
	}
	if fields["rum"] != runtime.FloatVal(3) {
		t.Errorf("rum = %#v", fields["rum"])
	}
	if fields["flag"] != runtime.CharVal('z') {
		t.Errorf("flag = %#v", fields["flag"])
	}
	if fields["name"] != runtime.StringVal("Anne") {
		t.Errorf("name = %#v", fields["name"])
	}

	if _, err := decodeState([]byte("gold: [1, 2]\n"), reg, "Pirate"); err == nil {
		t.Error("expected error for a list value")
	}
	if _, err := decodeState([]byte("gold: 1.5\n"), reg, "Pirate"); err == nil {
		t.Error("expected error for a fractional coin")
	}
	if _, err := decodeState([]byte("gold: 18446744073709551615\n"), reg, "Pirate"); err == nil {
		t.Error("expected error for a coin above the int64 range")
	}
}

func TestParseCall(t *testing.T) {
	reg := testRegistry(t)
	inv, err := parseCall(reg, "Pirate.hail Anne 2 nay gold=4")
	if err != nil {
		t.Fatalf("parseCall() error = %v", err)
	}
	if inv.class != "Pirate" || inv.method != "hail" {
		t.Errorf("target = %s.%s", inv.class, inv.method)
	}
	if len(inv.args) != 3 || inv.args[0] != runtime.StringVal("Anne") || inv.args[1] != runtime.IntVal(2) {
		t.Errorf("args = %#v", inv.args)
	}
	if inv.fields["gold"] != runtime.IntVal(4) {
		t.Errorf("fields = %#v", inv.fields)
	}

	for _, bad := range []string{"", "Pirate", "Pirate.", ".hail"} {
		if _, err := parseCall(reg, bad); err == nil {
			t.Errorf("parseCall(%q): expected error", bad)
		}
	}
}

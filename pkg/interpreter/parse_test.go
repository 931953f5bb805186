package interpreter

import (
	"math/big"
	"testing"

	"github.com/p4tools/go-restrict/pkg/ast"
	"github.com/p4tools/go-restrict/pkg/errs"
	"github.com/p4tools/go-restrict/pkg/schema"
)

func TestParseWireInteger_1(t *testing.T) {
	CheckWireInteger(t, []byte{0x2a}, 8, 42)
}

func TestParseWireInteger_2(t *testing.T) {
	// Shorter than the width implies leading zeros.
	CheckWireInteger(t, []byte{0x2a}, 32, 42)
	CheckWireInteger(t, []byte{}, 32, 0)
}

func TestParseWireInteger_3(t *testing.T) {
	// Excess leading bytes are fine when zero.
	CheckWireInteger(t, []byte{0x00, 0x00, 0x2a}, 8, 42)
}

func TestParseWireInteger_4(t *testing.T) {
	// 16 does not fit 4 bits.
	if _, err := ParseWireInteger([]byte{0x10}, 4); !errs.IsInvalidArgument(err) {
		t.Errorf("expected an invalid-argument failure, got %v", err)
	}
}

func TestParseWireInteger_5(t *testing.T) {
	CheckWireInteger(t, []byte{0x0f}, 4, 15)
	// A non-zero leading byte above ceil(W/8) must be rejected.
	if _, err := ParseWireInteger([]byte{0x01, 0x00}, 8); !errs.IsInvalidArgument(err) {
		t.Errorf("expected an invalid-argument failure, got %v", err)
	}
}

func TestParseEntryExactKey(t *testing.T) {
	table := exactTable()
	entry := &TableEntry{
		TableID: 1,
		Matches: []FieldMatch{{FieldID: 1, Exact: &ExactMatch{Value: []byte{0x2a}}}},
	}
	//
	ctx, err := ParseTableEntry(entry, table)
	if err != nil {
		t.Fatalf("parsing failed: %v", err)
	}
	//
	CheckKey(t, ctx, "k", Exact{Value: big.NewInt(42)})
}

func TestParseEntryMissingExactKey(t *testing.T) {
	entry := &TableEntry{TableID: 1}
	//
	if _, err := ParseTableEntry(entry, exactTable()); !errs.IsInvalidArgument(err) {
		t.Errorf("expected an invalid-argument failure, got %v", err)
	}
}

func TestParseEntryUnknownField(t *testing.T) {
	entry := &TableEntry{
		TableID: 1,
		Matches: []FieldMatch{{FieldID: 9, Exact: &ExactMatch{Value: []byte{0x01}}}},
	}
	//
	if _, err := ParseTableEntry(entry, exactTable()); !errs.IsInvalidArgument(err) {
		t.Errorf("expected an invalid-argument failure, got %v", err)
	}
}

func TestParseEntryDuplicateField(t *testing.T) {
	match := FieldMatch{FieldID: 1, Exact: &ExactMatch{Value: []byte{0x01}}}
	entry := &TableEntry{TableID: 1, Matches: []FieldMatch{match, match}}
	//
	if _, err := ParseTableEntry(entry, exactTable()); !errs.IsInvalidArgument(err) {
		t.Errorf("expected an invalid-argument failure, got %v", err)
	}
}

func TestParseEntryWrongMatchKind(t *testing.T) {
	entry := &TableEntry{
		TableID: 1,
		Matches: []FieldMatch{{FieldID: 1, Lpm: &LpmMatch{Value: []byte{0x01}, PrefixLength: 8}}},
	}
	//
	if _, err := ParseTableEntry(entry, exactTable()); !errs.IsInvalidArgument(err) {
		t.Errorf("expected an invalid-argument failure, got %v", err)
	}
}

func TestParseEntryTernaryWildcard(t *testing.T) {
	table := tableWithKey(&schema.KeyInfo{ID: 1, Name: "t", Type: ast.Ternary(16)})
	//
	ctx, err := ParseTableEntry(&TableEntry{TableID: 1}, table)
	if err != nil {
		t.Fatalf("parsing failed: %v", err)
	}
	//
	CheckKey(t, ctx, "t", Ternary{Value: big.NewInt(0), Mask: big.NewInt(0)})
}

func TestParseEntryLpmWildcard(t *testing.T) {
	table := tableWithKey(&schema.KeyInfo{ID: 1, Name: "d", Type: ast.Lpm(32)})
	//
	ctx, err := ParseTableEntry(&TableEntry{TableID: 1}, table)
	if err != nil {
		t.Fatalf("parsing failed: %v", err)
	}
	//
	CheckKey(t, ctx, "d", Lpm{Value: big.NewInt(0), PrefixLength: big.NewInt(0)})
}

func TestParseEntryRangeWildcard(t *testing.T) {
	table := tableWithKey(&schema.KeyInfo{ID: 1, Name: "r", Type: ast.Range(8)})
	//
	ctx, err := ParseTableEntry(&TableEntry{TableID: 1}, table)
	if err != nil {
		t.Fatalf("parsing failed: %v", err)
	}
	//
	CheckKey(t, ctx, "r", Range{Low: big.NewInt(0), High: big.NewInt(255)})
}

func TestParseEntryTernaryMasked(t *testing.T) {
	table := tableWithKey(&schema.KeyInfo{ID: 1, Name: "t", Type: ast.Ternary(8)})
	entry := &TableEntry{
		TableID: 1,
		Matches: []FieldMatch{{
			FieldID: 1,
			Ternary: &TernaryMatch{Value: []byte{0xff}, Mask: []byte{0xf0}},
		}},
	}
	//
	ctx, err := ParseTableEntry(entry, table)
	if err != nil {
		t.Fatalf("parsing failed: %v", err)
	}
	// Value bits outside the mask are cleared.
	CheckKey(t, ctx, "t", Ternary{Value: big.NewInt(0xf0), Mask: big.NewInt(0xf0)})
}

func TestParseEntryLpmNormalised(t *testing.T) {
	table := tableWithKey(&schema.KeyInfo{ID: 1, Name: "d", Type: ast.Lpm(32)})
	entry := &TableEntry{
		TableID: 1,
		Matches: []FieldMatch{{
			FieldID: 1,
			Lpm:     &LpmMatch{Value: []byte{0xc0, 0xa8, 0x01, 0x01}, PrefixLength: 24},
		}},
	}
	//
	ctx, err := ParseTableEntry(entry, table)
	if err != nil {
		t.Fatalf("parsing failed: %v", err)
	}
	// Bits below the prefix are cleared.
	CheckKey(t, ctx, "d", Lpm{Value: big.NewInt(0xc0a80100), PrefixLength: big.NewInt(24)})
}

func TestParseEntryLpmPrefixOutOfRange(t *testing.T) {
	table := tableWithKey(&schema.KeyInfo{ID: 1, Name: "d", Type: ast.Lpm(32)})
	entry := &TableEntry{
		TableID: 1,
		Matches: []FieldMatch{{FieldID: 1, Lpm: &LpmMatch{Value: []byte{0x01}, PrefixLength: 33}}},
	}
	//
	if _, err := ParseTableEntry(entry, table); !errs.IsInvalidArgument(err) {
		t.Errorf("expected an invalid-argument failure, got %v", err)
	}
}

func TestParseEntryRangeInverted(t *testing.T) {
	table := tableWithKey(&schema.KeyInfo{ID: 1, Name: "r", Type: ast.Range(8)})
	entry := &TableEntry{
		TableID: 1,
		Matches: []FieldMatch{{
			FieldID: 1,
			Range:   &RangeMatch{Low: []byte{0x10}, High: []byte{0x01}},
		}},
	}
	//
	if _, err := ParseTableEntry(entry, table); !errs.IsInvalidArgument(err) {
		t.Errorf("expected an invalid-argument failure, got %v", err)
	}
}

func TestParseEntryPriority(t *testing.T) {
	table := tableWithKey(&schema.KeyInfo{ID: 1, Name: "t", Type: ast.Ternary(8)})
	//
	ctx, err := ParseTableEntry(&TableEntry{TableID: 1, Priority: 20}, table)
	if err != nil {
		t.Fatalf("parsing failed: %v", err)
	}
	//
	if ctx.Entry.Priority.Cmp(big.NewInt(20)) != 0 {
		t.Errorf("expected priority 20, got %s", ctx.Entry.Priority.String())
	}
}

func TestParseActionParams(t *testing.T) {
	info := actionWithParam(&schema.ParamInfo{ID: 1, Name: "port", Type: ast.FixedUnsigned(9)})
	action := &Action{ActionID: 7, Params: []ActionParam{{ParamID: 1, Value: []byte{0x01, 0x00}}}}
	//
	ctx, err := ParseAction(action, info)
	if err != nil {
		t.Fatalf("parsing failed: %v", err)
	}
	//
	if value := ctx.Invocation.Params["port"]; value.Cmp(big.NewInt(256)) != 0 {
		t.Errorf("expected 256, got %s", value.String())
	}
}

func TestParseActionParamOutOfRange(t *testing.T) {
	info := actionWithParam(&schema.ParamInfo{ID: 1, Name: "p", Type: ast.FixedUnsigned(4)})
	action := &Action{ActionID: 7, Params: []ActionParam{{ParamID: 1, Value: []byte{0x10}}}}
	//
	if _, err := ParseAction(action, info); !errs.IsInvalidArgument(err) {
		t.Errorf("expected an invalid-argument failure, got %v", err)
	}
}

func TestParseActionSignedParam(t *testing.T) {
	info := actionWithParam(&schema.ParamInfo{ID: 1, Name: "delta", Type: ast.FixedSigned(8)})
	action := &Action{ActionID: 7, Params: []ActionParam{{ParamID: 1, Value: []byte{0xff}}}}
	//
	ctx, err := ParseAction(action, info)
	if err != nil {
		t.Fatalf("parsing failed: %v", err)
	}
	//
	if value := ctx.Invocation.Params["delta"]; value.Cmp(big.NewInt(-1)) != 0 {
		t.Errorf("expected -1, got %s", value.String())
	}
}

func TestParseActionMissingParam(t *testing.T) {
	info := actionWithParam(&schema.ParamInfo{ID: 1, Name: "port", Type: ast.FixedUnsigned(9)})
	//
	if _, err := ParseAction(&Action{ActionID: 7}, info); !errs.IsInvalidArgument(err) {
		t.Errorf("expected an invalid-argument failure, got %v", err)
	}
}

func TestParseActionUnknownParam(t *testing.T) {
	info := actionWithParam(&schema.ParamInfo{ID: 1, Name: "port", Type: ast.FixedUnsigned(9)})
	action := &Action{ActionID: 7, Params: []ActionParam{{ParamID: 9, Value: []byte{0x01}}}}
	//
	if _, err := ParseAction(action, info); !errs.IsInvalidArgument(err) {
		t.Errorf("expected an invalid-argument failure, got %v", err)
	}
}

// ===================================================================

func CheckWireInteger(t *testing.T, data []byte, width uint, expected int64) {
	value, err := ParseWireInteger(data, width)
	if err != nil {
		t.Errorf("decoding %#x failed: %v", data, err)
	} else if value.Cmp(big.NewInt(expected)) != 0 {
		t.Errorf("decoding %#x: expected %d, got %s", data, expected, value.String())
	}
}

func CheckKey(t *testing.T, ctx *EvaluationContext, name string, expected Value) {
	value, ok := ctx.Entry.Keys[name]
	if !ok {
		t.Fatalf("key %q is unbound", name)
	}
	//
	if equal, ok := valuesEqual(value, expected); !ok || !equal {
		t.Errorf("key %q: expected %s, got %s", name, expected.String(), value.String())
	}
}

func exactTable() *schema.TableInfo {
	return tableWithKey(&schema.KeyInfo{ID: 1, Name: "k", Type: ast.Exact(8)})
}

func tableWithKey(key *schema.KeyInfo) *schema.TableInfo {
	return &schema.TableInfo{
		ID:         1,
		Name:       "acl",
		KeysByID:   map[uint32]*schema.KeyInfo{key.ID: key},
		KeysByName: map[string]*schema.KeyInfo{key.Name: key},
	}
}

func actionWithParam(param *schema.ParamInfo) *schema.ActionInfo {
	return &schema.ActionInfo{
		ID:           7,
		Name:         "forward",
		ParamsByID:   map[uint32]*schema.ParamInfo{param.ID: param},
		ParamsByName: map[string]*schema.ParamInfo{param.Name: param},
	}
}

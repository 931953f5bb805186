package schema

import (
	"strings"
	"testing"

	"github.com/p4tools/go-restrict/pkg/ast"
)

func TestValidateEmpty(t *testing.T) {
	info := &ConstraintInfo{
		TablesByID:  map[uint32]*TableInfo{},
		ActionsByID: map[uint32]*ActionInfo{},
	}
	//
	if err := info.Validate(); err != nil {
		t.Errorf("empty pipeline should validate: %v", err)
	}
}

func TestValidateTable(t *testing.T) {
	info := pipelineWithTable(acceptedTable())
	//
	if err := info.Validate(); err != nil {
		t.Errorf("well-formed table should validate: %v", err)
	}
}

func TestValidateTableIdMismatch(t *testing.T) {
	table := acceptedTable()
	info := &ConstraintInfo{
		TablesByID:  map[uint32]*TableInfo{99: table},
		ActionsByID: map[uint32]*ActionInfo{},
	}
	//
	CheckInvalid(t, info, "indexed under id")
}

func TestValidateKeyIndexDisagreement(t *testing.T) {
	table := acceptedTable()
	delete(table.KeysByName, "dst")
	//
	CheckInvalid(t, pipelineWithTable(table), "disagree")
}

func TestValidateKeyIndexMismatch(t *testing.T) {
	table := acceptedTable()
	other := &KeyInfo{ID: 9, Name: "dst", Type: ast.Exact(8)}
	table.KeysByName["dst"] = other
	//
	CheckInvalid(t, pipelineWithTable(table), "missing from name index")
}

func TestValidateNonKeyType(t *testing.T) {
	table := acceptedTable()
	table.KeysByID[1].Type = ast.FixedUnsigned(8)
	//
	CheckInvalid(t, pipelineWithTable(table), "non-key type")
}

func TestValidateParamType(t *testing.T) {
	param := &ParamInfo{ID: 1, Name: "port", Type: ast.Exact(9)}
	action := &ActionInfo{
		ID:           7,
		Name:         "forward",
		ParamsByID:   map[uint32]*ParamInfo{1: param},
		ParamsByName: map[string]*ParamInfo{"port": param},
	}
	info := &ConstraintInfo{
		TablesByID:  map[uint32]*TableInfo{},
		ActionsByID: map[uint32]*ActionInfo{7: action},
	}
	//
	CheckInvalid(t, info, "non-integer type")
}

func TestLookupTableAndAction(t *testing.T) {
	info := pipelineWithTable(acceptedTable())
	//
	if info.Table(1) == nil {
		t.Errorf("declared table should resolve")
	}

	if info.Table(2) != nil || info.Action(2) != nil {
		t.Errorf("undeclared ids should resolve to nil")
	}
}

func TestLookupAttribute(t *testing.T) {
	attr, ok := LookupAttribute("priority")
	//
	if !ok {
		t.Fatalf("priority should be a reserved attribute")
	}

	if attr.Type != ast.ArbitraryInt() {
		t.Errorf("priority should be an arbitrary integer, got %s", attr.Type.String())
	}

	if _, ok := LookupAttribute("metadata"); ok {
		t.Errorf("metadata should not be a reserved attribute")
	}
}

// ===================================================================

func acceptedTable() *TableInfo {
	dst := &KeyInfo{ID: 1, Name: "dst", Type: ast.Lpm(32)}
	port := &KeyInfo{ID: 2, Name: "port", Type: ast.Exact(9)}
	//
	return &TableInfo{
		ID:         1,
		Name:       "forwarding",
		KeysByID:   map[uint32]*KeyInfo{1: dst, 2: port},
		KeysByName: map[string]*KeyInfo{"dst": dst, "port": port},
	}
}

func pipelineWithTable(table *TableInfo) *ConstraintInfo {
	return &ConstraintInfo{
		TablesByID:  map[uint32]*TableInfo{table.ID: table},
		ActionsByID: map[uint32]*ActionInfo{},
	}
}

func CheckInvalid(t *testing.T, info *ConstraintInfo, fragment string) {
	err := info.Validate()
	if err == nil {
		t.Fatalf("expected validation to fail")
	}

	if !strings.Contains(err.Error(), fragment) {
		t.Errorf("expected %q in %q", fragment, err.Error())
	}
}

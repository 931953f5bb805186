package ast

import (
	"math/big"
	"testing"
)

func TestSizeLeaf(t *testing.T) {
	CheckSize(t, boolLit(true), 1)
	CheckSize(t, intLit(42), 1)
	CheckSize(t, &Variable{Name: "k"}, 1)
	CheckSize(t, &AttributeAccess{Name: "priority"}, 1)
}

func TestSizeUnary(t *testing.T) {
	CheckSize(t, &UnaryExpression{Op: Not, Arg: boolLit(false)}, 2)
	CheckSize(t, &TypeCast{Arg: intLit(1)}, 2)
	CheckSize(t, &FieldAccess{Base: &Variable{Name: "k"}, Field: "mask"}, 2)
}

func TestSizeBinary(t *testing.T) {
	eq := &BinaryExpression{Op: Eq, Left: &Variable{Name: "k"}, Right: intLit(5)}
	CheckSize(t, eq, 3)
	//
	and := &BinaryExpression{Op: And, Left: eq, Right: boolLit(true)}
	CheckSize(t, and, 5)
}

func TestSizeCached(t *testing.T) {
	eq := &BinaryExpression{Op: Eq, Left: &Variable{Name: "k"}, Right: intLit(5)}
	and := &BinaryExpression{Op: And, Left: eq, Right: eq}
	//
	cache := make(SizeCache)
	//
	if Size(and, cache) != 7 {
		t.Errorf("expected 7 nodes, got %d", Size(and, cache))
	}
	// Cached subtree sizes must agree with uncached ones.
	if cache[eq] != Size(eq, nil) {
		t.Errorf("cache disagrees with uncached size")
	}
}

func TestExprString(t *testing.T) {
	eq := &BinaryExpression{Op: Eq, Left: &Variable{Name: "k"}, Right: intLit(5)}
	//
	if String(eq) != "(k == 5)" {
		t.Errorf("unexpected rendering %q", String(eq))
	}
	//
	not := &UnaryExpression{Op: Not, Arg: boolLit(true)}
	if String(not) != "!(true)" {
		t.Errorf("unexpected rendering %q", String(not))
	}
}

// ===================================================================

func CheckSize(t *testing.T, expr Expression, expected int) {
	if size := Size(expr, nil); size != expected {
		t.Errorf("expected %d node(s), got %d", expected, size)
	}
}

func boolLit(value bool) *BooleanConstant {
	return &BooleanConstant{Node: Node{Typ: Boolean()}, Value: value}
}

func intLit(value int64) *IntegerConstant {
	return &IntegerConstant{Node: Node{Typ: ArbitraryInt()}, Value: big.NewInt(value)}
}

package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationValid(t *testing.T) {
	loc1 := NewLocation(1, 1, 1)
	assert.True(t, loc1.IsValid())
	loc2 := NewLocation(1, 3, 9)
	assert.True(t, loc2.IsValid())
	assert.True(t, (&Location{1, 5, 2, 1}).IsValid())
}

func TestLocationInvalid(t *testing.T) {
	assert.False(t, (&Location{0, 1, 1, 2}).IsValid())
	assert.False(t, (&Location{1, 0, 1, 2}).IsValid())
	assert.False(t, (&Location{2, 1, 1, 2}).IsValid())
	loc := NewLocation(1, 5, 2)
	assert.False(t, loc.IsValid())
}

func TestLocationString(t *testing.T) {
	assert.Equal(t, "1:3-9", NewLocation(1, 3, 9).String())
	assert.Equal(t, "1:3-2:4", Location{1, 3, 2, 4}.String())
}

func TestQuoteSingleLine(t *testing.T) {
	src := NewConstraintSource("priority > 10 && k == 8w5", "acl.p4", 33)
	//
	CheckQuote(t, src, NewLocation(1, 18, 26), "k == 8w5")
	CheckQuote(t, src, NewLocation(1, 1, 14), "priority > 10")
	CheckQuote(t, src, NewLocation(1, 1, 26), "priority > 10 && k == 8w5")
}

func TestQuoteMultiLine(t *testing.T) {
	src := NewConstraintSource("priority > 10 &&\n  k == 8w5", "acl.p4", 33)
	//
	CheckQuote(t, src, Location{1, 1, 2, 11}, "priority > 10 &&\n  k == 8w5")
	CheckQuote(t, src, NewLocation(2, 3, 11), "k == 8w5")
}

func TestQuoteKeepsIndentation(t *testing.T) {
	src := NewConstraintSource("a == 1 ||\n    (b == 2 &&\n     c == 3)", "x.p4", 1)
	//
	CheckQuote(t, src, Location{2, 5, 3, 13}, "(b == 2 &&\n     c == 3)")
}

func TestQuoteOutOfBounds(t *testing.T) {
	src := NewConstraintSource("k == 1", "x.p4", 1)
	//
	CheckQuoteFails(t, src, NewLocation(2, 1, 2))
	CheckQuoteFails(t, src, NewLocation(1, 1, 99))
	CheckQuoteFails(t, src, Location{0, 0, 0, 0})
}

func TestDescribe(t *testing.T) {
	src := NewConstraintSource("priority > 10 &&\n  k == 8w5", "acl.p4", 33)
	//
	assert.Equal(t, "acl.p4:33:18", src.Describe(NewLocation(1, 18, 26)))
	assert.Equal(t, "acl.p4:34:3", src.Describe(NewLocation(2, 3, 11)))
}

func TestUnderline(t *testing.T) {
	src := NewConstraintSource("priority > 10 && k == 8w5", "acl.p4", 1)
	//
	out, err := src.Underline(NewLocation(1, 18, 26))
	assert.NoError(t, err)
	assert.Equal(t, "priority > 10 && k == 8w5\n                 ^^^^^^^^", out)
}

func TestUnderlineMultiLineRegion(t *testing.T) {
	src := NewConstraintSource("priority > 10 &&\n  k == 8w5", "acl.p4", 1)
	// Only the first line of a multi-line region is underlined.
	out, err := src.Underline(Location{1, 1, 2, 11})
	assert.NoError(t, err)
	assert.Equal(t, "priority > 10 &&\n^^^^^^^^^^^^^^^^", out)
}

// ===================================================================

func CheckQuote(t *testing.T, src *ConstraintSource, loc Location, expected string) {
	quote, err := src.Quote(loc)
	if err != nil {
		t.Errorf("quoting %s failed: %v", loc.String(), err)
	} else if quote != expected {
		t.Errorf("quoting %s: expected %q, got %q", loc.String(), expected, quote)
	}
}

func CheckQuoteFails(t *testing.T, src *ConstraintSource, loc Location) {
	if quote, err := src.Quote(loc); err == nil {
		t.Errorf("quoting %s should fail, got %q", loc.String(), quote)
	}
}

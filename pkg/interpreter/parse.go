// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package interpreter

import (
	"math/big"

	"github.com/p4tools/go-restrict/pkg/ast"
	"github.com/p4tools/go-restrict/pkg/errs"
	"github.com/p4tools/go-restrict/pkg/schema"
)

// one is shared by the width computations below; it is never mutated.
var one = big.NewInt(1)

// maxForWidth returns 2^width.
func maxForWidth(width uint) *big.Int {
	return new(big.Int).Lsh(one, width)
}

// ParseWireInteger decodes a big-endian byte string into a non-negative
// integer of at most the given width.  The byte string may be shorter than
// the width requires, implying leading zeros; any excess leading bytes must
// be zero.
func ParseWireInteger(data []byte, width uint) (*big.Int, error) {
	value := new(big.Int).SetBytes(data)
	//
	if uint(value.BitLen()) > width {
		return nil, errs.InvalidArgumentf("byte string %#x exceeds %d bit(s)", data, width)
	}
	//
	return value, nil
}

// parseSignedWireInteger decodes a big-endian byte string holding the W-bit
// two's-complement pattern of a signed value.
func parseSignedWireInteger(data []byte, width uint) (*big.Int, error) {
	value, err := ParseWireInteger(data, width)
	if err != nil {
		return nil, err
	}
	// Patterns with the sign bit set denote negative values.
	if value.Bit(int(width)-1) == 1 {
		value.Sub(value, maxForWidth(width))
	}
	//
	return value, nil
}

// parseKeyValue converts the wire payload of a single match field into a
// runtime value of the declared key type, normalising as it goes: ternary
// values are masked, and LPM values have their bits below the prefix
// cleared.
func parseKeyValue(match *FieldMatch, key *schema.KeyInfo) (Value, error) {
	width := key.Type.BitWidth
	//
	switch key.Type.Kind {
	case ast.KindExact:
		if match.Exact == nil {
			return nil, errs.InvalidArgumentf("field %q is declared %s but carries a different match kind", key.Name, key.Type.String())
		}
		//
		value, err := ParseWireInteger(match.Exact.Value, width)
		if err != nil {
			return nil, err
		}
		//
		return Exact{Value: value}, nil
	case ast.KindTernary:
		if match.Ternary == nil {
			return nil, errs.InvalidArgumentf("field %q is declared %s but carries a different match kind", key.Name, key.Type.String())
		}
		//
		value, err := ParseWireInteger(match.Ternary.Value, width)
		if err != nil {
			return nil, err
		}
		//
		mask, err := ParseWireInteger(match.Ternary.Mask, width)
		if err != nil {
			return nil, err
		}
		// Clear value bits outside the mask.
		value.And(value, mask)
		//
		return Ternary{Value: value, Mask: mask}, nil
	case ast.KindLpm:
		if match.Lpm == nil {
			return nil, errs.InvalidArgumentf("field %q is declared %s but carries a different match kind", key.Name, key.Type.String())
		}
		//
		value, err := ParseWireInteger(match.Lpm.Value, width)
		if err != nil {
			return nil, err
		}
		//
		prefix := match.Lpm.PrefixLength
		if prefix < 0 || uint(prefix) > width {
			return nil, errs.InvalidArgumentf("prefix length %d of field %q outside [0, %d]", prefix, key.Name, width)
		}
		// Clear value bits below the prefix.
		suffix := width - uint(prefix)
		value.Rsh(value, suffix).Lsh(value, suffix)
		//
		return Lpm{Value: value, PrefixLength: big.NewInt(int64(prefix))}, nil
	case ast.KindRange:
		if match.Range == nil {
			return nil, errs.InvalidArgumentf("field %q is declared %s but carries a different match kind", key.Name, key.Type.String())
		}
		//
		low, err := ParseWireInteger(match.Range.Low, width)
		if err != nil {
			return nil, err
		}
		//
		high, err := ParseWireInteger(match.Range.High, width)
		if err != nil {
			return nil, err
		}
		//
		if low.Cmp(high) > 0 {
			return nil, errs.InvalidArgumentf("range field %q has low %s above high %s", key.Name, low.String(), high.String())
		}
		//
		return Range{Low: low, High: high}, nil
	}
	//
	return nil, errs.Internalf("key %q has non-key type %s", key.Name, key.Type.String())
}

// wildcardValue returns the canonical "matches everything" value for an
// omitted key of a non-exact match kind.
func wildcardValue(key *schema.KeyInfo) (Value, error) {
	switch key.Type.Kind {
	case ast.KindTernary:
		return Ternary{Value: big.NewInt(0), Mask: big.NewInt(0)}, nil
	case ast.KindLpm:
		return Lpm{Value: big.NewInt(0), PrefixLength: big.NewInt(0)}, nil
	case ast.KindRange:
		high := maxForWidth(key.Type.BitWidth)
		high.Sub(high, one)
		//
		return Range{Low: big.NewInt(0), High: high}, nil
	}
	//
	return nil, errs.Internalf("no wildcard exists for key type %s", key.Type.String())
}

// ParseTableEntry converts a wire-level table entry into an evaluation
// context for the table's constraint.  The resulting key binding is total
// over the table's declared keys: exact keys must be present, while omitted
// ternary, LPM and range keys are bound to their canonical wildcards.
// Unknown field ids, duplicate fields and out-of-range values are rejected
// as invalid arguments.
func ParseTableEntry(entry *TableEntry, table *schema.TableInfo) (*EvaluationContext, error) {
	keys := make(map[string]Value, len(table.KeysByID))
	//
	for i := range entry.Matches {
		match := &entry.Matches[i]
		//
		key, ok := table.KeysByID[match.FieldID]
		if !ok {
			return nil, errs.InvalidArgumentf("unknown field id %d in entry for table %q", match.FieldID, table.Name)
		}
		//
		if _, dup := keys[key.Name]; dup {
			return nil, errs.InvalidArgumentf("duplicate field %q in entry for table %q", key.Name, table.Name)
		}
		//
		value, err := parseKeyValue(match, key)
		if err != nil {
			return nil, err
		}
		//
		keys[key.Name] = value
	}
	// Bind wildcards for omitted keys, insisting on exact ones.
	for _, key := range table.KeysByID {
		if _, bound := keys[key.Name]; bound {
			continue
		}
		//
		if key.Type.Kind == ast.KindExact {
			return nil, errs.InvalidArgumentf("entry for table %q is missing exact key %q", table.Name, key.Name)
		}
		//
		wildcard, err := wildcardValue(key)
		if err != nil {
			return nil, err
		}
		//
		keys[key.Name] = wildcard
	}
	//
	binding := &TableEntryBinding{
		TableName: table.Name,
		Priority:  big.NewInt(entry.Priority),
		Keys:      keys,
	}
	//
	return &EvaluationContext{Entry: binding, Source: table.Source}, nil
}

// ParseAction converts a wire-level action invocation into an evaluation
// context for the action's constraint.  Every declared parameter must be
// bound exactly once; unknown or duplicate parameters and out-of-range
// values are rejected as invalid arguments.
func ParseAction(action *Action, info *schema.ActionInfo) (*EvaluationContext, error) {
	params := make(map[string]*big.Int, len(info.ParamsByID))
	//
	for i := range action.Params {
		wire := &action.Params[i]
		//
		param, ok := info.ParamsByID[wire.ParamID]
		if !ok {
			return nil, errs.InvalidArgumentf("unknown param id %d in invocation of action %q", wire.ParamID, info.Name)
		}
		//
		if _, dup := params[param.Name]; dup {
			return nil, errs.InvalidArgumentf("duplicate param %q in invocation of action %q", param.Name, info.Name)
		}
		//
		var (
			value *big.Int
			err   error
		)
		//
		if param.Type.Kind == ast.KindFixedSigned {
			value, err = parseSignedWireInteger(wire.Value, param.Type.BitWidth)
		} else {
			value, err = ParseWireInteger(wire.Value, param.Type.BitWidth)
		}
		//
		if err != nil {
			return nil, err
		}
		//
		params[param.Name] = value
	}
	//
	if len(params) != len(info.ParamsByID) {
		for _, param := range info.ParamsByID {
			if _, bound := params[param.Name]; !bound {
				return nil, errs.InvalidArgumentf("invocation of action %q is missing param %q", info.Name, param.Name)
			}
		}
	}
	//
	binding := &ActionBinding{ActionName: info.Name, Params: params}
	//
	return &EvaluationContext{Invocation: binding, Source: info.Source}, nil
}

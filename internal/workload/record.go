// Package workload defines the record shape the harness measures and the
// family of equivalent ways of reading its Roman field.
package workload

import "math/big"

// Record is a small fixed-shape tuple: an ordinal, its Roman numeral and a
// big integer.
type Record struct {
	Ordinal int
	Roman   string
	Big     *big.Int
}

// Tuple is the positional form of a Record: ordinal, Roman numeral, big
// integer. The index variants read it by position.
type Tuple [3]any

// RomanIndex is the position of the Roman numeral in a Tuple
const RomanIndex = 1

// RomanLiteral is the value every variant must return for SampleRecord
const RomanLiteral = "ⅱ"

// SampleRecord is the record every variant reads from
var SampleRecord = Record{Ordinal: 1, Roman: RomanLiteral, Big: big.NewInt(3)}

// SampleTuple is SampleRecord in positional form
var SampleTuple = SampleRecord.Tuple()

// Tuple returns r in positional form
func (r Record) Tuple() Tuple {
	return Tuple{r.Ordinal, r.Roman, r.Big}
}

func getRoman(r *Record) string {
	return r.Roman
}

// Package doctype classifies trade-finance document text into one of six
// fixed types using weighted keyword, header, and cross-type heuristics.
// Classification is single-shot and stateless; ambiguous text yields
// Unknown rather than a guess, and callers decide how to fall back.
package doctype

import (
	"fmt"
	"strings"
)

// Type is a document-type label.
type Type int

const (
	Unknown Type = iota
	DHLReceipt
	CommercialInvoice
	BillOfLading
	PackingList
	ShipmentAdvice
	CoveringSchedule
)

// Categories lists every concrete type in scoring order. Unknown is the
// absence of a confident decision, not a category.
var Categories = []Type{
	DHLReceipt,
	CommercialInvoice,
	BillOfLading,
	PackingList,
	ShipmentAdvice,
	CoveringSchedule,
}

var typeLabels = map[Type]string{
	Unknown:           "no confident match",
	DHLReceipt:        "DHL RECEIPT",
	CommercialInvoice: "COMMERCIAL INVOICE",
	BillOfLading:      "BILL OF LADING",
	PackingList:       "PACKING LIST",
	ShipmentAdvice:    "SHIPMENT ADVICE",
	CoveringSchedule:  "COVERING SCHEDULE",
}

func (t Type) String() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType resolves a label such as "BILL OF LADING" to its Type,
// ignoring case. "no confident match" parses to Unknown.
func ParseType(label string) (Type, error) {
	for t, l := range typeLabels {
		if strings.EqualFold(label, l) {
			return t, nil
		}
	}
	return Unknown, fmt.Errorf("unknown document type %q", label)
}

// MarshalText renders the label, so Type works both as a JSON value and as
// a JSON map key.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a label produced by MarshalText.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Detection reports the winning type and the evidence behind the decision.
// Type is Unknown when no category cleared its confidence floor or the top
// score was tied across categories.
type Detection struct {
	Type Type `json:"type"`
	// Score is the winning category's final score, or the tied/unconfident
	// maximum when Type is Unknown.
	Score int `json:"score"`
	// Scores is the full post-adjustment score table.
	Scores map[Type]int `json:"scores"`
	// HeaderBoosts counts leading-line title matches per category.
	HeaderBoosts map[Type]int `json:"headerBoosts,omitempty"`
}

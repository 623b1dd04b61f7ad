package models

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Subject holds the per-subject summary values. A report covers the
// principal first and then each guarantor or director in document order.
type Subject struct {
	Name                 *string
	IScore               *int
	WindingUpRecord      *int
	CreditAppsApproved   *int
	CreditAppsPending    *int
	LegalActionBanking   *int
	ExistingFacilities   *int
	TotalEnquiries       *int
	SpecialAttention     *int
	LegalSuits           *int
	TradeCreditReference *int
	BorrowerOutstanding  *decimal.Decimal
	BorrowerTotalLimit   *decimal.Decimal
	CaseWithdrawnSettled string
	OtherKnownLegalSuits string
	LegalSuitsDefendant  string
}

// SummaryField is one flattened key/value pair of the summary group, keyed
// by the exact field name the spreadsheet collaborator looks up.
type SummaryField struct {
	Key   string
	Value any
}

// Summary is the scalar summary group of the result.
type Summary struct {
	IncorporationYear    *int
	Status               *string
	PrivateExemptCompany *string
	LastUpdated          *string
	Subjects             []Subject
	// Fields is the flattened, ordered view produced by the field registry.
	Fields []SummaryField
}

// SubjectNames returns the non-empty subject names in order.
func (s Summary) SubjectNames() []string {
	var names []string
	for _, subj := range s.Subjects {
		if subj.Name != nil && *subj.Name != "" {
			names = append(names, *subj.Name)
		}
	}
	return names
}

// Lookup returns the flattened value for a field key.
func (s Summary) Lookup(key string) (any, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON writes the flattened fields as an object in registry order.
func (s Summary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range s.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

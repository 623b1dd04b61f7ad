// Package summary extracts the scalar summary group of a report and
// flattens it into the fixed field names the spreadsheet collaborator
// looks up.
package summary

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fjacquet/ccris-extract/internal/models"
)

// Field names. Per-subject fields carry no suffix for the first subject and
// "_2", "_3", ... for the following ones.
const (
	KeyIncorporationYear     = "Incorporation_Year"
	KeyStatus                = "Status"
	KeyPrivateExemptCompany  = "Private_Exempt_Company"
	KeyLastUpdated           = "Last_Updated_By_Experian"
	KeyAllNames              = "all_names_of_subject"
	KeyName                  = "Name_Of_Subject"
	KeyIScore                = "i_SCORE"
	KeyWindingUp             = "Winding_Up_Record"
	KeyCreditAppsApproved    = "Credit_Applications_Approved_Last_12_months"
	KeyCreditAppsPending     = "Credit_Applications_Pending"
	KeyLegalActionBanking    = "Legal_Action_taken_from_Banking"
	KeyExistingFacilities    = "Existing_No_of_Facility_from_Banking"
	KeyTotalEnquiries        = "Total_Enquiries_Last_12_months"
	KeySpecialAttention      = "Special_Attention_Account"
	KeyLegalSuits            = "Legal_Suits"
	KeyTradeCreditReference  = "Trade_Credit_Reference"
	KeyBorrowerOutstanding   = "Borrower_Outstanding_RM"
	KeyBorrowerTotalLimit    = "Borrower_Total_Limit_RM"
	KeyCaseWithdrawnSettled  = "Case_Withdrawn_Settled_Defendant_Name"
	KeyOtherKnownLegalSuits  = "Other_Known_Legal_Suits_Subject_As_Defendant_Defendant_Name"
	KeyLegalSuitsAsDefendant = "Legal_Suits_Subject_As_Defendant_Defendant_Name"
)

// Field binds a field name to the label printed in the bureau report and to
// a typed accessor. Exactly one of Document and Subject is set.
type Field struct {
	Key string
	// Label is the report label a label-anchored extractor searches for.
	// It is empty for fields read by a dedicated extractor.
	Label    string
	Document func(*models.Summary) any
	Subject  func(*models.Subject) any
	// SetCount stores a label-anchored count on a subject.
	SetCount func(*models.Subject, *int)
}

// PerSubject reports whether the field repeats for every subject.
func (f Field) PerSubject() bool {
	return f.Subject != nil
}

// SubjectKey returns the flattened key of a per-subject field for the
// subject at index i.
func SubjectKey(key string, i int) string {
	if i == 0 {
		return key
	}
	return fmt.Sprintf("%s_%d", key, i+1)
}

// Registry lists every summary field in output order.
var Registry = []Field{
	{Key: KeyIncorporationYear, Label: "Incorporation Date", Document: func(s *models.Summary) any { return intValue(s.IncorporationYear) }},
	{Key: KeyStatus, Label: "Status", Document: func(s *models.Summary) any { return stringValue(s.Status) }},
	{Key: KeyPrivateExemptCompany, Label: "Private Exempt Company", Document: func(s *models.Summary) any { return stringValue(s.PrivateExemptCompany) }},
	{Key: KeyLastUpdated, Label: "Order Date", Document: func(s *models.Summary) any { return stringValue(s.LastUpdated) }},
	{Key: KeyAllNames, Document: func(s *models.Summary) any { return s.SubjectNames() }},
	{Key: KeyName, Label: "Name Of Subject", Subject: func(s *models.Subject) any { return stringValue(s.Name) }},
	{Key: KeyIScore, Label: "i-SCORE", Subject: func(s *models.Subject) any { return intValue(s.IScore) }},
	{
		Key: KeyWindingUp, Label: "Winding Up Record",
		Subject:  func(s *models.Subject) any { return intValue(s.WindingUpRecord) },
		SetCount: func(s *models.Subject, v *int) { s.WindingUpRecord = v },
	},
	{
		Key: KeyCreditAppsApproved, Label: "Credit Applications Approved for Last 12 months",
		Subject:  func(s *models.Subject) any { return intValue(s.CreditAppsApproved) },
		SetCount: func(s *models.Subject, v *int) { s.CreditAppsApproved = v },
	},
	{
		Key: KeyCreditAppsPending, Label: "Credit Applications Pending",
		Subject:  func(s *models.Subject) any { return intValue(s.CreditAppsPending) },
		SetCount: func(s *models.Subject, v *int) { s.CreditAppsPending = v },
	},
	{
		Key: KeyLegalActionBanking, Label: "Legal Action taken (from Banking)",
		Subject:  func(s *models.Subject) any { return intValue(s.LegalActionBanking) },
		SetCount: func(s *models.Subject, v *int) { s.LegalActionBanking = v },
	},
	{
		Key: KeyExistingFacilities, Label: "Existing No. of Facility (from Banking)",
		Subject:  func(s *models.Subject) any { return intValue(s.ExistingFacilities) },
		SetCount: func(s *models.Subject, v *int) { s.ExistingFacilities = v },
	},
	{Key: KeyTotalEnquiries, Label: "FINANCIAL RELATED SEARCH COUNT", Subject: func(s *models.Subject) any { return intValue(s.TotalEnquiries) }},
	{
		Key: KeySpecialAttention, Label: "Special Attention Account",
		Subject:  func(s *models.Subject) any { return intValue(s.SpecialAttention) },
		SetCount: func(s *models.Subject, v *int) { s.SpecialAttention = v },
	},
	{Key: KeyLegalSuits, Label: "Legal Suits", Subject: func(s *models.Subject) any { return intValue(s.LegalSuits) }},
	{Key: KeyTradeCreditReference, Label: "TRADE / CREDIT REFERENCE (CR)", Subject: func(s *models.Subject) any { return intValue(s.TradeCreditReference) }},
	{Key: KeyBorrowerOutstanding, Label: "Borrower", Subject: func(s *models.Subject) any { return decimalValue(s.BorrowerOutstanding) }},
	{Key: KeyBorrowerTotalLimit, Label: "Borrower", Subject: func(s *models.Subject) any { return decimalValue(s.BorrowerTotalLimit) }},
	{Key: KeyCaseWithdrawnSettled, Subject: func(s *models.Subject) any { return s.CaseWithdrawnSettled }},
	{Key: KeyOtherKnownLegalSuits, Subject: func(s *models.Subject) any { return s.OtherKnownLegalSuits }},
	{Key: KeyLegalSuitsAsDefendant, Subject: func(s *models.Subject) any { return s.LegalSuitsDefendant }},
}

// Lookup returns the registry entry for a base key.
func Lookup(key string) (Field, bool) {
	for _, f := range Registry {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Flatten renders s as ordered key/value pairs following the registry.
// Per-subject fields are emitted once per subject, grouped by field.
func Flatten(s *models.Summary) []models.SummaryField {
	fields := make([]models.SummaryField, 0, len(Registry)*max(1, len(s.Subjects)))
	for _, f := range Registry {
		if !f.PerSubject() {
			fields = append(fields, models.SummaryField{Key: f.Key, Value: f.Document(s)})
			continue
		}
		for i := range s.Subjects {
			fields = append(fields, models.SummaryField{
				Key:   SubjectKey(f.Key, i),
				Value: f.Subject(&s.Subjects[i]),
			})
		}
	}
	return fields
}

func intValue(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func stringValue(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func decimalValue(p *decimal.Decimal) any {
	if p == nil {
		return nil
	}
	return *p
}

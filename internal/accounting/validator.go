package accounting

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format journal entries are keyed by.
const DateLayout = "2006-01-02"

// DefaultMaxAmount is the per-line amount ceiling in won.
var DefaultMaxAmount = decimal.NewFromInt(1_000_000_000)

const maxDescriptionLen = 500

// LineInput is a proposed journal line as submitted by a writer.
type LineInput struct {
	AccountID int64
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// EntryInput is a proposed journal entry prior to admission into the ledger.
type EntryInput struct {
	Date        string
	Description string
	Lines       []LineInput
}

// FieldError pinpoints a single validation failure on an input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator enforces the structural and balance invariants of a journal
// entry. All rules are checked independently so the caller receives every
// violation at once, not just the first.
type Validator struct {
	MaxAmount decimal.Decimal
}

// NewValidator returns a validator with the default amount ceiling.
func NewValidator() *Validator {
	return &Validator{MaxAmount: DefaultMaxAmount}
}

// Validate checks a proposed entry and returns all violations found. An empty
// slice means the entry is admissible. Validation failures are always data,
// never errors.
func (v *Validator) Validate(in EntryInput) []FieldError {
	var errs []FieldError

	if _, err := time.Parse(DateLayout, in.Date); err != nil {
		errs = append(errs, FieldError{Field: "date", Message: "date must be a valid calendar date (YYYY-MM-DD)"})
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		errs = append(errs, FieldError{Field: "description", Message: "description is required"})
	} else if len([]rune(description)) > maxDescriptionLen {
		errs = append(errs, FieldError{Field: "description", Message: "description must be 500 characters or fewer"})
	}
	if strings.ContainsAny(description, "<>") {
		errs = append(errs, FieldError{Field: "description", Message: "description must not contain '<' or '>'"})
	}

	if len(in.Lines) < 2 {
		errs = append(errs, FieldError{Field: "lines", Message: "a journal entry needs at least two lines"})
	}

	for i, line := range in.Lines {
		errs = append(errs, v.validateLine(i, line)...)
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range in.Lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	if !totalDebit.Equal(totalCredit) {
		msg := fmt.Sprintf("total debits (%s) and total credits (%s) must match", totalDebit, totalCredit)
		errs = append(errs,
			FieldError{Field: "lines.debit", Message: msg},
			FieldError{Field: "lines.credit", Message: msg},
		)
	}

	return errs
}

func (v *Validator) validateLine(idx int, line LineInput) []FieldError {
	var errs []FieldError
	debitField := fmt.Sprintf("lines[%d].debit", idx)
	creditField := fmt.Sprintf("lines[%d].credit", idx)

	if line.AccountID < 1 {
		errs = append(errs, FieldError{
			Field:   fmt.Sprintf("lines[%d].accountID", idx),
			Message: "an account must be selected",
		})
	}

	errs = append(errs, v.validateAmount(debitField, "debit", line.Debit)...)
	errs = append(errs, v.validateAmount(creditField, "credit", line.Credit)...)

	hasDebit := line.Debit.IsPositive()
	hasCredit := line.Credit.IsPositive()
	switch {
	case !hasDebit && !hasCredit:
		msg := "either a debit or a credit amount is required"
		errs = append(errs,
			FieldError{Field: debitField, Message: msg},
			FieldError{Field: creditField, Message: msg},
		)
	case hasDebit && hasCredit:
		msg := "a line may carry a debit or a credit, not both"
		errs = append(errs,
			FieldError{Field: debitField, Message: msg},
			FieldError{Field: creditField, Message: msg},
		)
	}

	return errs
}

func (v *Validator) validateAmount(field, side string, amount decimal.Decimal) []FieldError {
	var errs []FieldError
	if amount.IsNegative() {
		errs = append(errs, FieldError{Field: field, Message: side + " amount must be zero or more"})
	}
	if !amount.IsInteger() {
		// Won has no subunit.
		errs = append(errs, FieldError{Field: field, Message: side + " amount must be a whole number of won"})
	}
	if amount.GreaterThan(v.MaxAmount) {
		errs = append(errs, FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s amount must not exceed %s won", side, v.MaxAmount),
		})
	}
	return errs
}

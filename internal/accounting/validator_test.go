package accounting_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jangbu-app/jangbu_backend/internal/accounting"
)

func won(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount)
}

func balancedInput() accounting.EntryInput {
	return accounting.EntryInput{
		Date:        "2025-01-15",
		Description: "Sales for cash",
		Lines: []accounting.LineInput{
			{AccountID: 101, Debit: won(1000), Credit: won(0)},
			{AccountID: 401, Debit: won(0), Credit: won(1000)},
		},
	}
}

func fieldsOf(errs []accounting.FieldError) []string {
	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
	}
	return fields
}

func TestValidate_AcceptsBalancedEntry(t *testing.T) {
	v := accounting.NewValidator()
	assert.Empty(t, v.Validate(balancedInput()))
}

func TestValidate_RejectsUnbalancedEntry(t *testing.T) {
	// Debit 700 against credit 300 must fail with errors on both sum paths.
	v := accounting.NewValidator()
	in := accounting.EntryInput{
		Date:        "2025-01-15",
		Description: "Broken entry",
		Lines: []accounting.LineInput{
			{AccountID: 101, Debit: won(700), Credit: won(0)},
			{AccountID: 401, Debit: won(0), Credit: won(300)},
		},
	}

	errs := v.Validate(in)
	require.Len(t, errs, 2)
	assert.Contains(t, fieldsOf(errs), "lines.debit")
	assert.Contains(t, fieldsOf(errs), "lines.credit")
	for _, e := range errs {
		assert.Contains(t, e.Message, "must match")
	}
}

func TestValidate_DateAndDescription(t *testing.T) {
	v := accounting.NewValidator()

	tests := []struct {
		name      string
		mutate    func(*accounting.EntryInput)
		wantField string
	}{
		{"unparseable date", func(in *accounting.EntryInput) { in.Date = "2025-13-40" }, "date"},
		{"empty date", func(in *accounting.EntryInput) { in.Date = "" }, "date"},
		{"blank description", func(in *accounting.EntryInput) { in.Description = "   " }, "description"},
		{"overlong description", func(in *accounting.EntryInput) { in.Description = strings.Repeat("가", 501) }, "description"},
		{"angle brackets", func(in *accounting.EntryInput) { in.Description = "rent <script>" }, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := balancedInput()
			tt.mutate(&in)
			errs := v.Validate(in)
			require.NotEmpty(t, errs)
			assert.Contains(t, fieldsOf(errs), tt.wantField)
		})
	}
}

func TestValidate_DescriptionAtLimitPasses(t *testing.T) {
	v := accounting.NewValidator()
	in := balancedInput()
	in.Description = strings.Repeat("가", 500)
	assert.Empty(t, v.Validate(in))
}

func TestValidate_MinimumTwoLines(t *testing.T) {
	v := accounting.NewValidator()
	in := balancedInput()
	in.Lines = in.Lines[:1]

	errs := v.Validate(in)
	assert.Contains(t, fieldsOf(errs), "lines")
}

func TestValidate_LineRules(t *testing.T) {
	v := accounting.NewValidator()

	t.Run("neither side set flags both fields", func(t *testing.T) {
		in := balancedInput()
		in.Lines[0] = accounting.LineInput{AccountID: 101, Debit: won(0), Credit: won(0)}
		in.Lines[1] = accounting.LineInput{AccountID: 401, Debit: won(0), Credit: won(0)}

		errs := v.Validate(in)
		assert.Contains(t, fieldsOf(errs), "lines[0].debit")
		assert.Contains(t, fieldsOf(errs), "lines[0].credit")
	})

	t.Run("both sides set flags both fields", func(t *testing.T) {
		in := balancedInput()
		in.Lines[0] = accounting.LineInput{AccountID: 101, Debit: won(500), Credit: won(500)}

		errs := v.Validate(in)
		assert.Contains(t, fieldsOf(errs), "lines[0].debit")
		assert.Contains(t, fieldsOf(errs), "lines[0].credit")
	})

	t.Run("invalid account id", func(t *testing.T) {
		in := balancedInput()
		in.Lines[0].AccountID = 0

		errs := v.Validate(in)
		assert.Contains(t, fieldsOf(errs), "lines[0].accountID")
	})

	t.Run("negative amount", func(t *testing.T) {
		in := balancedInput()
		in.Lines[0].Debit = won(-100)
		in.Lines[1].Credit = won(-100)

		errs := v.Validate(in)
		assert.Contains(t, fieldsOf(errs), "lines[0].debit")
		assert.Contains(t, fieldsOf(errs), "lines[1].credit")
	})

	t.Run("fractional won", func(t *testing.T) {
		in := balancedInput()
		half := decimal.NewFromFloat(100.5)
		in.Lines[0].Debit = half
		in.Lines[1].Credit = half

		errs := v.Validate(in)
		assert.Contains(t, fieldsOf(errs), "lines[0].debit")
		assert.Contains(t, fieldsOf(errs), "lines[1].credit")
	})

	t.Run("over the ceiling", func(t *testing.T) {
		in := balancedInput()
		over := accounting.DefaultMaxAmount.Add(won(1))
		in.Lines[0].Debit = over
		in.Lines[1].Credit = over

		errs := v.Validate(in)
		assert.Contains(t, fieldsOf(errs), "lines[0].debit")
		assert.Contains(t, fieldsOf(errs), "lines[1].credit")
	})

	t.Run("exactly the ceiling passes", func(t *testing.T) {
		in := balancedInput()
		in.Lines[0].Debit = accounting.DefaultMaxAmount
		in.Lines[1].Credit = accounting.DefaultMaxAmount
		assert.Empty(t, v.Validate(in))
	})
}

func TestValidate_ReportsAllViolationsAtOnce(t *testing.T) {
	v := accounting.NewValidator()
	in := accounting.EntryInput{
		Date:        "not-a-date",
		Description: "",
		Lines: []accounting.LineInput{
			{AccountID: 0, Debit: won(300), Credit: won(300)},
		},
	}

	errs := v.Validate(in)
	fields := fieldsOf(errs)
	assert.Contains(t, fields, "date")
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "lines")
	assert.Contains(t, fields, "lines[0].accountID")
	assert.Contains(t, fields, "lines[0].debit")
}

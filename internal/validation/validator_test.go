package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Kind   string          `json:"type" validate:"required,transaction_kind"`
	Amount decimal.Decimal `json:"amount" validate:"money_amount"`
	Date   string          `json:"date" validate:"required,calendar_date"`
}

func TestValidator_AcceptsValidRequest(t *testing.T) {
	v := NewValidator()

	err := v.Struct(sampleRequest{Kind: "expense", Amount: decimal.RequireFromString("12.50"), Date: "2024-02-29"})
	assert.NoError(t, err)
}

func TestValidator_ZeroAmountIsAllowed(t *testing.T) {
	v := NewValidator()

	err := v.Struct(sampleRequest{Kind: "income", Amount: decimal.Zero, Date: "2024-01-01"})
	assert.NoError(t, err)
}

func TestValidator_LargestStorableAmount(t *testing.T) {
	v := NewValidator()

	err := v.Struct(sampleRequest{Kind: "income", Amount: MaxMoneyAmount, Date: "2024-01-01"})
	assert.NoError(t, err)

	err = v.Struct(sampleRequest{Kind: "income", Amount: decimal.RequireFromString("123456789.12"), Date: "2024-01-01"})
	assert.NoError(t, err)
}

func TestValidator_RejectsFields(t *testing.T) {
	tests := []struct {
		name  string
		req   sampleRequest
		field string
		tag   string
	}{
		{"unknown kind", sampleRequest{Kind: "transfer", Amount: decimal.NewFromInt(1), Date: "2024-01-01"}, "type", "transaction_kind"},
		{"negative amount", sampleRequest{Kind: "expense", Amount: decimal.NewFromInt(-1), Date: "2024-01-01"}, "amount", "money_amount"},
		{"three decimals", sampleRequest{Kind: "expense", Amount: decimal.RequireFromString("1.005"), Date: "2024-01-01"}, "amount", "money_amount"},
		{"above column limit", sampleRequest{Kind: "income", Amount: decimal.RequireFromString("10000000000000"), Date: "2024-01-01"}, "amount", "money_amount"},
		{"just above column limit", sampleRequest{Kind: "income", Amount: decimal.RequireFromString("9999999999999.991"), Date: "2024-01-01"}, "amount", "money_amount"},
		{"not a date", sampleRequest{Kind: "expense", Amount: decimal.NewFromInt(1), Date: "yesterday"}, "date", "calendar_date"},
		{"impossible day", sampleRequest{Kind: "expense", Amount: decimal.NewFromInt(1), Date: "2023-02-29"}, "date", "calendar_date"},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field())
			assert.Equal(t, tt.tag, verrs[0].Tag())
		})
	}
}

func TestGetValidator_Singleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
	assert.NotNil(t, GetValidator().GetValidate())
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_Validate(t *testing.T) {
	owner := uuid.New()

	tests := []struct {
		name        string
		transaction *Transaction
		wantErr     error
		errMsg      string
	}{
		{
			name: "valid expense",
			transaction: &Transaction{
				UserID:   owner,
				Kind:     TransactionKindExpense,
				Amount:   decimal.NewFromFloat(42.5),
				Category: "Food",
				Date:     "2024-01-20",
			},
		},
		{
			name: "zero amount income is allowed",
			transaction: &Transaction{
				UserID:   owner,
				Kind:     TransactionKindIncome,
				Amount:   decimal.Zero,
				Category: "Salary",
				Date:     "2024-01-15",
			},
		},
		{
			name: "unknown kind",
			transaction: &Transaction{
				UserID:   owner,
				Kind:     "transfer",
				Amount:   decimal.NewFromInt(1),
				Category: "Misc",
				Date:     "2024-01-15",
			},
			wantErr: ErrInvalidTransactionKind,
		},
		{
			name: "negative amount",
			transaction: &Transaction{
				UserID:   owner,
				Kind:     TransactionKindExpense,
				Amount:   decimal.NewFromInt(-5),
				Category: "Food",
				Date:     "2024-01-15",
			},
			wantErr: ErrNegativeAmount,
		},
		{
			name: "missing owner",
			transaction: &Transaction{
				Kind:     TransactionKindExpense,
				Amount:   decimal.NewFromInt(5),
				Category: "Food",
				Date:     "2024-01-15",
			},
			errMsg: "user ID is required",
		},
		{
			name: "missing category",
			transaction: &Transaction{
				UserID: owner,
				Kind:   TransactionKindExpense,
				Amount: decimal.NewFromInt(5),
				Date:   "2024-01-15",
			},
			errMsg: "category is required",
		},
		{
			name: "missing date",
			transaction: &Transaction{
				UserID:   owner,
				Kind:     TransactionKindExpense,
				Amount:   decimal.NewFromInt(5),
				Category: "Food",
			},
			errMsg: "date is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transaction.Validate()
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Equal(t, tt.errMsg, err.Error())
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_KindHelpers(t *testing.T) {
	income := &Transaction{Kind: TransactionKindIncome}
	expense := &Transaction{Kind: TransactionKindExpense}

	assert.True(t, income.IsIncome())
	assert.False(t, income.IsExpense())
	assert.True(t, expense.IsExpense())
	assert.False(t, IsValidTransactionKind("refund"))
}

func TestTransaction_BeforeCreateSetsDefaults(t *testing.T) {
	txn := &Transaction{
		UserID:   uuid.New(),
		Kind:     TransactionKindIncome,
		Amount:   decimal.NewFromInt(1000),
		Category: "Salary",
		Date:     "2024-02-15",
	}

	require.NoError(t, txn.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, txn.ID)
	assert.False(t, txn.CreatedAt.IsZero())
	assert.False(t, txn.UpdatedAt.IsZero())
}

func TestTransaction_JSONAmountIsNumber(t *testing.T) {
	txn := &Transaction{Kind: TransactionKindExpense, Amount: decimal.RequireFromString("12.50"), Category: "Food", Date: "2024-01-20"}

	raw, err := json.Marshal(txn)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, 12.5, decoded["amount"])
	assert.Equal(t, "expense", decoded["type"])
	assert.Nil(t, decoded["receipt_url"])
}

func TestDateRange_Contains(t *testing.T) {
	r := DateRange{Start: "2024-12-01", End: "2025-01-01"}

	assert.True(t, r.Contains("2024-12-01"))
	assert.True(t, r.Contains("2024-12-31"))
	assert.False(t, r.Contains("2025-01-01"))
	assert.False(t, r.Contains("2024-11-30"))
}

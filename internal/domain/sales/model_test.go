package sales

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferropos/internal/core/apperror"
	"ferropos/internal/core/types"
)

func TestCommitRequestValidate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		req      CommitRequest
		wantCode string
	}{
		{
			name: "valid request",
			req: CommitRequest{
				CashierID:   1,
				OpeningCash: types.MustMoney("100.00"),
				Lines:       []Line{{ProductID: 1, Quantity: 2}},
			},
		},
		{
			name: "missing cashier",
			req: CommitRequest{
				Lines: []Line{{ProductID: 1, Quantity: 2}},
			},
			wantCode: apperror.CodeValidation,
		},
		{
			name: "negative opening cash",
			req: CommitRequest{
				CashierID:   1,
				OpeningCash: types.MustMoney("-0.01"),
				Lines:       []Line{{ProductID: 1, Quantity: 2}},
			},
			wantCode: apperror.CodeValidation,
		},
		{
			name: "empty sale",
			req: CommitRequest{
				CashierID: 1,
			},
			wantCode: apperror.CodeEmptySale,
		},
		{
			name: "zero quantity",
			req: CommitRequest{
				CashierID: 1,
				Lines:     []Line{{ProductID: 1, Quantity: 0}},
			},
			wantCode: apperror.CodeInvalidQuantity,
		},
		{
			name: "negative quantity",
			req: CommitRequest{
				CashierID: 1,
				Lines:     []Line{{ProductID: 1, Quantity: -3}},
			},
			wantCode: apperror.CodeInvalidQuantity,
		},
		{
			name: "missing product id",
			req: CommitRequest{
				CashierID: 1,
				Lines:     []Line{{ProductID: 0, Quantity: 1}},
			},
			wantCode: apperror.CodeInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate(ctx)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestCommitRequestValidate_CashierCheckedBeforeLines(t *testing.T) {
	// An anonymous request with an empty cart reports the missing cashier,
	// not the empty sale.
	req := CommitRequest{}
	err := req.Validate(context.Background())

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestMergedLines(t *testing.T) {
	req := CommitRequest{
		CashierID: 1,
		Lines: []Line{
			{ProductID: 7, Quantity: 2},
			{ProductID: 3, Quantity: 1},
			{ProductID: 7, Quantity: 4},
		},
	}

	merged := req.mergedLines()

	require.Len(t, merged, 2)
	assert.Equal(t, Line{ProductID: 3, Quantity: 1}, merged[0])
	assert.Equal(t, Line{ProductID: 7, Quantity: 6}, merged[1])
}

func TestMergedLines_SortedByProductID(t *testing.T) {
	req := CommitRequest{
		CashierID: 1,
		Lines: []Line{
			{ProductID: 9, Quantity: 1},
			{ProductID: 2, Quantity: 1},
			{ProductID: 5, Quantity: 1},
		},
	}

	merged := req.mergedLines()

	require.Len(t, merged, 3)
	for i := 1; i < len(merged); i++ {
		assert.Less(t, merged[i-1].ProductID, merged[i].ProductID)
	}
}

package vocab

import (
	"testing"

	"github.com/Veraticus/finpilot/internal/common"
	"github.com/Veraticus/finpilot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceCode(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "Housing", want: CodeRent},
		{name: "Food", want: CodeFood},
		{name: "Transport", want: CodeTransport},
		{name: "Entertainment", want: CodeEntertainment},
		{name: "Utilities", want: CodeMisc},
		{name: "Shopping", want: CodeMisc},
		{name: "Health", want: CodeMisc},
		{name: "Savings", want: CodeSavings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToServiceCode(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToServiceCode_Unknown(t *testing.T) {
	for _, name := range []string{"", "Groceries", "food"} {
		_, err := ToServiceCode(name)
		assert.ErrorIs(t, err, common.ErrUnknownCategory, name)
	}
}

func TestRoundTripThroughDisplayName(t *testing.T) {
	for _, name := range Names() {
		code, err := ToServiceCode(name)
		require.NoError(t, err)

		again, err := ToServiceCode(ToDisplayName(code))
		require.NoError(t, err)
		assert.Equal(t, code, again, name)
	}
}

func TestToDisplayName_Fallback(t *testing.T) {
	for _, code := range []string{"", "groceries", "RENT", "unknown"} {
		assert.Equal(t, FallbackCategory, ToDisplayName(code), code)
	}
	assert.Equal(t, "Utilities", ToDisplayName(CodeMisc))
}

func TestEveryDisplayCategoryHasForwardMapping(t *testing.T) {
	names := Names()
	require.Len(t, names, 8)
	for _, name := range names {
		_, err := ToServiceCode(name)
		assert.NoError(t, err, name)
	}
}

func TestCategoryIDForCode(t *testing.T) {
	assert.Equal(t, model.CategoryHousing, CategoryIDForCode(CodeRent))
	assert.Equal(t, model.CategoryFood, CategoryIDForCode(CodeFood))
	assert.Equal(t, model.CategoryUtilities, CategoryIDForCode(CodeMisc))
	assert.Equal(t, model.CategoryUtilities, CategoryIDForCode("crypto"))
}

func TestCodeForCategoryID(t *testing.T) {
	code, err := CodeForCategoryID(model.CategoryShopping)
	require.NoError(t, err)
	assert.Equal(t, CodeMisc, code)

	_, err = CodeForCategoryID("99")
	assert.ErrorIs(t, err, common.ErrInvalidCategory)
}

func TestCategoryIDForName(t *testing.T) {
	id, err := CategoryIDForName("food")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryFood, id)

	_, err = CategoryIDForName("Pets")
	assert.ErrorIs(t, err, common.ErrUnknownCategory)
}

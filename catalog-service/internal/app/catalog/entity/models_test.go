package entity

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductDTO_PriceIsJSONNumber(t *testing.T) {
	row := ProductWithCategory{
		Product: Product{
			ID:          1,
			Name:        "Mouse",
			Description: "USB",
			Price:       decimal.RequireFromString("9.90"),
			CategoryID:  1,
		},
		CategoryName: "Electrónica",
	}

	data, err := json.Marshal(row.ToDTO())

	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Mouse","description":"USB","price":9.9,"categoryId":1,"categoryName":"Electrónica"}`, string(data))
}

func TestProductInput_AcceptsNumberAndString(t *testing.T) {
	var fromNumber, fromString ProductInput

	require.NoError(t, json.Unmarshal([]byte(`{"price":19.99}`), &fromNumber))
	require.NoError(t, json.Unmarshal([]byte(`{"price":"19.99"}`), &fromString))

	assert.True(t, fromNumber.Price.Equal(fromString.Price))
}

func TestProductInput_Normalize(t *testing.T) {
	in := ProductInput{Name: "  Sofá ", Description: "\tTres plazas\n"}

	in.Normalize()

	assert.Equal(t, "Sofá", in.Name)
	assert.Equal(t, "Tres plazas", in.Description)
}

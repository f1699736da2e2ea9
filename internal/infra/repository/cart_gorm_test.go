package repository

import (
	"encoding/json"
	"testing"

	"shop/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

// 保存形式（順序付きJSON配列）がそのまま復元できること
func TestDecodeItems_RoundTrip(t *testing.T) {
	items := []model.LineItem{
		{ProductID: "pA", PriceReference: "price_A", UnitAmount: 1000, Currency: "usd", DisplayName: "A", Quantity: 2},
		{ProductID: "pB", PriceReference: "price_B", UnitAmount: 2500, Currency: "usd", DisplayName: "B", Quantity: 1},
	}

	data, err := json.Marshal(items)
	assert.NoError(t, err)

	cart, err := decodeItems(data)
	assert.NoError(t, err)
	assert.Equal(t, items, cart.Items)
	assert.Equal(t, int64(3), cart.ItemCount())
	assert.Equal(t, int64(2*1000+2500), cart.TotalAmount())
}

func TestDecodeItems_EmptyDocument(t *testing.T) {
	cart, err := decodeItems(nil)
	assert.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	cart, err = decodeItems([]byte(emptyItemsJSON))
	assert.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestDecodeItems_BrokenDocument(t *testing.T) {
	_, err := decodeItems([]byte("{not json"))
	assert.Error(t, err)
}

package model

// Cart はカート集約。
// items は追加順を保持し、product_id は一意。数量0の明細は保持しない。
// 合計・点数は毎回 items から再計算する（別持ちの集計は持たない）。
type Cart struct {
	Items []LineItem `json:"items"`
}

func NewCart(items []LineItem) Cart {
	return Cart{Items: items}
}

// 同一商品は数量加算、無ければ数量1で末尾に追加
func (c *Cart) Add(item LineItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity++
			return
		}
	}

	item.Quantity = 1
	c.Items = append(c.Items, item)
}

// 数量+1（存在しないIDはno-op）
func (c *Cart) Increment(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity++
			return
		}
	}
}

// 数量-1（0になったら明細ごと削除。存在しないIDはno-op）
func (c *Cart) Decrement(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity--
			if c.Items[i].Quantity <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			}
			return
		}
	}
}

// 明細削除（存在しないIDはno-op）
func (c *Cart) Remove(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// 全明細を空にする（空カートへのClearもno-op）
func (c *Cart) Clear() {
	c.Items = nil
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// 総点数（数量の合計）
func (c Cart) ItemCount() int64 {
	var n int64
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// 合計金額（最小通貨単位）
func (c Cart) TotalAmount() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.Subtotal()
	}
	return total
}

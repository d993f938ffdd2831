package domain

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart 会话级购物车
type Cart struct {
	gorm.Model
	SessionID string     `gorm:"column:session_id;type:varchar(36);uniqueIndex;not null"`
	Items     []CartItem `gorm:"foreignKey:CartID"`
}

func (Cart) TableName() string { return "carts" }

// CartItem 购物车行条目
type CartItem struct {
	gorm.Model
	CartID    uint            `gorm:"column:cart_id;index;not null"`
	ProductID int64           `gorm:"column:product_id;not null"`
	Title     string          `gorm:"column:title;type:varchar(255)"`
	Artist    string          `gorm:"column:artist;type:varchar(255)"`
	Image     string          `gorm:"column:image;type:varchar(512)"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:decimal(10,2)"`
	Quantity  int             `gorm:"column:quantity;not null"`
}

func (CartItem) TableName() string { return "cart_items" }

// Total 每次读取重新计算 Σ(单价×数量)，不冗余存储
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// AddItem 加入商品：同 id 条目数量 +1，否则追加数量为 1 的新条目
func (c *Cart) AddItem(productID int64, title, artist, image string, unitPrice decimal.Decimal) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		ProductID: productID,
		Title:     title,
		Artist:    artist,
		Image:     image,
		UnitPrice: unitPrice,
		Quantity:  1,
	})
}

// UpdateQuantity 数量 ≤ 0 时移除条目，否则精确设置为 newQty（非累加）
func (c *Cart) UpdateQuantity(productID int64, newQty int) {
	if newQty <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = newQty
			return
		}
	}
}

// RemoveItem 删除整个条目
func (c *Cart) RemoveItem(productID int64) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear 清空购物车
func (c *Cart) Clear() {
	c.Items = nil
}

// Empty 是否为空
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}

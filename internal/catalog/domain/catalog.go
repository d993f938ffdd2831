package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrProductNotFound = errors.New("product not found")
)

// Program 基金会项目介绍
type Program struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// EventDate 活动日期展示字段
type EventDate struct {
	Day   string `json:"day"`
	Month string `json:"month"`
}

// Event 活动；Price 为 0 表示免费活动，走 RSVP 而非支付流程
type Event struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Date        EventDate       `json:"date"`
	Time        string          `json:"time"`
	Location    string          `json:"location"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
}

// Free 是否免费活动
func (e Event) Free() bool {
	return e.Price.IsZero()
}

// Product 商店商品
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Artist      string          `json:"artist"`
	Image       string          `json:"image"`
}

// Artist 艺术家
type Artist struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
}

// Repository 目录数据仓储
type Repository interface {
	Programs(ctx context.Context) ([]Program, error)
	Events(ctx context.Context) ([]Event, error)
	EventByID(ctx context.Context, id int64) (*Event, error)
	Products(ctx context.Context) ([]Product, error)
	ProductByID(ctx context.Context, id int64) (*Product, error)
	Artists(ctx context.Context) ([]Artist, error)
}

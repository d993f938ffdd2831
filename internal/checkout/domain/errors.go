package domain

import "errors"

var (
	// ErrFreeEvent 免费活动走 RSVP，不建立支付意图
	ErrFreeEvent = errors.New("event is free, use RSVP instead of payment")
	ErrEmptyCart = errors.New("cart is empty")
	// ErrTotalMismatch 客户端声称的合计与服务端重算不一致
	ErrTotalMismatch = errors.New("cart total does not match server-side total")
)

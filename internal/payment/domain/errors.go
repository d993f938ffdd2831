package domain

import "errors"

var (
	// ErrAmountTooSmall 金额低于最低限额
	ErrAmountTooSmall = errors.New("amount below minimum")
	// ErrInvalidMetadata 元数据校验失败
	ErrInvalidMetadata = errors.New("invalid payment metadata")
	// ErrIntentCreateFailed 支付提供方创建意图失败
	ErrIntentCreateFailed = errors.New("payment intent creation failed")
)

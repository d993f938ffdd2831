package domain

import (
	"context"
	"errors"
)

// Outcome 确认一次支付的归类结果
type Outcome string

const (
	// OutcomeSucceeded 提供方报告意图已完成
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomeProcessing 异步支付方式，UI 层面按临时成功处理，真实结果取决于提供方的异步完成
	OutcomeProcessing Outcome = "processing"
	// OutcomeFailed 真实的支付失败（拒付等），可重试
	OutcomeFailed Outcome = "failed"
)

// ConfirmationResult 确认结果及其归类依据
type ConfirmationResult struct {
	Outcome Outcome
	// Recovered 为 true 表示由中断响应错误改判而来：错误内嵌的意图自述已成功
	Recovered bool
	Intent    *IntentSnapshot
	// 失败时的提供方错误描述
	FailureMessage string
}

// ClassifyConfirmation 把提供方的确认结果归入少数几种结局。
//
// 改判规则刻意收窄：仅当错误码表明响应投递被中断、且错误内嵌的意图状态
// 自述为 succeeded 时，才按成功处理，避免把传输层抖动报成假失败。
// 其余所有错误一律按真实失败处理，不做任何乐观假设。
func ClassifyConfirmation(intent *IntentSnapshot, err error) ConfirmationResult {
	if err != nil {
		var provErr *ProviderError
		if errors.As(err, &provErr) {
			if provErr.Code == CodeIntentUnexpectedState &&
				provErr.Intent != nil &&
				provErr.Intent.Status == IntentStatusSucceeded {
				return ConfirmationResult{
					Outcome:   OutcomeSucceeded,
					Recovered: true,
					Intent:    provErr.Intent,
				}
			}
			return ConfirmationResult{Outcome: OutcomeFailed, FailureMessage: provErr.Message}
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return ConfirmationResult{Outcome: OutcomeFailed, FailureMessage: "payment confirmation timed out"}
		}
		return ConfirmationResult{Outcome: OutcomeFailed, FailureMessage: err.Error()}
	}

	switch intent.Status {
	case IntentStatusSucceeded:
		return ConfirmationResult{Outcome: OutcomeSucceeded, Intent: intent}
	case IntentStatusProcessing, IntentStatusRequiresAction:
		return ConfirmationResult{Outcome: OutcomeProcessing, Intent: intent}
	default:
		return ConfirmationResult{
			Outcome:        OutcomeFailed,
			Intent:         intent,
			FailureMessage: "payment was not completed",
		}
	}
}

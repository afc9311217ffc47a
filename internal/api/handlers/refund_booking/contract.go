package refund_booking

import (
	"context"

	refundDeposit "github.com/johntint/booking-service/internal/usecase/refund_deposit"
)

type RefundDepositUseCase interface {
	Execute(ctx context.Context, req *refundDeposit.Request) (*refundDeposit.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

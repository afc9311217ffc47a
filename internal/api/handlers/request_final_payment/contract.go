package request_final_payment

import (
	"context"

	requestFinalPayment "github.com/johntint/booking-service/internal/usecase/request_final_payment"
)

type RequestFinalPaymentUseCase interface {
	Execute(ctx context.Context, req *requestFinalPayment.Request) (*requestFinalPayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

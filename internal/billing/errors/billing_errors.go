package billingerrors

import (
	"fmt"
	"net/http"

	"hr-erp/internal/shared/apperror"
)

var ErrNotScheduledForCancellation = apperror.New(
	apperror.CodeInvalidInput,
	"This subscription is not scheduled for cancellation",
	http.StatusBadRequest,
)

// SubscriptionNotFound mirrors the provider's missing-resource response.
func SubscriptionNotFound(id string) *apperror.AppError {
	return apperror.New(
		apperror.CodeNotFound,
		fmt.Sprintf("No subscription found with id %s", id),
		http.StatusNotFound,
	)
}

// Upstream wraps a payment-provider failure with the provider's own message.
func Upstream(err error, message string) *apperror.AppError {
	return apperror.Wrap(
		err,
		apperror.CodeUpstream,
		message,
		http.StatusBadRequest,
	)
}

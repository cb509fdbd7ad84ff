package billing

type CreateSubscriptionRequest struct {
	CustomerID      string `json:"customerId" binding:"required"`
	PriceID         string `json:"priceId" binding:"required"`
	PaymentMethodID string `json:"paymentMethodId"`
}

type UpdateSubscriptionRequest struct {
	PriceID         string `json:"priceId"`
	PaymentMethodID string `json:"paymentMethodId"`
}

type SchedulePhase struct {
	PriceID    string `json:"priceId" binding:"required"`
	Iterations int64  `json:"iterations"`
}

type CreateScheduleRequest struct {
	CustomerID string          `json:"customerId" binding:"required"`
	Phases     []SchedulePhase `json:"phases" binding:"required,min=1,dive"`
	StartDate  int64           `json:"startDate"`
}

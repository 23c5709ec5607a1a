package response

// ErrorResponse - типизированная схема ошибки API Allegro.
type ErrorResponse struct {
	Errors []ErrorDetail `json:"errors"`
}

type ErrorDetail struct {
	Code        string  `json:"code"`
	Message     string  `json:"message"`
	Details     *string `json:"details,omitempty"`
	Path        *string `json:"path,omitempty"`
	UserMessage string  `json:"userMessage,omitempty"`
}

// OfferResponse - минимальный ответ на создание/обновление оферты.
type OfferResponse struct {
	ID          string `json:"id"`
	Publication struct {
		Status string `json:"status"`
	} `json:"publication"`
}

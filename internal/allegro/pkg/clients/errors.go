package clients

import (
	"allegro_sync/internal/allegro/business/models/dto/response"
	"errors"
	"fmt"
	"strings"
)

var ErrRateLimited = errors.New("allegro rate limit exceeded")

// APIError - ответ API со статусом вне 2xx, тело уже разобрано в типизированную схему.
type APIError struct {
	StatusCode int
	Response   response.ErrorResponse
	Body       []byte
}

func (e *APIError) Error() string {
	var parts []string
	for _, d := range e.Response.Errors {
		msg := d.Message
		if d.UserMessage != "" {
			msg = d.UserMessage
		}
		parts = append(parts, fmt.Sprintf("%s: %s", d.Code, msg))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("allegro api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("allegro api error: status %d: %s", e.StatusCode, strings.Join(parts, "; "))
}

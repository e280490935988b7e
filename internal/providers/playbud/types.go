package playbud

import "fmt"

// errorBody is the upstream error envelope. FastAPI-style backends put the
// human message under "detail"; others use "message".
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// APIError is a non-success upstream response with the message extracted
// from the error body. The booking surface shows Message verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("playbud: request failed (status=%d)", e.StatusCode)
	}
	return fmt.Sprintf("playbud: %s (status=%d)", e.Message, e.StatusCode)
}

// joinRequest is the join submission payload.
type joinRequest struct {
	GameID string  `json:"game_id"`
	Notes  *string `json:"notes"`
}

// refreshRequest is the token refresh payload.
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

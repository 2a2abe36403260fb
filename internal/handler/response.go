package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sumire/issuetracker/internal/domain"
)

// Result is the body of a successful update or delete.
type Result struct {
	Result string `json:"result"`
	ID     string `json:"_id"`
}

// ErrorBody is the body of every failed request. Rejected issue requests
// carry only Error (and ID when one was sent) and are answered with 200.
type ErrorBody struct {
	Error string `json:"error"`
	ID    string `json:"_id,omitempty"`
	Code  string `json:"code,omitempty"`
}

// HTTPErrorHandler is the global error handler for echo.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := mapError(err)
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		slog.Error("failed to send error response", "error", err)
	}
}

func mapError(err error) (int, ErrorBody) {
	var issueErr *domain.IssueError
	if errors.As(err, &issueErr) {
		if issueErr.Cause != nil {
			slog.Info("issue request rejected", "error", err, "id", issueErr.ID)
		}
		return http.StatusOK, ErrorBody{Error: issueErr.Err.Error(), ID: issueErr.ID}
	}

	// Handle echo's own HTTP errors (404, 405, bind failures)
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg, _ := echoErr.Message.(string)
		if msg == "" {
			msg = http.StatusText(echoErr.Code)
		}
		return echoErr.Code, ErrorBody{Error: msg, Code: codeFor(echoErr.Code)}
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrorBody{Error: "not found", Code: "not_found"}
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, ErrorBody{Error: "invalid input", Code: "invalid_input"}
	default:
		slog.Error("unhandled error", "error", err)
		return http.StatusInternalServerError, ErrorBody{Error: "internal error", Code: "internal_error"}
	}
}

func codeFor(status int) string {
	switch status {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusBadRequest, http.StatusUnsupportedMediaType:
		return "invalid_input"
	default:
		if status >= http.StatusInternalServerError {
			return "internal_error"
		}
		return "error"
	}
}

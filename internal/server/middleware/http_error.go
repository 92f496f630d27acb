package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// StatusClientClosedRequest is reported when the caller went away first.
const StatusClientClosedRequest = 499

// ErrorHandler return custom http error handler. Errors carrying a status
// code are translated to the matching HTTP status and their message is sent
// as is. Anything else becomes a generic 500 so driver details never leak.
func ErrorHandler(log Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if err == nil || c.Response().Committed {
			return
		}

		code, message := resolveError(c, err)
		if code >= http.StatusInternalServerError {
			log.Errorw("request failed", "code", code, "error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, &ErrorResponse{Error: message})
		}
		if err != nil {
			log.Errorw("could not response", "code", code, "error", err)
		}
	}
}

func resolveError(c echo.Context, err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusNotFound && isNotFoundHandler(c.Handler()) {
			return he.Code, "no route matched"
		}
		return he.Code, fmt.Sprint(he.Message)
	}

	// detect canceled request error
	if errors.Is(err, context.Canceled) && c.Request().Context().Err() == context.Canceled {
		return StatusClientClosedRequest, "request canceled"
	}

	if st, ok := status.FromError(err); ok {
		return HTTPStatusFromCode(st.Code()), st.Message()
	}

	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// HTTPStatusFromCode maps a status code to the HTTP status returned to clients.
func HTTPStatusFromCode(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.Canceled:
		return StatusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

package collector

import "net/http"

const HTTP_ERROR_NOT_FOUND = http.StatusNotFound
const HTTP_ERROR_BAD_REQUEST = http.StatusBadRequest

// HttpServerError represents a non-success provider response. The response
// body is retained because the provider encodes the reason for a rejected
// request, such as the list of periods it supports, in the message text.
type HttpServerError struct {
	status int
	body   string
	text   string
}

// NewHttpServerError creates a new HttpServerError instance with the given
// status code, response body and error message.
func NewHttpServerError(httpStatusCode int, body string, errorMsg string) HttpServerError {
	return HttpServerError{
		status: httpStatusCode,
		body:   body,
		text:   errorMsg,
	}
}

// Error returns the message body associated with the HttpServerError instance.
func (e HttpServerError) Error() string {
	if len(e.body) > 0 {
		return e.text + " Body: " + e.body
	}
	return e.text
}

// StatusCode returns the status code associated with the HttpServerError instance.
func (e HttpServerError) StatusCode() int {
	return e.status
}

// Body returns the response body associated with the HttpServerError instance.
func (e HttpServerError) Body() string {
	return e.body
}

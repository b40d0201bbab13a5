package transport

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/agentstation/storefront/pkg/errors"
)

// Success reports whether resp has a 2xx status.
func Success(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// ResponseError builds the error for a non-2xx response. The message is the
// response body text when there is one, otherwise "Server responded <status>".
// The body is consumed and closed.
func ResponseError(resp *http.Response) error {
	body := readErrorText(resp)
	message := strings.TrimSpace(string(body))
	if message == "" {
		message = errors.StatusMessage(resp.StatusCode)
	}

	method, endpoint := "", ""
	if resp.Request != nil {
		method = resp.Request.Method
		if resp.Request.URL != nil {
			endpoint = resp.Request.URL.Path
		}
	}
	return errors.NewAPIError(method, endpoint, resp.StatusCode, message)
}

// DecodeResponse decodes a 2xx JSON response into target. Non-2xx responses
// become an *errors.APIError.
func DecodeResponse(resp *http.Response, target any) error {
	if !Success(resp) {
		return ResponseError(resp)
	}

	body, err := ReadBody(resp)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}
	return nil
}

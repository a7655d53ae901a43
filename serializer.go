package sdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// marshalBody serializes a request body to JSON. A nil body produces nil
// bytes, which the executor turns into an empty request.
func marshalBody(v any) ([]byte, *ServiceException) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, newTransportError("request encoding", err)
	}
	return data, nil
}

// unmarshalBody deserializes a JSON response body into v.
func unmarshalBody(data []byte, v any) *ServiceException {
	if err := json.Unmarshal(data, v); err != nil {
		return newTransportError("response decoding", err)
	}
	return nil
}

// decodeText transcodes body from the configured charset to UTF-8. The
// configured encoding is authoritative: a legacy-charset body is transcoded
// even when its bytes happen to form valid UTF-8 sequences. Only a UTF-8
// configuration short-circuits.
func decodeText(body []byte, enc encoding.Encoding) ([]byte, *ServiceException) {
	if enc == nil || enc == unicode.UTF8 {
		return body, nil
	}
	decoded, err := io.ReadAll(enc.NewDecoder().Reader(bytes.NewReader(body)))
	if err != nil {
		return nil, newTransportError("charset decoding", err)
	}
	return decoded, nil
}

// errorEnvelope is the error body shape the service responds with.
type errorEnvelope struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// parseServiceError turns a non-2xx response into a ServiceException. The
// service's own status code is passed through verbatim when the body carries
// the standard {message, status} envelope; responses without one fall back to
// a code derived from the HTTP status so dispatch always has something stable
// to match on.
func parseServiceError(httpStatus int, body []byte) *ServiceException {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Status != "" {
		return &ServiceException{
			Message:    env.Message,
			StatusCode: StatusCode(env.Status),
			HTTPStatus: httpStatus,
		}
	}

	exc := &ServiceException{
		Message:    http.StatusText(httpStatus),
		StatusCode: StatusCode(fmt.Sprintf("framework:response:%d", httpStatus)),
		HTTPStatus: httpStatus,
	}
	if httpStatus == http.StatusConflict {
		exc.StatusCode = StatusIDConflict
	}
	if len(body) > 0 && len(body) <= 512 {
		exc.Message = string(body)
	}
	return exc
}

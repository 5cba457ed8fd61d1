package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-budget-console/internal/errors"
	"github.com/jrsteele09/go-budget-console/notify"
)

// Kind classifies a failed request
type Kind string

const (
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindServer          Kind = "server_error"
	KindNetwork         Kind = "network_error"
)

const maxErrorBody = 1 << 20

// Error is returned for every request the pipeline classified as failed.
// It unwraps to the matching sentinel in internal/errors.
type Error struct {
	Kind       Kind
	StatusCode int    // 0 for network failures
	Message    string // what the user was told
	Method     string
	Path       string
	Err        error // transport error for network failures
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %s: %s", e.Method, e.Path, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s %s: %s (%d): %s", e.Method, e.Path, e.Kind, e.StatusCode, e.Message)
}

func (e *Error) Unwrap() []error {
	unwrapped := []error{e.sentinel()}
	if e.Err != nil {
		unwrapped = append(unwrapped, e.Err)
	}
	return unwrapped
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindUnauthenticated:
		return errors.ErrUnauthenticated
	case KindForbidden:
		return errors.ErrForbidden
	case KindNetwork:
		return errors.ErrNetwork
	default:
		return errors.ErrServer
	}
}

// Notified reports whether err came out of the pipeline, in which case the
// user has already been shown a message for it.
func Notified(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr)
}

// Classify turns a round trip into nil (success) or an *Error. credentialed
// reports whether the request carried a bearer token. The body of a failed
// response is consumed and closed.
func Classify(resp *http.Response, err error, credentialed bool) *Error {
	if err != nil {
		return &Error{Kind: KindNetwork, Message: notify.MsgNetworkError, Err: err}
	}
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	detail := readDetail(resp.Body)
	resp.Body.Close()

	e := &Error{StatusCode: resp.StatusCode}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		e.Kind = KindUnauthenticated
		e.Message = notify.MsgSessionExpired
		if !credentialed {
			// Nothing expired: the credentials just presented were refused
			e.Message = orDefault(detail, notify.MsgAuthFailed)
		}
	case http.StatusForbidden:
		e.Kind = KindForbidden
		e.Message = notify.MsgPermissionDenied
	default:
		e.Kind = KindServer
		e.Message = orDefault(detail, notify.MsgRequestFailed)
	}
	return e
}

// readDetail extracts {"detail": "..."}; validation failures carry a list
// of {"msg": "..."} objects instead.
func readDetail(body io.Reader) string {
	if body == nil {
		return ""
	}
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

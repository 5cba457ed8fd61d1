// Package api is the request pipeline every backend call goes through. It
// attaches the session's bearer credential on the way out and classifies the
// response on the way back, tearing the session down on a 401.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-budget-console/internal/errors"
	"github.com/jrsteele09/go-budget-console/metrics"
	"github.com/jrsteele09/go-budget-console/notify"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const headerRequestID = "X-Request-ID"

// Doer sends a request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type DoerFunc func(req *http.Request) (*http.Response, error)

func (f DoerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

type Middleware func(next Doer) Doer

// Chain wraps d so that mw[0] sees the request first
func Chain(d Doer, mw ...Middleware) Doer {
	chained := d
	// Apply middleware in reverse order
	for i := len(mw) - 1; i >= 0; i-- {
		chained = mw[i](chained)
	}
	return chained
}

// TokenSource yields the current bearer token, "" when logged out
type TokenSource interface {
	Token() string
}

// Teardowner clears the session after the backend rejected its credential
type Teardowner interface {
	Teardown() error
}

// Redirector sends the user to the login screen
type Redirector interface {
	ForceLogin()
}

// WithCredentials attaches the bearer token when one is present and leaves
// the request untouched otherwise. It never fails a request.
func WithCredentials(tokens TokenSource) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			if accessToken := tokens.Token(); accessToken != "" {
				req = req.Clone(req.Context())
				(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}).SetAuthHeader(req)
			}
			return next.Do(req)
		})
	}
}

// WithRequestID tags each request so client and backend logs line up
func WithRequestID() Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(headerRequestID) == "" {
				req = req.Clone(req.Context())
				req.Header.Set(headerRequestID, uuid.New().String())
			}
			return next.Do(req)
		})
	}
}

func WithLogging() Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next.Do(req)

			event := log.Debug().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("request_id", req.Header.Get(headerRequestID)).
				Dur("duration", time.Since(start))
			if err != nil {
				event.Err(err).Msg("Request failed")
				return resp, err
			}
			event.Int("status", resp.StatusCode).Msg("Request completed")
			return resp, nil
		})
	}
}

// Reactor performs the side effects of a classified failure
type Reactor struct {
	Session   Teardowner
	Navigator Redirector
	Notifier  notify.Notifier
}

// React shows exactly one notification for e. A 401 also clears the session
// and forces the login route.
func (r Reactor) React(e *Error) {
	if e.Kind == KindUnauthenticated {
		if r.Session != nil {
			if err := r.Session.Teardown(); err != nil {
				log.Err(err).Msg("Failed to clear persisted session")
			}
		}
		if r.Navigator != nil {
			r.Navigator.ForceLogin()
		}
	}
	if r.Notifier != nil {
		r.Notifier.Error(e.Message)
	}
}

// WithResponseClassifier classifies every response, reacts to failures and
// then still hands the failure back to the caller as an *Error. tokens tells
// whether the request went out carrying a credential.
func WithResponseClassifier(reactor Reactor, tokens TokenSource) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			credentialed := tokens != nil && tokens.Token() != ""
			resp, err := next.Do(req)
			if err != nil && errors.Is(err, context.Canceled) {
				// The caller gave up; nothing to tell the user
				metrics.RecordRequest("cancelled")
				return nil, err
			}

			apiErr := Classify(resp, err, credentialed)
			if apiErr == nil {
				metrics.RecordRequest("ok")
				return resp, nil
			}

			apiErr.Method = req.Method
			apiErr.Path = req.URL.Path
			metrics.RecordRequest(string(apiErr.Kind))
			log.Warn().
				Str("method", apiErr.Method).
				Str("path", apiErr.Path).
				Str("kind", string(apiErr.Kind)).
				Int("status", apiErr.StatusCode).
				Msg("Request rejected")

			reactor.React(apiErr)
			return nil, apiErr
		})
	}
}

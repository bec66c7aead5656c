package middleware

import (
	"context"
	"net/http"
	"stay/infras/otel"
	"stay/infras/session"
	"stay/shared/constant"
	"stay/shared/failure"
	"stay/transport/http/response"
	"strings"

	"github.com/rs/zerolog/log"
)

const bearerPrefix = "Bearer "

// Session authenticates the anonymous guest session token minted when a
// booking is started. Guest requires a valid token; MaybeGuest adopts
// one when present and lets the request through otherwise, so starting
// a booking can both mint and reuse sessions.
type Session interface {
	Guest(next http.Handler) http.Handler
	MaybeGuest(next http.Handler) http.Handler
}

type sessionMiddleware struct {
	sessions session.Sessions
	otel     otel.Otel
}

func NewSessionMiddleware(sessions session.Sessions, otel otel.Otel) Session {
	return &sessionMiddleware{
		sessions: sessions,
		otel:     otel,
	}
}

func (m *sessionMiddleware) Guest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "session.middleware")
		defer scope.End()

		sessionID, err := m.resolve(request)
		if err != nil {
			scope.TraceError(err)
			log.Warn().Err(err).Msg("rejected request without a valid booking session")

			response.WithError(writer, failure.Unauthorized("a valid booking session token is required"))

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeySessionID, sessionID)
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *sessionMiddleware) MaybeGuest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "session.middleware")
		defer scope.End()

		if sessionID, err := m.resolve(request); err == nil {
			ctx = context.WithValue(ctx, constant.ContextKeySessionID, sessionID)
		}

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *sessionMiddleware) resolve(request *http.Request) (string, error) {
	header := request.Header.Get(constant.RequestHeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", session.ErrInvalidToken
	}

	claims, err := m.sessions.Validate(strings.TrimPrefix(header, bearerPrefix))
	if err != nil {
		return "", err // nolint:wrapcheck
	}

	return claims.SessionID, nil
}

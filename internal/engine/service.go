package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"naturalrights/internal/domain"
	"naturalrights/internal/store"
)

// Service is the composition root every handler runs against. It holds no
// mutable state of its own; all state lives in the Store.
type Service struct {
	DB         *store.Database
	Primitives domain.Primitives

	log logrus.FieldLogger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger; the default is a fresh logrus.Logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Service) { s.log = l }
}

// New returns a Service over the given store and primitives.
func New(st domain.Store, p domain.Primitives, opts ...Option) *Service {
	s := &Service{
		DB:         store.NewDatabase(st),
		Primitives: p,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logrus.New()
	}
	return s
}

// Request implements domain.RightsService for in-process callers.
func (s *Service) Request(_ context.Context, req domain.Request) (domain.Response, error) {
	return s.ProcessRequest(req)
}

// ProcessRequest authenticates req and runs its actions in order.
//
// Steps:
//  1. Parse the body into actions; a malformed body is the only error return.
//  2. Authenticate the envelope and resolve the acting user. On failure every
//     action is reported with "Authentication error" and nothing runs.
//  3. Route, authorize and execute each action in turn. Later actions see the
//     writes of earlier ones; a failing action never stops its siblings.
func (s *Service) ProcessRequest(req domain.Request) (domain.Response, error) {
	var actions []domain.Action
	if err := json.Unmarshal([]byte(req.Body), &actions); err != nil {
		return domain.Response{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}

	log := s.log.WithFields(logrus.Fields{
		"device":  short(req.DeviceID),
		"actions": len(actions),
	})

	userID, err := s.authenticate(req, actions)
	if err != nil {
		log.WithError(err).Warn("authentication failed")
		results := make([]domain.Result, len(actions))
		for i, a := range actions {
			results[i] = failure(a, ErrAuthentication)
		}
		return domain.Response{Results: results}, nil
	}

	log = log.WithField("user", short(userID))
	results := make([]domain.Result, 0, len(actions))
	for _, a := range actions {
		results = append(results, s.processAction(log, caller{userID: userID, deviceID: req.DeviceID}, a))
	}
	return domain.Response{Results: results}, nil
}

// processAction is the per-action error boundary.
func (s *Service) processAction(log logrus.FieldLogger, c caller, a domain.Action) (res domain.Result) {
	log = log.WithField("action", a.Type)
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("handler panicked")
			res = failure(a, ErrInternal)
		}
	}()

	newHandler, ok := routes[a.Type]
	if !ok {
		log.Debug("invalid action type")
		return failure(a, ErrInvalidActionType)
	}
	h, err := newHandler(c, a.Payload)
	if err != nil {
		log.WithError(err).Debug("payload rejected")
		return failure(a, ErrInvalidPayload)
	}

	authorized, err := h.CheckIsAuthorized(s)
	if err != nil {
		log.WithError(err).Error("authorization check failed")
		return failure(a, err)
	}
	if !authorized {
		log.Debug("unauthorized")
		return failure(a, ErrUnauthorized)
	}

	out, err := h.Execute(s)
	if err != nil {
		log.WithError(err).Debug("execute failed")
		return failure(a, err)
	}
	payload, err := json.Marshal(out)
	if err != nil {
		log.WithError(err).Error("encode result")
		return failure(a, ErrInternal)
	}
	log.Debug("ok")
	return domain.Result{Type: a.Type, Payload: payload, Success: true}
}

func failure(a domain.Action, err error) domain.Result {
	if errors.Is(err, store.ErrInvalidID) || errors.Is(err, ErrInvalidPayload) {
		err = ErrInvalidPayload
	}
	return domain.Result{Type: a.Type, Payload: a.Payload, Success: false, Error: err.Error()}
}

// short trims ids for log lines.
func short(id string) string {
	if len(id) > 10 {
		return id[:10]
	}
	return id
}

// Compile-time assertion that Service implements domain.RightsService.
var _ domain.RightsService = (*Service)(nil)

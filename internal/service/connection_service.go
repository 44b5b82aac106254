// Package service contains the application's business logic.
package service

import (
	"context"
	"fmt"
	"time"

	"devmesh/internal/models"
	"devmesh/internal/notifications"
	"devmesh/internal/observability"
	"devmesh/internal/repository"
)

// statusVerbs turn a status into the verb used in send-result summaries.
var statusVerbs = map[models.ConnectionStatus]string{
	models.ConnectionStatusInterested: "showed interest in",
	models.ConnectionStatusIgnored:    "ignored",
	models.ConnectionStatusAccepted:   "accepted",
	models.ConnectionStatusRejected:   "rejected",
}

// SendResult is the outcome of a successful send: the created request plus a
// human-readable summary composed from both users' names.
type SendResult struct {
	Request *models.ConnectionRequest `json:"request"`
	Summary string                    `json:"summary"`
}

// Connection pairs a matched counterpart with the moment the match happened.
type Connection struct {
	User      models.PublicUser `json:"user"`
	MatchedAt *time.Time        `json:"matched_at,omitempty"`
}

// PendingRequest is a received, reviewable request with the initiator's
// public-safe attributes attached.
type PendingRequest struct {
	ID        uint              `json:"id"`
	FromUser  models.PublicUser `json:"from_user"`
	CreatedAt time.Time         `json:"created_at"`
}

// ConnectionService implements the connection-request workflow: sending,
// reviewing, and deriving the connections and pending views.
type ConnectionService struct {
	connRepo repository.ConnectionRepository
	userRepo repository.UserRepository
	notifier *notifications.Notifier
}

// NewConnectionService returns a new ConnectionService.
func NewConnectionService(
	connRepo repository.ConnectionRepository,
	userRepo repository.UserRepository,
	notifier *notifications.Notifier,
) *ConnectionService {
	return &ConnectionService{
		connRepo: connRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// SendRequest creates a connection request from actorID to targetID with the
// desired initiation status (interested or ignored).
func (s *ConnectionService) SendRequest(ctx context.Context, actorID, targetID uint, status models.ConnectionStatus) (*SendResult, error) {
	if !status.IsInitial() {
		return nil, models.NewValidationError(fmt.Sprintf("'%s' is not a valid status for a new request", status))
	}
	if actorID == targetID {
		return nil, models.NewValidationError("You cannot send a connection request to yourself")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	// Pre-check both orderings; the unique index is the backstop for races.
	existing, err := s.connRepo.GetBetweenUsers(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Connection request already exists between these users")
	}

	request := &models.ConnectionRequest{
		FromUserID: actorID,
		ToUserID:   targetID,
		Status:     status,
	}
	if err := s.connRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	request.FromUser = actor
	request.ToUser = target
	observability.ConnectionRequestsTotal.WithLabelValues(string(status)).Inc()

	summary := fmt.Sprintf("%s %s %s", actor.DisplayName(), statusVerbs[status], target.DisplayName())

	// Interested requests notify the recipient. Fire-and-forget: the goroutine
	// detaches from the request context so a slow broker never delays the
	// response, and failures are logged, not returned.
	if status == models.ConnectionStatusInterested && s.notifier != nil {
		event := notifications.ConnectionEvent{
			Type:       notifications.EventRequestReceived,
			RequestID:  request.ID,
			FromUserID: actorID,
			ToUserID:   targetID,
			Status:     string(status),
			Message:    summary,
			OccurredAt: time.Now().UTC(),
		}
		go func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.notifier.PublishConnectionEvent(notifyCtx, targetID, event); err != nil {
				observability.NotificationPublishFailures.Inc()
				observability.LogAsyncError(notifyCtx, "publish_connection_event", err)
			}
		}()
	}

	return &SendResult{Request: request, Summary: summary}, nil
}

// ReviewRequest resolves a pending request addressed to actorID to accepted
// or rejected. The transition is one-way and terminal.
func (s *ConnectionService) ReviewRequest(ctx context.Context, actorID, requestID uint, decision models.ConnectionStatus) (*models.ConnectionRequest, error) {
	if !decision.IsDecision() {
		return nil, models.NewValidationError(fmt.Sprintf("'%s' is not a valid review decision", decision))
	}

	request, err := s.connRepo.GetPendingForReview(ctx, requestID, actorID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, models.NewNotFoundMessageError("Connection request not found")
	}

	// One-way block: if the sender previously ignored the reviewer, the
	// request is no longer actionable even though it exists.
	ignored, err := s.connRepo.HasIgnored(ctx, request.FromUserID, actorID)
	if err != nil {
		return nil, err
	}
	if ignored {
		return nil, models.NewForbiddenError("This connection request is no longer available")
	}

	var matchedAt *time.Time
	if decision == models.ConnectionStatusAccepted {
		now := time.Now().UTC()
		matchedAt = &now
	}

	updated, err := s.connRepo.UpdateStatusIfInterested(ctx, requestID, decision, matchedAt)
	if err != nil {
		return nil, err
	}
	if !updated {
		// A racing review got there first; indistinguishable from not found.
		return nil, models.NewNotFoundMessageError("Connection request not found")
	}

	request.Status = decision
	request.MatchedAt = matchedAt
	observability.ConnectionReviewsTotal.WithLabelValues(string(decision)).Inc()

	if s.notifier != nil {
		event := notifications.ConnectionEvent{
			Type:       notifications.EventRequestReviewed,
			RequestID:  request.ID,
			FromUserID: request.FromUserID,
			ToUserID:   request.ToUserID,
			Status:     string(decision),
			OccurredAt: time.Now().UTC(),
		}
		go func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.notifier.PublishConnectionEvent(notifyCtx, request.FromUserID, event); err != nil {
				observability.NotificationPublishFailures.Inc()
				observability.LogAsyncError(notifyCtx, "publish_connection_event", err)
			}
		}()
	}

	return request, nil
}

// GetConnections returns the users on the other side of every accepted
// request involving actorID, projected to public-safe attributes.
func (s *ConnectionService) GetConnections(ctx context.Context, actorID uint) ([]Connection, error) {
	requests, err := s.connRepo.GetConnections(ctx, actorID)
	if err != nil {
		return nil, err
	}

	connections := make([]Connection, 0, len(requests))
	for i := range requests {
		counterpart := requests[i].CounterpartOf(actorID)
		connections = append(connections, Connection{
			User:      counterpart.Public(),
			MatchedAt: requests[i].MatchedAt,
		})
	}
	return connections, nil
}

// GetPendingReceived returns the interested requests addressed to actorID
// with each initiator's public-safe attributes.
func (s *ConnectionService) GetPendingReceived(ctx context.Context, actorID uint) ([]PendingRequest, error) {
	requests, err := s.connRepo.GetPendingReceived(ctx, actorID)
	if err != nil {
		return nil, err
	}

	pending := make([]PendingRequest, 0, len(requests))
	for i := range requests {
		pending = append(pending, PendingRequest{
			ID:        requests[i].ID,
			FromUser:  requests[i].FromUser.Public(),
			CreatedAt: requests[i].CreatedAt,
		})
	}
	return pending, nil
}

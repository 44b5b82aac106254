package service

import (
	"context"
	"time"

	"devmesh/internal/models"
)

type connRepoStub struct {
	createFn                   func(context.Context, *models.ConnectionRequest) error
	getByIDFn                  func(context.Context, uint) (*models.ConnectionRequest, error)
	getBetweenUsersFn          func(context.Context, uint, uint) (*models.ConnectionRequest, error)
	getPendingForReviewFn      func(context.Context, uint, uint) (*models.ConnectionRequest, error)
	hasIgnoredFn               func(context.Context, uint, uint) (bool, error)
	updateStatusIfInterestedFn func(context.Context, uint, models.ConnectionStatus, *time.Time) (bool, error)
	getPendingReceivedFn       func(context.Context, uint) ([]models.ConnectionRequest, error)
	getConnectionsFn           func(context.Context, uint) ([]models.ConnectionRequest, error)
	getRelatedUserIDsFn        func(context.Context, uint) ([]uint, error)
}

func (s *connRepoStub) Create(ctx context.Context, request *models.ConnectionRequest) error {
	return s.createFn(ctx, request)
}
func (s *connRepoStub) GetByID(ctx context.Context, id uint) (*models.ConnectionRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *connRepoStub) GetBetweenUsers(ctx context.Context, a, b uint) (*models.ConnectionRequest, error) {
	return s.getBetweenUsersFn(ctx, a, b)
}
func (s *connRepoStub) GetPendingForReview(ctx context.Context, id, reviewerID uint) (*models.ConnectionRequest, error) {
	return s.getPendingForReviewFn(ctx, id, reviewerID)
}
func (s *connRepoStub) HasIgnored(ctx context.Context, from, to uint) (bool, error) {
	return s.hasIgnoredFn(ctx, from, to)
}
func (s *connRepoStub) UpdateStatusIfInterested(ctx context.Context, id uint, status models.ConnectionStatus, matchedAt *time.Time) (bool, error) {
	return s.updateStatusIfInterestedFn(ctx, id, status, matchedAt)
}
func (s *connRepoStub) GetPendingReceived(ctx context.Context, userID uint) ([]models.ConnectionRequest, error) {
	return s.getPendingReceivedFn(ctx, userID)
}
func (s *connRepoStub) GetConnections(ctx context.Context, userID uint) ([]models.ConnectionRequest, error) {
	return s.getConnectionsFn(ctx, userID)
}
func (s *connRepoStub) GetRelatedUserIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.getRelatedUserIDsFn(ctx, userID)
}

type userRepoStub struct {
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByEmailFn     func(context.Context, string) (*models.User, error)
	createFn         func(context.Context, *models.User) error
	updateFn         func(context.Context, *models.User) error
	listCandidatesFn func(context.Context, []uint, models.FeedFilters) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) ListCandidates(ctx context.Context, excludedIDs []uint, filters models.FeedFilters) ([]models.User, error) {
	return s.listCandidatesFn(ctx, excludedIDs, filters)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, FirstName: "Testy", LastName: "McTest"}, nil
		},
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:     func(context.Context, *models.User) error { return nil },
		updateFn:     func(context.Context, *models.User) error { return nil },
		listCandidatesFn: func(context.Context, []uint, models.FeedFilters) ([]models.User, error) {
			return nil, nil
		},
	}
}

func noopConnRepo() *connRepoStub {
	return &connRepoStub{
		createFn:              func(context.Context, *models.ConnectionRequest) error { return nil },
		getByIDFn:             func(context.Context, uint) (*models.ConnectionRequest, error) { return nil, nil },
		getBetweenUsersFn:     func(context.Context, uint, uint) (*models.ConnectionRequest, error) { return nil, nil },
		getPendingForReviewFn: func(context.Context, uint, uint) (*models.ConnectionRequest, error) { return nil, nil },
		hasIgnoredFn:          func(context.Context, uint, uint) (bool, error) { return false, nil },
		updateStatusIfInterestedFn: func(context.Context, uint, models.ConnectionStatus, *time.Time) (bool, error) {
			return true, nil
		},
		getPendingReceivedFn: func(context.Context, uint) ([]models.ConnectionRequest, error) { return nil, nil },
		getConnectionsFn:     func(context.Context, uint) ([]models.ConnectionRequest, error) { return nil, nil },
		getRelatedUserIDsFn:  func(context.Context, uint) ([]uint, error) { return nil, nil },
	}
}

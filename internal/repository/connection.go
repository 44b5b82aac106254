package repository

import (
	"context"
	"errors"
	"time"

	"devmesh/internal/models"

	"gorm.io/gorm"
)

// ConnectionRepository defines persistence operations for the connection
// request ledger.
type ConnectionRepository interface {
	Create(ctx context.Context, request *models.ConnectionRequest) error
	GetByID(ctx context.Context, id uint) (*models.ConnectionRequest, error)
	GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.ConnectionRequest, error)
	GetPendingForReview(ctx context.Context, id, reviewerID uint) (*models.ConnectionRequest, error)
	HasIgnored(ctx context.Context, fromUserID, toUserID uint) (bool, error)
	UpdateStatusIfInterested(ctx context.Context, id uint, status models.ConnectionStatus, matchedAt *time.Time) (bool, error)
	GetPendingReceived(ctx context.Context, userID uint) ([]models.ConnectionRequest, error)
	GetConnections(ctx context.Context, userID uint) ([]models.ConnectionRequest, error)
	GetRelatedUserIDs(ctx context.Context, userID uint) ([]uint, error)
}

type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository returns a new ConnectionRepository implementation.
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Create(ctx context.Context, request *models.ConnectionRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Two concurrent sends for the same pair race at the unique
			// index; the loser surfaces as a conflict, not a crash.
			return models.NewConflictError("Connection request already exists between these users")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) GetByID(ctx context.Context, id uint) (*models.ConnectionRequest, error) {
	var request models.ConnectionRequest
	if err := r.db.WithContext(ctx).
		Preload("FromUser").Preload("ToUser").
		First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Connection request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

// GetBetweenUsers finds the request for the unordered pair, checking both
// orderings. Returns (nil, nil) when no request exists.
func (r *connectionRepository) GetBetweenUsers(ctx context.Context, userID1, userID2 uint) (*models.ConnectionRequest, error) {
	var request models.ConnectionRequest
	if err := r.db.WithContext(ctx).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			userID1, userID2, userID2, userID1).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

// GetPendingForReview finds a request by id that is addressed to reviewerID
// and still interested. Missing, already reviewed, and wrong-owner rows are
// indistinguishable: all return (nil, nil).
func (r *connectionRepository) GetPendingForReview(ctx context.Context, id, reviewerID uint) (*models.ConnectionRequest, error) {
	var request models.ConnectionRequest
	if err := r.db.WithContext(ctx).
		Where("id = ? AND to_user_id = ? AND status = ?",
			id, reviewerID, models.ConnectionStatusInterested).
		Preload("FromUser").
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &request, nil
}

// HasIgnored reports whether fromUserID has an ignored request directed at
// toUserID.
func (r *connectionRepository) HasIgnored(ctx context.Context, fromUserID, toUserID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ConnectionRequest{}).
		Where("from_user_id = ? AND to_user_id = ? AND status = ?",
			fromUserID, toUserID, models.ConnectionStatusIgnored).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// UpdateStatusIfInterested transitions a request out of interested. The
// status predicate makes the update a compare-and-swap: a request reviewed by
// a racing caller matches zero rows and the method reports false.
func (r *connectionRepository) UpdateStatusIfInterested(ctx context.Context, id uint, status models.ConnectionStatus, matchedAt *time.Time) (bool, error) {
	updates := map[string]interface{}{"status": status}
	if matchedAt != nil {
		updates["matched_at"] = *matchedAt
	}

	res := r.db.WithContext(ctx).
		Model(&models.ConnectionRequest{}).
		Where("id = ? AND status = ?", id, models.ConnectionStatusInterested).
		Updates(updates)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *connectionRepository) GetPendingReceived(ctx context.Context, userID uint) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest
	if err := r.db.WithContext(ctx).
		Where("to_user_id = ? AND status = ?", userID, models.ConnectionStatusInterested).
		Preload("FromUser").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

func (r *connectionRepository) GetConnections(ctx context.Context, userID uint) ([]models.ConnectionRequest, error) {
	var requests []models.ConnectionRequest
	if err := r.db.WithContext(ctx).
		Where("status = ? AND (from_user_id = ? OR to_user_id = ?)",
			models.ConnectionStatusAccepted, userID, userID).
		Preload("FromUser").Preload("ToUser").
		Order("matched_at DESC").
		Find(&requests).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return requests, nil
}

// GetRelatedUserIDs returns every user on the other side of any request
// involving userID, regardless of status or direction. This is the feed's
// exclusion set (minus the user themselves, which callers add).
func (r *connectionRepository) GetRelatedUserIDs(ctx context.Context, userID uint) ([]uint, error) {
	var pairs []struct {
		FromUserID uint
		ToUserID   uint
	}
	if err := r.db.WithContext(ctx).
		Model(&models.ConnectionRequest{}).
		Select("from_user_id, to_user_id").
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Find(&pairs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	seen := make(map[uint]struct{}, len(pairs))
	ids := make([]uint, 0, len(pairs))
	for _, p := range pairs {
		other := p.FromUserID
		if other == userID {
			other = p.ToUserID
		}
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		ids = append(ids, other)
	}
	return ids, nil
}

package service

import (
	"context"
	"sort"
	"strings"

	"devmesh/internal/models"
	"devmesh/internal/observability"
	"devmesh/internal/repository"
)

// FeedService computes the discovery feed: the candidate pool of
// not-yet-related users, filtered, ranked by skill overlap, and paginated.
type FeedService struct {
	connRepo repository.ConnectionRepository
	userRepo repository.UserRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(connRepo repository.ConnectionRepository, userRepo repository.UserRepository) *FeedService {
	return &FeedService{connRepo: connRepo, userRepo: userRepo}
}

// GetFeed returns a page of discovery candidates for actorID.
//
// A candidate never appears if any request exists between them and the actor,
// in either direction and in any status: ignored entries keep acting as a
// soft block from the feed, and resolved pairs are never re-shown.
func (s *FeedService) GetFeed(ctx context.Context, actorID uint, filters models.FeedFilters, pagination models.FeedPagination) (*models.FeedPage, error) {
	if filters.Order != "" && filters.Order != models.SortOrderAsc && filters.Order != models.SortOrderDesc {
		return nil, models.NewValidationError("order must be 'asc' or 'desc'")
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	relatedIDs, err := s.connRepo.GetRelatedUserIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	excluded := append(relatedIDs, actorID)

	candidates, err := s.userRepo.ListCandidates(ctx, excluded, filters)
	if err != nil {
		return nil, err
	}

	rankCandidates(actor, candidates, filters)

	pagination = pagination.Normalize()
	start := (pagination.Page - 1) * pagination.Limit
	if start > len(candidates) {
		start = len(candidates)
	}
	end := start + pagination.Limit
	if end > len(candidates) {
		end = len(candidates)
	}

	users := make([]models.PublicUser, 0, end-start)
	for i := start; i < end; i++ {
		users = append(users, candidates[i].Public())
	}

	observability.FeedRequestsTotal.Inc()
	return &models.FeedPage{
		Page:  pagination.Page,
		Limit: pagination.Limit,
		Count: len(users),
		Users: users,
	}, nil
}

// rankCandidates orders candidates by skill overlap with the actor,
// descending, breaking ties with the explicit sort field when provided and
// recency otherwise. The overlap score is computed here, never stored.
func rankCandidates(actor *models.User, candidates []models.User, filters models.FeedFilters) {
	scores := make(map[uint]int, len(candidates))
	for i := range candidates {
		scores[candidates[i].ID] = actor.SkillOverlap(&candidates[i])
	}

	ascending := filters.Order == models.SortOrderAsc

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := &candidates[i], &candidates[j]
		if scores[a.ID] != scores[b.ID] {
			return scores[a.ID] > scores[b.ID]
		}
		if less, ok := tieBreak(a, b, filters.SortBy); ok {
			if ascending {
				return less
			}
			return !less
		}
		// Default tie-break: newest first.
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}

// tieBreak compares two candidates on the explicit sort field in ascending
// direction. Unknown or empty fields report !ok and fall through to recency.
func tieBreak(a, b *models.User, sortBy string) (less, ok bool) {
	switch sortBy {
	case "first_name":
		if a.FirstName == b.FirstName {
			return false, false
		}
		return strings.ToLower(a.FirstName) < strings.ToLower(b.FirstName), true
	case "age":
		if a.Age == b.Age {
			return false, false
		}
		return a.Age < b.Age, true
	case "created_at":
		if a.CreatedAt.Equal(b.CreatedAt) {
			return false, false
		}
		return a.CreatedAt.Before(b.CreatedAt), true
	default:
		return false, false
	}
}

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ArowuTest/quizseason-admin/internal/models"
	"github.com/ArowuTest/quizseason-admin/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SeasonRepository implements repositories.SeasonRepository in process memory
type SeasonRepository struct {
	mu      sync.RWMutex
	seasons map[string]map[primitive.ObjectID]models.QuizSeason // Key: merchantID
}

// NewSeasonRepository creates a new SeasonRepository
func NewSeasonRepository() repositories.SeasonRepository {
	return &SeasonRepository{
		seasons: make(map[string]map[primitive.ObjectID]models.QuizSeason),
	}
}

// Create stores a new season, assigning an ID when missing
func (r *SeasonRepository) Create(ctx context.Context, season *models.QuizSeason) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if season.ID.IsZero() {
		season.ID = primitive.NewObjectID()
	}
	if season.CreatedAt.IsZero() {
		season.CreatedAt = time.Now()
	}
	season.UpdatedAt = season.CreatedAt

	merchantSeasons, exists := r.seasons[season.MerchantID]
	if !exists {
		merchantSeasons = make(map[primitive.ObjectID]models.QuizSeason)
		r.seasons[season.MerchantID] = merchantSeasons
	}
	if _, taken := merchantSeasons[season.ID]; taken {
		return repositories.ErrAlreadyExists
	}
	merchantSeasons[season.ID] = season.Clone()
	return nil
}

// FindByID returns a copy of a merchant's season
func (r *SeasonRepository) FindByID(ctx context.Context, merchantID string, id primitive.ObjectID) (*models.QuizSeason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	season, ok := r.seasons[merchantID][id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := season.Clone()
	return &clone, nil
}

// FindByMerchant returns copies of all of a merchant's seasons, oldest first
func (r *SeasonRepository) FindByMerchant(ctx context.Context, merchantID string) ([]*models.QuizSeason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seasons := make([]*models.QuizSeason, 0, len(r.seasons[merchantID]))
	for _, season := range r.seasons[merchantID] {
		clone := season.Clone()
		seasons = append(seasons, &clone)
	}
	sort.Slice(seasons, func(i, j int) bool {
		if seasons[i].CreatedAt.Equal(seasons[j].CreatedAt) {
			return seasons[i].ID.Hex() < seasons[j].ID.Hex()
		}
		return seasons[i].CreatedAt.Before(seasons[j].CreatedAt)
	})
	return seasons, nil
}

// Update replaces a stored season
func (r *SeasonRepository) Update(ctx context.Context, season *models.QuizSeason) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	merchantSeasons := r.seasons[season.MerchantID]
	if _, ok := merchantSeasons[season.ID]; !ok {
		return repositories.ErrNotFound
	}
	merchantSeasons[season.ID] = season.Clone()
	return nil
}

// Modify runs change against the stored season under the write lock
func (r *SeasonRepository) Modify(ctx context.Context, merchantID string, id primitive.ObjectID, change func(models.QuizSeason) (models.QuizSeason, error)) (*models.QuizSeason, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	season, ok := r.seasons[merchantID][id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	updated, err := change(season.Clone())
	if err != nil {
		return nil, err
	}
	updated.ID = id
	updated.MerchantID = merchantID
	r.seasons[merchantID][id] = updated.Clone()
	return &updated, nil
}

// Delete removes a season permanently
func (r *SeasonRepository) Delete(ctx context.Context, merchantID string, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	merchantSeasons := r.seasons[merchantID]
	if _, ok := merchantSeasons[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(merchantSeasons, id)
	return nil
}

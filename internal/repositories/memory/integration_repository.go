package memory

import (
	"context"
	"sync"

	"github.com/ArowuTest/quizseason-admin/internal/models"
	"github.com/ArowuTest/quizseason-admin/internal/repositories"
)

// IntegrationRepository implements repositories.IntegrationRepository in process memory.
// Links keep their integration order.
type IntegrationRepository struct {
	mu    sync.RWMutex
	links map[string][]models.IntegratedQuestion // Key: merchantID
}

// NewIntegrationRepository creates a new IntegrationRepository
func NewIntegrationRepository() repositories.IntegrationRepository {
	return &IntegrationRepository{
		links: make(map[string][]models.IntegratedQuestion),
	}
}

func cloneLink(q models.IntegratedQuestion) *models.IntegratedQuestion {
	if q.AlternativeAnswers != nil {
		q.AlternativeAnswers = append([]string{}, q.AlternativeAnswers...)
	}
	return &q
}

func (r *IntegrationRepository) indexOf(merchantID, sourceID string) int {
	for i, link := range r.links[merchantID] {
		if link.SourceID == sourceID {
			return i
		}
	}
	return -1
}

// FindByMerchant returns copies of all links for a merchant
func (r *IntegrationRepository) FindByMerchant(ctx context.Context, merchantID string) ([]*models.IntegratedQuestion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	links := make([]*models.IntegratedQuestion, 0, len(r.links[merchantID]))
	for _, link := range r.links[merchantID] {
		links = append(links, cloneLink(link))
	}
	return links, nil
}

// FindBySourceID returns the link for a source question
func (r *IntegrationRepository) FindBySourceID(ctx context.Context, merchantID, sourceID string) (*models.IntegratedQuestion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(merchantID, sourceID)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	return cloneLink(r.links[merchantID][i]), nil
}

// Create appends a link. A sourceID can only be linked once per merchant.
func (r *IntegrationRepository) Create(ctx context.Context, merchantID string, question *models.IntegratedQuestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(merchantID, question.SourceID) >= 0 {
		return repositories.ErrAlreadyExists
	}
	r.links[merchantID] = append(r.links[merchantID], *cloneLink(*question))
	return nil
}

// Update replaces an existing link
func (r *IntegrationRepository) Update(ctx context.Context, merchantID string, question *models.IntegratedQuestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(merchantID, question.SourceID)
	if i < 0 {
		return repositories.ErrNotFound
	}
	r.links[merchantID][i] = *cloneLink(*question)
	return nil
}

// Delete removes a link, returning ErrNotFound if there was none
func (r *IntegrationRepository) Delete(ctx context.Context, merchantID, sourceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(merchantID, sourceID)
	if i < 0 {
		return repositories.ErrNotFound
	}
	links := r.links[merchantID]
	r.links[merchantID] = append(links[:i:i], links[i+1:]...)
	return nil
}

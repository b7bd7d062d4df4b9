package memory

import (
	"context"
	"sync"

	"github.com/ArowuTest/quizseason-admin/internal/models"
	"github.com/ArowuTest/quizseason-admin/internal/repositories"
)

// QuestionPoolRepository holds the shared admin and merchant pools.
// The core only reads them; Replace* is used by loaders.
type QuestionPoolRepository struct {
	mu       sync.RWMutex
	admin    []*models.AdminQuestion
	merchant []*models.MerchantQuestion
}

// NewQuestionPoolRepository creates a pool repository seeded with the given items
func NewQuestionPoolRepository(admin []*models.AdminQuestion, merchant []*models.MerchantQuestion) *QuestionPoolRepository {
	return &QuestionPoolRepository{
		admin:    admin,
		merchant: merchant,
	}
}

var _ repositories.QuestionPoolRepository = (*QuestionPoolRepository)(nil)

// ReplaceAdminQuestions swaps the admin pool contents
func (r *QuestionPoolRepository) ReplaceAdminQuestions(questions []*models.AdminQuestion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admin = questions
}

// ReplaceMerchantQuestions swaps the merchant pool contents
func (r *QuestionPoolRepository) ReplaceMerchantQuestions(questions []*models.MerchantQuestion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.merchant = questions
}

// AdminQuestions returns every admin pool item, regardless of status
func (r *QuestionPoolRepository) AdminQuestions(ctx context.Context) ([]*models.AdminQuestion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*models.AdminQuestion{}, r.admin...), nil
}

// MerchantQuestions returns every merchant pool item
func (r *QuestionPoolRepository) MerchantQuestions(ctx context.Context) ([]*models.MerchantQuestion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*models.MerchantQuestion{}, r.merchant...), nil
}

// FindAdminQuestion finds an admin pool item by ID
func (r *QuestionPoolRepository) FindAdminQuestion(ctx context.Context, id string) (*models.AdminQuestion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, q := range r.admin {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// FindMerchantQuestion finds a merchant pool item by ID
func (r *QuestionPoolRepository) FindMerchantQuestion(ctx context.Context, id string) (*models.MerchantQuestion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, q := range r.merchant {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, repositories.ErrNotFound
}

package models

import "time"

// QuestionType selects the sub-bank a question is integrated into
type QuestionType string

const (
	QuestionTypeObjective      QuestionType = "objective"
	QuestionTypeNonObjective   QuestionType = "non_objective"
	QuestionTypeBonusObjective QuestionType = "bonus_objective"
)

// IsValid reports whether t is a known question type
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionTypeObjective, QuestionTypeNonObjective, QuestionTypeBonusObjective:
		return true
	}
	return false
}

// SourceType returns the pool a question type is drawn from
func (t QuestionType) SourceType() QuestionSource {
	if t == QuestionTypeObjective {
		return QuestionSourceAdmin
	}
	return QuestionSourceMerchant
}

// QuestionSource names the external pool that owns a question
type QuestionSource string

const (
	QuestionSourceAdmin    QuestionSource = "admin"
	QuestionSourceMerchant QuestionSource = "merchant"
)

// AdminQuestionStatusActive marks an admin pool question as eligible for integration
const AdminQuestionStatusActive = "active"

// AdminQuestion is an item of the shared admin objective pool
type AdminQuestion struct {
	ID                 string   `bson:"_id" json:"id"`
	Question           string   `bson:"question" json:"question"`
	Options            []string `bson:"options" json:"options"`
	CorrectAnswerIndex int      `bson:"correctAnswerIndex" json:"correctAnswerIndex"`
	Category           string   `bson:"category" json:"category"`
	Difficulty         string   `bson:"difficulty" json:"difficulty"`
	TimeLimit          int      `bson:"timeLimit" json:"timeLimit"`
	Points             int      `bson:"points" json:"points"`
	Status             string   `bson:"status" json:"status"`
}

// MerchantQuestion is an item of the shared merchant pool
type MerchantQuestion struct {
	ID                 string       `bson:"_id" json:"id"`
	Question           string       `bson:"question" json:"question"`
	Type               QuestionType `bson:"type" json:"type"`
	Options            []string     `bson:"options,omitempty" json:"options,omitempty"`
	CorrectAnswerIndex *int         `bson:"correctAnswerIndex,omitempty" json:"correctAnswerIndex,omitempty"`
	AlternativeAnswers []string     `bson:"alternativeAnswers" json:"alternativeAnswers"`
	Category           string       `bson:"category" json:"category"`
	Difficulty         string       `bson:"difficulty" json:"difficulty"`
	TimeLimit          int          `bson:"timeLimit" json:"timeLimit"`
}

// IntegratedQuestion links a merchant's bank to a pool question. It never copies content.
type IntegratedQuestion struct {
	SourceID           string         `bson:"sourceId" json:"sourceId"`
	SourceType         QuestionSource `bson:"sourceType" json:"sourceType"`
	Type               QuestionType   `bson:"type" json:"type"`
	AlternativeAnswers []string       `bson:"alternativeAnswers,omitempty" json:"alternativeAnswers,omitempty"`
	IntegratedAt       time.Time      `bson:"integratedAt" json:"integratedAt"`
}

// PoolQuestion is a read-side view of a pool item, whichever pool it came from
type PoolQuestion struct {
	SourceID   string            `json:"sourceId"`
	SourceType QuestionSource    `json:"sourceType"`
	Admin      *AdminQuestion    `json:"admin,omitempty"`
	Merchant   *MerchantQuestion `json:"merchant,omitempty"`
}

// AvailableQuestion is a pool item eligible for a sub-bank
type AvailableQuestion struct {
	PoolQuestion
	Integrated bool `json:"integrated"`
}

// ResolvedIntegration is an integrated link joined with its source question
type ResolvedIntegration struct {
	IntegratedQuestion
	Source PoolQuestion `json:"source"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuizStatus represents the lifecycle status of a season
type QuizStatus string

const (
	QuizStatusDraft     QuizStatus = "draft"
	QuizStatusActive    QuizStatus = "active"
	QuizStatusSuspended QuizStatus = "suspended"
)

// MaxTargetParticipants caps minimumTargetParticipants
const MaxTargetParticipants = 10000

// QuizSeason represents one escrowed trivia campaign run by a merchant
type QuizSeason struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MerchantID  string             `bson:"merchantId" json:"merchantId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	Type            SeasonType `bson:"type" json:"type"`
	DurationMonths  int        `bson:"duration" json:"duration"`
	SelectionLevels int        `bson:"selectionLevels" json:"selectionLevels"`

	StartDate           time.Time         `bson:"startDate" json:"startDate"`
	EndDate             time.Time         `bson:"endDate" json:"endDate"`
	OriginalEndDate     time.Time         `bson:"originalEndDate" json:"originalEndDate"`
	IsExtended          bool              `bson:"isExtended" json:"isExtended"`
	ExtensionWeeks      int               `bson:"extensionWeeks" json:"extensionWeeks"` // weeks of the most recent extension only
	ExtensionReason     string            `bson:"extensionReason,omitempty" json:"extensionReason,omitempty"`
	TotalExtensionWeeks int               `bson:"totalExtensionWeeks" json:"totalExtensionWeeks"`
	Extensions          []SeasonExtension `bson:"extensions,omitempty" json:"extensions,omitempty"`

	EntryFee                  decimal.Decimal `bson:"entryFee" json:"entryFee"`
	MinimumTargetParticipants int             `bson:"minimumTargetParticipants" json:"minimumTargetParticipants"`
	TotalParticipants         int             `bson:"totalParticipants" json:"totalParticipants"`

	Prizes             PrizePool       `bson:"prizes" json:"prizes"`
	TotalWinningPrizes decimal.Decimal `bson:"totalWinningPrizes" json:"totalWinningPrizes"`

	QuizStatus QuizStatus `bson:"quizStatus" json:"quizStatus"`
	IsLive     bool       `bson:"isLive" json:"isLive"` // set by the gameplay system, never by this service

	SelectionProcesses []SelectionProcess `bson:"selectionProcesses" json:"selectionProcesses"`
	TVShowRounds       []TVShowRound      `bson:"tvShowRounds" json:"tvShowRounds"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SeasonExtension records one extension of a season's end date
type SeasonExtension struct {
	Weeks           int       `bson:"weeks" json:"weeks"`
	Reason          string    `bson:"reason" json:"reason"`
	PreviousEndDate time.Time `bson:"previousEndDate" json:"previousEndDate"`
	NewEndDate      time.Time `bson:"newEndDate" json:"newEndDate"`
	ExtendedAt      time.Time `bson:"extendedAt" json:"extendedAt"`
}

// SelectionProcess is one paid elimination round before any televised round
type SelectionProcess struct {
	Round           int             `bson:"round" json:"round"`
	EntriesSelected int             `bson:"entriesSelected" json:"entriesSelected"`
	EntryFee        decimal.Decimal `bson:"entryFee" json:"entryFee"`
	StartDate       *time.Time      `bson:"startDate,omitempty" json:"startDate,omitempty"`
	DurationDays    *int            `bson:"durationDays,omitempty" json:"durationDays,omitempty"`
	EndDate         *time.Time      `bson:"endDate,omitempty" json:"endDate"` // nil means unknown
}

// TVShowRound is one broadcast elimination round
type TVShowRound struct {
	Round           int             `bson:"round" json:"round"`
	Label           string          `bson:"label" json:"label"`
	EntriesSelected int             `bson:"entriesSelected" json:"entriesSelected"`
	EntryFee        decimal.Decimal `bson:"entryFee" json:"entryFee"`
	StartDateTime   *time.Time      `bson:"startDateTime,omitempty" json:"startDateTime,omitempty"`
	DurationHours   *int            `bson:"durationHours,omitempty" json:"durationHours,omitempty"`
	EndDateTime     *time.Time      `bson:"endDateTime,omitempty" json:"endDateTime"` // nil means unknown
}

// Clone returns a copy of the season whose slices can be edited without aliasing
func (s QuizSeason) Clone() QuizSeason {
	s.SelectionProcesses = append(make([]SelectionProcess, 0, len(s.SelectionProcesses)), s.SelectionProcesses...)
	s.TVShowRounds = append(make([]TVShowRound, 0, len(s.TVShowRounds)), s.TVShowRounds...)
	s.Extensions = append([]SeasonExtension(nil), s.Extensions...)
	return s
}

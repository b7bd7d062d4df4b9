package models

import "github.com/shopspring/decimal"

// PrizePool defines the prizes a season promises to its winners
type PrizePool struct {
	FirstPrize                decimal.Decimal `bson:"firstPrize" json:"firstPrize"`
	SecondPrize               decimal.Decimal `bson:"secondPrize" json:"secondPrize"`
	ThirdPrize                decimal.Decimal `bson:"thirdPrize" json:"thirdPrize"`
	ConsolationPrizePerPlayer decimal.Decimal `bson:"consolationPrizePerPlayer" json:"consolationPrizePerPlayer"`
	ConsolationPrizeCount     int             `bson:"consolationPrizeCount" json:"consolationPrizeCount"`
	ConsolationPrizesEnabled  bool            `bson:"consolationPrizesEnabled" json:"consolationPrizesEnabled"`
}

// Total returns first+second+third+consolationPerPlayer*consolationCount.
// The enabled flag is presentational and does not change the promised total.
func (p PrizePool) Total() decimal.Decimal {
	consolation := p.ConsolationPrizePerPlayer.Mul(decimal.NewFromInt(int64(p.ConsolationPrizeCount)))
	return p.FirstPrize.Add(p.SecondPrize).Add(p.ThirdPrize).Add(consolation)
}

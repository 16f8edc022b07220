package scoring

// Grade is a 7-tier letter grade derived from a market's total score.
type Grade string

// Grades from best to worst.
const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// Verdict is the investment recommendation derived from a market's grade.
type Verdict string

// Verdicts from best to worst.
const (
	VerdictStrongBuy Verdict = "strong-buy"
	VerdictBuy       Verdict = "buy"
	VerdictHold      Verdict = "hold"
	VerdictCaution   Verdict = "caution"
	VerdictAvoid     Verdict = "avoid"
)

// MarketMetrics holds the raw inputs for scoring one market. All numeric
// fields are expected to be >= 0; zero revenue or price degrades to zero
// factor contributions rather than erroring. Population 0 means unknown.
type MarketMetrics struct {
	MonthlyRevenue      float64 `json:"monthly_revenue"`
	MedianHomePrice     float64 `json:"median_home_price"`
	OccupancyRate       float64 `json:"occupancy_rate"` // 0-100
	StateCode           string  `json:"state_code"`
	ListingsPerThousand float64 `json:"listings_per_thousand"`
	Population          int     `json:"population,omitempty"`
}

// FactorScore is one factor's contribution to a market score.
type FactorScore struct {
	Score    int     `json:"score"`
	MaxScore int     `json:"max_score"`
	Value    float64 `json:"value"`
	Rating   string  `json:"rating"`
}

// Breakdown is the complete scoring result for one market. TotalScore is
// always the exact sum of the five factor scores, and Grade and Verdict are
// always derived from TotalScore; none of the three is ever set
// independently.
type Breakdown struct {
	CashOnCash       FactorScore `json:"cash_on_cash"`
	Affordability    FactorScore `json:"affordability"`
	YearRoundIncome  FactorScore `json:"year_round_income"`
	LandlordFriendly FactorScore `json:"landlord_friendly"`
	RoomToGrow       FactorScore `json:"room_to_grow"`
	TotalScore       int         `json:"total_score"`
	Grade            Grade       `json:"grade"`
	Verdict          Verdict     `json:"verdict"`
}

// ScoreMarket computes the full scoring breakdown for one market.
func ScoreMarket(m MarketMetrics) Breakdown {
	cocReturn := CashOnCash(m.MonthlyRevenue, m.MedianHomePrice)

	cocScore, cocRating := ScoreCashOnCash(cocReturn)
	affScore, affRating := ScoreAffordability(m.MedianHomePrice)
	incScore, incRating := ScoreYearRoundIncome(m.OccupancyRate)
	llScore, llRating := ScoreLandlordFriendly(m.StateCode)
	rtgScore, rtgRating := ScoreRoomToGrow(m.ListingsPerThousand, m.Population)

	total := cocScore + affScore + incScore + llScore + rtgScore
	grade := GradeFor(total)

	return Breakdown{
		CashOnCash:       FactorScore{cocScore, MaxCashOnCash, cocReturn, cocRating},
		Affordability:    FactorScore{affScore, MaxAffordability, m.MedianHomePrice, affRating},
		YearRoundIncome:  FactorScore{incScore, MaxYearRoundIncome, m.OccupancyRate, incRating},
		LandlordFriendly: FactorScore{llScore, MaxLandlordFriendly, 0, llRating},
		RoomToGrow:       FactorScore{rtgScore, MaxRoomToGrow, m.ListingsPerThousand, rtgRating},
		TotalScore:       total,
		Grade:            grade,
		Verdict:          VerdictFor(grade),
	}
}

// GradeFor converts a total score (0-100) to its letter grade.
func GradeFor(totalScore int) Grade {
	switch {
	case totalScore >= 85:
		return GradeAPlus
	case totalScore >= 75:
		return GradeA
	case totalScore >= 65:
		return GradeBPlus
	case totalScore >= 55:
		return GradeB
	case totalScore >= 45:
		return GradeC
	case totalScore >= 35:
		return GradeD
	default:
		return GradeF
	}
}

// VerdictFor converts a letter grade to its investment verdict.
func VerdictFor(grade Grade) Verdict {
	switch grade {
	case GradeAPlus:
		return VerdictStrongBuy
	case GradeA, GradeBPlus:
		return VerdictBuy
	case GradeB, GradeC:
		return VerdictHold
	case GradeD:
		return VerdictCaution
	default:
		return VerdictAvoid
	}
}

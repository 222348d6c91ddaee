package adjacency

// Rating is the four-tier classification of an adjacency bonus.
type Rating string

const (
	RatingPoor      Rating = "Poor"
	RatingDecent    Rating = "Decent"
	RatingGood      Rating = "Good"
	RatingExcellent Rating = "Excellent"
)

// RatingForBonus classifies a bonus: <=0 Poor, 1-2 Decent, 3-4 Good,
// >=5 Excellent.
func RatingForBonus(bonus int) Rating {
	switch {
	case bonus <= 0:
		return RatingPoor
	case bonus <= 2:
		return RatingDecent
	case bonus <= 4:
		return RatingGood
	default:
		return RatingExcellent
	}
}

// ColorForBonus maps a bonus to its overlay color, one per rating tier.
func ColorForBonus(bonus int) string {
	switch RatingForBonus(bonus) {
	case RatingPoor:
		return "gray"
	case RatingDecent:
		return "yellow"
	case RatingGood:
		return "orange"
	default:
		return "green"
	}
}

package domain

// Rating is one user's score for one show, on a 1-5 scale.
type Rating struct {
	UserID int64  `json:"user_id"`
	ShowID string `json:"show_id"`
	Rating int    `json:"rating"`
}

const (
	RatingMin = 1
	RatingMax = 5
)

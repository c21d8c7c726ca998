package domain

// GenreRecommendation is one row of the per-user per-genre keyspace. The
// Recommendations field stays a JSON-encoded string array on the wire;
// consumers run it through service.DecodeList. Changing this to a decoded
// array is a wire-format break for existing clients.
type GenreRecommendation struct {
	UserID          int64  `json:"user_id"`
	Genre           string `json:"genre"`
	Recommendations string `json:"recommendations"`
}

// RowKind tags a browse row with how its ordering must be treated.
type RowKind string

const (
	// RowPersonalized and RowRecentlyRated carry ranking information in
	// their order and are never shuffled.
	RowPersonalized  RowKind = "personalized"
	RowRecentlyRated RowKind = "recently_rated"
	RowTrending      RowKind = "trending"
	RowGenre         RowKind = "genre"
	RowCatalog       RowKind = "catalog"
)

// OrderSignificant reports whether the row's source order is a ranking
// signal that must survive presentation untouched.
func (k RowKind) OrderSignificant() bool {
	return k == RowPersonalized || k == RowRecentlyRated
}

// BrowseRow is one horizontal strip on the home surface.
type BrowseRow struct {
	Title  string  `json:"title"`
	Kind   RowKind `json:"kind"`
	Movies []Movie `json:"movies"`
	Total  int     `json:"total"`
}

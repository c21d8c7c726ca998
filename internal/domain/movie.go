package domain

import "sort"

// Movie is one catalog entry. The wire names (and the 0/1 genre flags) match
// the catalog feed this service ingests, so the JSON tags are not idiomatic
// on purpose.
type Movie struct {
	ShowID      string `json:"show_id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Director    string `json:"director"`
	Cast        string `json:"cast"`
	Country     string `json:"country"`
	ReleaseYear int    `json:"release_year"`
	Rating      string `json:"rating"`
	Duration    string `json:"duration"`
	Description string `json:"description"`

	Action                   int `json:"Action"`
	Adventure                int `json:"Adventure"`
	AnimeSeriesIntlTV        int `json:"Anime_Series_International_TV_Shows"`
	BritishDocuseriesIntlTV  int `json:"British_TV_Shows_Docuseries_International_TV_Shows"`
	Children                 int `json:"Children"`
	Comedies                 int `json:"Comedies"`
	ComediesDramasIntlMovies int `json:"Comedies_Dramas_International_Movies"`
	ComediesIntlMovies       int `json:"Comedies_International_Movies"`
	ComediesRomanticMovies   int `json:"Comedies_Romantic_Movies"`
	CrimeTVDocuseries        int `json:"Crime_TV_Shows_Docuseries"`
	Documentaries            int `json:"Documentaries"`
	DocumentariesIntlMovies  int `json:"Documentaries_International_Movies"`
	Docuseries               int `json:"Docuseries"`
	Dramas                   int `json:"Dramas"`
	DramasIntlMovies         int `json:"Dramas_International_Movies"`
	DramasRomanticMovies     int `json:"Dramas_Romantic_Movies"`
	FamilyMovies             int `json:"Family_Movies"`
	Fantasy                  int `json:"Fantasy"`
	HorrorMovies             int `json:"Horror_Movies"`
	IntlMoviesThrillers      int `json:"International_Movies_Thrillers"`
	IntlTVRomanticTVDramas   int `json:"International_TV_Shows_Romantic_TV_Shows_TV_Dramas"`
	KidsTV                   int `json:"Kids__TV"`
	LanguageTVShows          int `json:"Language_TV_Shows"`
	Musicals                 int `json:"Musicals"`
	NatureTV                 int `json:"Nature_TV"`
	RealityTV                int `json:"Reality_TV"`
	Spirituality             int `json:"Spirituality"`
	TVAction                 int `json:"TV_Action"`
	TVComedies               int `json:"TV_Comedies"`
	TVDramas                 int `json:"TV_Dramas"`
	TalkShowsTVComedies      int `json:"Talk_Shows_TV_Comedies"`
	Thrillers                int `json:"Thrillers"`
}

// genreFlags maps a genre display name to the catalog flag columns that count
// as membership. The set is fixed at compile time; there is deliberately no
// reflection over field names here.
var genreFlags = map[string][]func(*Movie) int{
	"Action & Adventure": {
		func(m *Movie) int { return m.Action },
		func(m *Movie) int { return m.Adventure },
		func(m *Movie) int { return m.TVAction },
	},
	"Comedy": {
		func(m *Movie) int { return m.Comedies },
		func(m *Movie) int { return m.TVComedies },
		func(m *Movie) int { return m.TalkShowsTVComedies },
	},
	"Drama": {
		func(m *Movie) int { return m.Dramas },
		func(m *Movie) int { return m.TVDramas },
	},
	"Horror": {
		func(m *Movie) int { return m.HorrorMovies },
	},
	"Fantasy": {
		func(m *Movie) int { return m.Fantasy },
	},
	"Thriller": {
		func(m *Movie) int { return m.Thrillers },
		func(m *Movie) int { return m.IntlMoviesThrillers },
	},
	"Documentary": {
		func(m *Movie) int { return m.Documentaries },
		func(m *Movie) int { return m.Docuseries },
		func(m *Movie) int { return m.NatureTV },
	},
	"Anime": {
		func(m *Movie) int { return m.AnimeSeriesIntlTV },
	},
	"Family": {
		func(m *Movie) int { return m.FamilyMovies },
		func(m *Movie) int { return m.Children },
		func(m *Movie) int { return m.KidsTV },
	},
	"International": {
		func(m *Movie) int { return m.IntlTVRomanticTVDramas },
		func(m *Movie) int { return m.BritishDocuseriesIntlTV },
		func(m *Movie) int { return m.DocumentariesIntlMovies },
		func(m *Movie) int { return m.DramasIntlMovies },
		func(m *Movie) int { return m.ComediesIntlMovies },
		func(m *Movie) int { return m.ComediesDramasIntlMovies },
	},
}

// InGenre reports whether the movie carries any flag of the named genre
// group. The second result is false for genre names outside the fixed set.
func (m *Movie) InGenre(genre string) (member, known bool) {
	flags, ok := genreFlags[genre]
	if !ok {
		return false, false
	}
	for _, f := range flags {
		if f(m) != 0 {
			return true, true
		}
	}
	return false, true
}

// IsKnownGenre reports whether a genre display name is in the fixed set.
func IsKnownGenre(genre string) bool {
	_, ok := genreFlags[genre]
	return ok
}

// KnownGenres returns the recognized genre display names, sorted.
func KnownGenres() []string {
	names := make([]string, 0, len(genreFlags))
	for name := range genreFlags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

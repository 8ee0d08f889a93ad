package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stitts-dev/prop-engine/internal/models"
)

// RatingsTable serves season team ratings loaded from a YAML file:
//
//	teams:
//	  - id: 1610612738
//	    abbr: BOS
//	    off_rating: 120.2
//	    def_rating: 110.1
//	    pace: 97.9
//	    def_rank: {pts: 4, reb: 9, ast: 2, 3pm: 7}
type RatingsTable struct {
	byID   map[int]models.TeamRatings
	byAbbr map[string]models.TeamRatings
}

type ratingsFile struct {
	Teams []ratingsEntry `yaml:"teams"`
}

type ratingsEntry struct {
	ID        int            `yaml:"id"`
	Abbr      string         `yaml:"abbr"`
	OffRating float64        `yaml:"off_rating"`
	DefRating float64        `yaml:"def_rating"`
	Pace      float64        `yaml:"pace"`
	DefRank   map[string]int `yaml:"def_rank"`
}

func LoadRatingsTable(path string) (*RatingsTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ratings file: %w", err)
	}
	return ParseRatingsTable(data)
}

// ParseRatingsTable validates every entry; a team with a missing abbreviation
// or a non-positive rating rejects the whole table.
func ParseRatingsTable(data []byte) (*RatingsTable, error) {
	var file ratingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing ratings file: %w", err)
	}

	t := &RatingsTable{
		byID:   make(map[int]models.TeamRatings, len(file.Teams)),
		byAbbr: make(map[string]models.TeamRatings, len(file.Teams)),
	}
	for i, e := range file.Teams {
		abbr := strings.ToUpper(strings.TrimSpace(e.Abbr))
		if abbr == "" {
			return nil, fmt.Errorf("team %d: abbr is required", i)
		}
		if e.OffRating <= 0 || e.DefRating <= 0 || e.Pace <= 0 {
			return nil, fmt.Errorf("team %s: ratings and pace must be positive", abbr)
		}

		r := models.TeamRatings{
			TeamID:    e.ID,
			TeamAbbr:  abbr,
			OffRating: e.OffRating,
			DefRating: e.DefRating,
			Pace:      e.Pace,
			DefRanks:  e.DefRank,
		}
		if e.ID != 0 {
			t.byID[e.ID] = r
		}
		t.byAbbr[abbr] = r
	}
	return t, nil
}

// TeamRatings looks the team up by id, then by abbreviation.
func (t *RatingsTable) TeamRatings(_ context.Context, teamID int, abbr string) (*models.TeamRatings, error) {
	if r, ok := t.byID[teamID]; ok {
		return &r, nil
	}
	if r, ok := t.byAbbr[strings.ToUpper(abbr)]; ok {
		return &r, nil
	}
	return nil, fmt.Errorf("%w: team %d (%s)", models.ErrMissingTeamRatings, teamID, abbr)
}

func (t *RatingsTable) Len() int {
	return len(t.byAbbr)
}

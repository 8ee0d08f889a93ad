// Package gather assembles the inputs of a live analysis from the data
// collaborators. It is the only place live analyses perform I/O.
package gather

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/prop-engine/internal/cache"
	"github.com/stitts-dev/prop-engine/internal/models"
	"github.com/stitts-dev/prop-engine/internal/providers"
	"github.com/stitts-dev/prop-engine/internal/tuning"
	"github.com/stitts-dev/prop-engine/pkg/logger"
)

// Sources are the collaborators a Gatherer reads from. Only Live is required.
type Sources struct {
	Live      providers.LiveSnapshotProvider
	Season    providers.SeasonStatsProvider
	Ratings   providers.TeamRatingsProvider
	Schedule  providers.ScheduleProvider
	Directory providers.PlayerDirectory
	History   providers.HistoricalStatsProvider
}

// Request selects what to gather for one game.
type Request struct {
	GameID        string
	PropLines     map[string]map[models.StatType]float64
	ReferenceLine *float64
}

type Gatherer struct {
	sources     Sources
	tables      tuning.Tables
	concurrency int
	historyN    int
	now         func() time.Time
	logger      *logrus.Logger
}

func NewGatherer(sources Sources, tables tuning.Tables, concurrency, historyN int, log *logrus.Logger) *Gatherer {
	if concurrency < 1 {
		concurrency = 1
	}
	if historyN < 1 {
		historyN = 10
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Gatherer{
		sources:     sources,
		tables:      tables,
		concurrency: concurrency,
		historyN:    historyN,
		now:         time.Now,
		logger:      log,
	}
}

// WithClock replaces the time source used for AnalyzedAt.
func (g *Gatherer) WithClock(now func() time.Time) *Gatherer {
	g.now = now
	return g
}

// Gather reads the live snapshot and all side data for a game. A missing game
// returns models.ErrGameNotFound and any other snapshot failure is returned
// wrapped. Side data failures never fail the call; they become defaults with
// a note.
func (g *Gatherer) Gather(ctx context.Context, req Request) (*models.GameInputs, error) {
	log := logger.WithGameContext(g.logger, req.GameID)

	snapshot, err := g.sources.Live.Snapshot(ctx, req.GameID)
	if err != nil {
		if errors.Is(err, models.ErrGameNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetching live snapshot for game %s: %w", req.GameID, err)
	}
	if snapshot == nil {
		return nil, models.ErrGameNotFound
	}

	in := &models.GameInputs{
		Snapshot:      *snapshot,
		Season:        map[int]*models.SeasonStats{},
		History:       map[int][]models.StatObservation{},
		BackToBack:    map[int]bool{},
		PropLines:     req.PropLines,
		ReferenceLine: req.ReferenceLine,
		AnalyzedAt:    g.now().UTC(),
	}

	ratingsMemo := cache.NewMemo[int, models.TeamRatings]()
	game := snapshot.Game
	in.Ratings = models.RatingsPair{
		Home: g.teamRatings(ctx, ratingsMemo, game.HomeTeamID, game.HomeTeamAbbr, in, log),
		Away: g.teamRatings(ctx, ratingsMemo, game.AwayTeamID, game.AwayTeamAbbr, in, log),
	}

	g.backToBack(ctx, game, in, log)
	g.seasonStats(ctx, snapshot.Players(), in, log)
	g.history(ctx, snapshot.Players(), in, log)

	log.WithFields(logrus.Fields{
		"players":       len(snapshot.Players()),
		"season_found":  len(in.Season),
		"ratings_known": in.Ratings.Known(),
	}).Debug("Gathered game inputs")

	return in, nil
}

func (g *Gatherer) teamRatings(
	ctx context.Context,
	memo *cache.Memo[int, models.TeamRatings],
	teamID int,
	abbr string,
	in *models.GameInputs,
	log *logrus.Entry,
) models.TeamRatings {
	if g.sources.Ratings == nil {
		in.Notes = append(in.Notes, fmt.Sprintf("%s ratings unavailable; league averages used", abbr))
		return models.DefaultTeamRatings(teamID, abbr)
	}

	ratings, err := memo.Get(ctx, teamID, func(ctx context.Context) (models.TeamRatings, error) {
		r, err := g.sources.Ratings.TeamRatings(ctx, teamID, abbr)
		if err != nil {
			return models.TeamRatings{}, err
		}
		if r == nil {
			return models.TeamRatings{}, models.ErrMissingTeamRatings
		}
		return *r, nil
	})
	if err != nil {
		if !errors.Is(err, models.ErrMissingTeamRatings) {
			log.WithError(err).WithField("team", abbr).Warn("Team ratings unavailable, using league averages")
		}
		in.Notes = append(in.Notes, fmt.Sprintf("%s ratings unavailable; league averages used", abbr))
		return models.DefaultTeamRatings(teamID, abbr)
	}
	if ratings.Defaulted {
		in.Notes = append(in.Notes, fmt.Sprintf("%s ratings unavailable; league averages used", abbr))
	}
	return ratings
}

func (g *Gatherer) backToBack(ctx context.Context, game models.LiveGame, in *models.GameInputs, log *logrus.Entry) {
	if g.sources.Schedule == nil {
		return
	}
	for _, teamID := range []int{game.HomeTeamID, game.AwayTeamID} {
		b2b, err := g.sources.Schedule.IsBackToBack(ctx, teamID, game.GameDate)
		if err != nil {
			log.WithError(err).WithField("team_id", teamID).Warn("Schedule lookup failed, assuming rested")
			continue
		}
		in.BackToBack[teamID] = b2b
	}
}

// seasonStats fetches season averages for every player who has played,
// bounded by the configured concurrency.
func (g *Gatherer) seasonStats(ctx context.Context, players []models.LivePlayerStats, in *models.GameInputs, log *logrus.Entry) {
	if g.sources.Season == nil {
		return
	}

	memo := cache.NewMemo[int, *models.SeasonStats]()
	sem := make(chan struct{}, g.concurrency)
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, p := range players {
		if p.Minutes <= 0 {
			continue
		}
		p := p
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			stats, err := memo.Get(ctx, p.PlayerID, func(ctx context.Context) (*models.SeasonStats, error) {
				return g.sources.Season.SeasonStats(ctx, models.PlayerRef{
					ID:       p.PlayerID,
					Name:     p.PlayerName,
					TeamID:   p.TeamID,
					TeamAbbr: p.TeamAbbr,
				})
			})
			if err != nil {
				log.WithError(err).WithField("player", p.PlayerName).Debug("Season stats unavailable")
				return
			}
			if stats == nil {
				return
			}
			// the provider may hand out a shared pointer
			own := *stats
			if own.SecondHalfPoints == 0 && own.SecondHalfRebounds == 0 && own.SecondHalfAssists == 0 {
				shares := g.tables.SecondHalf
				own.DeriveSecondHalf(shares.Points, shares.Rebounds, shares.Assists)
			}

			mu.Lock()
			in.Season[p.PlayerID] = &own
			mu.Unlock()
		}()
	}
	wg.Wait()
}

// history fetches recent game logs for players the caller supplied lines
// for. They feed the historical consistency signal.
func (g *Gatherer) history(ctx context.Context, players []models.LivePlayerStats, in *models.GameInputs, log *logrus.Entry) {
	if g.sources.History == nil || g.sources.Directory == nil || len(in.PropLines) == 0 {
		return
	}

	for _, p := range players {
		if _, ok := in.PropLines[p.PlayerName]; !ok {
			continue
		}
		ref, err := g.sources.Directory.SearchPlayer(ctx, p.PlayerName)
		if err != nil || ref == nil {
			if err != nil {
				log.WithError(err).WithField("player", p.PlayerName).Warn("Player lookup failed")
			}
			continue
		}
		games, err := g.sources.History.RecentStats(ctx, ref.ID, g.historyN)
		if err != nil {
			log.WithError(err).WithField("player", p.PlayerName).Warn("Recent stats unavailable")
			continue
		}
		in.History[p.PlayerID] = games
	}
}

package models

import (
	"fmt"
	"strings"
)

type StatType string

const (
	StatPoints           StatType = "points"
	StatRebounds         StatType = "rebounds"
	StatAssists          StatType = "assists"
	StatThrees           StatType = "threes"
	StatSteals           StatType = "steals"
	StatBlocks           StatType = "blocks"
	StatTurnovers        StatType = "turnovers"
	StatPointsRebounds   StatType = "pts+reb"
	StatPointsAssists    StatType = "pts+ast"
	StatReboundsAssists  StatType = "reb+ast"
	StatPointsRebAssists StatType = "pts+reb+ast"
)

// DefaultLiveStatTypes are projected for every qualifying live player.
var DefaultLiveStatTypes = []StatType{StatPoints, StatRebounds, StatAssists}

var statAliases = map[string]StatType{
	"points":      StatPoints,
	"pts":         StatPoints,
	"rebounds":    StatRebounds,
	"reb":         StatRebounds,
	"assists":     StatAssists,
	"ast":         StatAssists,
	"threes":      StatThrees,
	"3pm":         StatThrees,
	"3pt":         StatThrees,
	"fg3m":        StatThrees,
	"steals":      StatSteals,
	"stl":         StatSteals,
	"blocks":      StatBlocks,
	"blk":         StatBlocks,
	"turnovers":   StatTurnovers,
	"tov":         StatTurnovers,
	"turnover":    StatTurnovers,
	"pts+reb":     StatPointsRebounds,
	"pts+ast":     StatPointsAssists,
	"reb+ast":     StatReboundsAssists,
	"pts+reb+ast": StatPointsRebAssists,
	"pra":         StatPointsRebAssists,
}

// ParseStatType normalizes user and provider spellings of a stat category.
func ParseStatType(s string) (StatType, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if st, ok := statAliases[key]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown stat type %q", s)
}

// Game log keys used by historical providers.
const (
	KeyPoints    = "pts"
	KeyRebounds  = "reb"
	KeyAssists   = "ast"
	KeyThrees    = "fg3m"
	KeySteals    = "stl"
	KeyBlocks    = "blk"
	KeyTurnovers = "turnover"
)

// HistoryKeys returns the game log keys whose sum is this stat.
func (s StatType) HistoryKeys() []string {
	switch s {
	case StatPoints:
		return []string{KeyPoints}
	case StatRebounds:
		return []string{KeyRebounds}
	case StatAssists:
		return []string{KeyAssists}
	case StatThrees:
		return []string{KeyThrees}
	case StatSteals:
		return []string{KeySteals}
	case StatBlocks:
		return []string{KeyBlocks}
	case StatTurnovers:
		return []string{KeyTurnovers}
	case StatPointsRebounds:
		return []string{KeyPoints, KeyRebounds}
	case StatPointsAssists:
		return []string{KeyPoints, KeyAssists}
	case StatReboundsAssists:
		return []string{KeyRebounds, KeyAssists}
	case StatPointsRebAssists:
		return []string{KeyPoints, KeyRebounds, KeyAssists}
	}
	return nil
}

// DefensiveCategory is the ratings category an opponent is ranked on for
// this stat, or "" when no rank applies.
func (s StatType) DefensiveCategory() string {
	switch s {
	case StatPoints:
		return DefRankPoints
	case StatRebounds:
		return DefRankRebounds
	case StatAssists:
		return DefRankAssists
	case StatThrees:
		return DefRankThrees
	}
	return ""
}

type Direction string

const (
	Over  Direction = "over"
	Under Direction = "under"
)

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "over", "o":
		return Over, nil
	case "under", "u":
		return Under, nil
	}
	return "", fmt.Errorf("unknown prop direction %q", s)
}

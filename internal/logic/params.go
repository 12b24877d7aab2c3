package logic

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mlr-stats/stats-api/internal/models"
)

// ErrInvalidSeason is returned when a season token is neither a season number nor "current".
var ErrInvalidSeason = errors.New("invalid season")

// UnsupportedValueError reports a parameter value the stats queries cannot serve.
type UnsupportedValueError struct {
	Param string
	Value string
	// Detail optionally names the value the parameter was combined with.
	Detail string
}

func (e *UnsupportedValueError) Error() string {
	msg := fmt.Sprintf("unsupported value provided for '%s' parameter: %s", e.Param, e.Value)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

var identifierPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ParseStatGroups splits a comma separated group list, keeping the caller's order.
func ParseStatGroups(raw string) ([]models.StatGroup, error) {
	parts := strings.Split(raw, ",")
	groups := make([]models.StatGroup, 0, len(parts))
	for _, p := range parts {
		g, err := ParseStatGroup(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func ParseStatGroup(s string) (models.StatGroup, error) {
	switch g := models.StatGroup(s); g {
	case models.StatGroupHitting, models.StatGroupPitching:
		return g, nil
	}
	return "", &UnsupportedValueError{Param: "group", Value: s}
}

// ParseGameType defaults to the regular season when s is empty.
func ParseGameType(s string) (models.GameType, error) {
	if s == "" {
		return models.GameTypeRegular, nil
	}
	switch gt := models.GameType(s); gt {
	case models.GameTypeRegular, models.GameTypePostseason:
		return gt, nil
	}
	return "", &UnsupportedValueError{Param: "gameType", Value: s}
}

// ParseQueryType defaults to a season query when s is empty.
func ParseQueryType(s string) (models.QueryType, error) {
	if s == "" || models.QueryType(s) == models.QueryTypeSeason {
		return models.QueryTypeSeason, nil
	}
	return "", &UnsupportedValueError{Param: "type", Value: s}
}

// ParseSortOrder defaults to descending when s is empty.
func ParseSortOrder(s string) (models.SortOrder, error) {
	switch o := models.SortOrder(strings.ToLower(s)); o {
	case "":
		return models.SortDesc, nil
	case models.SortAsc, models.SortDesc:
		return o, nil
	}
	return "", &UnsupportedValueError{Param: "order", Value: s}
}

// ParseSeasonToken returns the literal season number, or current=true for the "current" token.
// An empty token means no season filter.
func ParseSeasonToken(s string) (season *int64, current bool, err error) {
	switch s {
	case "":
		return nil, false, nil
	case models.CurrentSeasonToken:
		return nil, true, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return nil, false, fmt.Errorf("%w: %q", ErrInvalidSeason, s)
	}
	return &n, false, nil
}

func validateIdentifier(param, name string) error {
	// Names under the relation alias prefixes would be decoded into the wrong relation
	if !identifierPattern.MatchString(name) ||
		strings.HasPrefix(name, teamColumnPrefix) ||
		strings.HasPrefix(name, runningColumnPrefix) {
		return &UnsupportedValueError{Param: param, Value: name}
	}
	return nil
}

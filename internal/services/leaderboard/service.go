package leaderboard

import (
	"context"
	"sort"
	"time"

	"github.com/mcoot/scavengerhunt/internal/model"
	"github.com/mcoot/scavengerhunt/internal/storage"
)

// Service ranks players who have started hunting
type Service struct {
	storage storage.Storage
}

// New creates a new leaderboard Service
func New(storage storage.Storage) *Service {
	return &Service{
		storage: storage,
	}
}

// Standings returns active players ordered by clues completed (most first),
// then fastest interval (quickest first, unset last), then misses (fewest
// first), then name. Players with identical results share a rank.
func (s *Service) Standings(ctx context.Context) ([]model.Standing, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	standings := make([]model.Standing, 0, len(players))
	for _, p := range players {
		if !p.IsActive() {
			continue
		}
		standings = append(standings, model.Standing{
			PlayerID:        p.ID,
			Name:            p.Name,
			Status:          p.Status,
			Completed:       p.CompletedCount,
			Missed:          p.MissedCount,
			FastestInterval: p.FastestInterval,
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Completed != b.Completed {
			return a.Completed > b.Completed
		}
		if c := compareFastest(a.FastestInterval, b.FastestInterval); c != 0 {
			return c < 0
		}
		if a.Missed != b.Missed {
			return a.Missed < b.Missed
		}
		return a.Name < b.Name
	})

	for i := range standings {
		if i > 0 && sameResult(standings[i-1], standings[i]) {
			standings[i].Rank = standings[i-1].Rank
		} else {
			standings[i].Rank = i + 1
		}
	}

	return standings, nil
}

// compareFastest orders shorter intervals first and unset intervals last
func compareFastest(a, b *time.Duration) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

func sameResult(a, b model.Standing) bool {
	return a.Completed == b.Completed &&
		a.Missed == b.Missed &&
		compareFastest(a.FastestInterval, b.FastestInterval) == 0
}

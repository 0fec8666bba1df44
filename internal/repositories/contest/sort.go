package contest

import (
	"sort"

	"github.com/KirkDiggler/contested/internal/models"
)

func sortByCreated(contests []*models.Contest) {
	sort.SliceStable(contests, func(i, j int) bool {
		if contests[i].CreatedAt.Equal(contests[j].CreatedAt) {
			return contests[i].ID < contests[j].ID
		}
		return contests[i].CreatedAt.Before(contests[j].CreatedAt)
	})
}

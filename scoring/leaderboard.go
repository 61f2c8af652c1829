package scoring

import (
	"sort"
	"time"

	"github.com/wordlehub/wordle-tournaments/models"
)

// LeaderboardAt считает счёт каждого участника турнира на опорную дату и
// возвращает таблицу, отсортированную по возрастанию счёта (меньше — лучше).
// Сортировка стабильная: при равном счёте сохраняется порядок вступления в
// турнир (владелец — первый).
func LeaderboardAt(t *models.Tournament, date time.Time) []models.Scoreboard {
	boards := make([]models.Scoreboard, 0, len(t.Participants))
	for i := range t.Participants {
		p := &t.Participants[i]
		boards = append(boards, models.Scoreboard{
			UserID:        p.ID,
			Username:      p.Username,
			TournamentID:  t.ID,
			TotalAttempts: ScoreAt(p, t, date),
		})
	}

	sort.SliceStable(boards, func(i, j int) bool {
		return boards[i].TotalAttempts < boards[j].TotalAttempts
	})
	return boards
}

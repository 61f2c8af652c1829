package scoring

import (
	"time"

	"github.com/wordlehub/wordle-tournaments/models"
)

// MissPenalty — очки за день/язык без сыгранного результата. Хуже любого
// реального числа попыток, которое допускает формат игры.
const MissPenalty = 7

// ScoreAt считает суммарный счёт пользователя в турнире на опорную дату.
// Для каждого прошедшего дня окна и каждого языка турнира берётся число
// попыток сыгранного результата, а при его отсутствии начисляется MissPenalty.
// Результаты вне окна и на языках, не входящих в турнир, не учитываются.
//
// Если на один день и язык записано несколько результатов, засчитывается
// наименьшее число попыток: меньше — лучше, и правило не зависит от порядка
// строк.
func ScoreAt(user *models.User, t *models.Tournament, date time.Time) int {
	n := PlayedDaysAt(t, date)
	start := Day(t.StartDate)

	total := 0
	for d := 0; d < n; d++ {
		day := start.AddDate(0, 0, d)
		for _, lang := range t.Languages {
			total += dayScore(user.Results, day, lang)
		}
	}
	return total
}

func dayScore(results []models.Result, day time.Time, lang models.Language) int {
	best := -1
	for _, r := range results {
		if r.Language != lang || !Day(r.Date).Equal(day) {
			continue
		}
		if best == -1 || r.Attempts < best {
			best = r.Attempts
		}
	}
	if best == -1 {
		return MissPenalty
	}
	return best
}

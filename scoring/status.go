// Package scoring содержит чистый движок подсчёта очков и рейтинга.
// Все функции детерминированы: опорная дата всегда передаётся параметром,
// ничто здесь не читает часы и не ходит в БД.
package scoring

import (
	"time"

	"github.com/wordlehub/wordle-tournaments/models"
)

// Day нормализует момент времени до календарного дня (полночь UTC).
// Все сравнения дат в движке идут с точностью до дня.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StatusAt возвращает статус турнира на опорную дату.
// Обе границы окна включительны.
func StatusAt(t *models.Tournament, date time.Time) models.TournamentStatus {
	d := Day(date)
	switch {
	case d.Before(Day(t.StartDate)):
		return models.StatusNotStarted
	case d.After(Day(t.EndDate)):
		return models.StatusFinished
	default:
		return models.StatusStarted
	}
}

// PlayedDaysAt возвращает число дней турнира, которые полностью прошли на
// опорную дату и потому подлежат подсчёту. Текущий (ещё идущий) день не
// считается: его ещё нельзя засчитать как пропущенный. После окончания
// турнира возвращается полная длина окна и больше не растёт.
func PlayedDaysAt(t *models.Tournament, date time.Time) int {
	switch StatusAt(t, date) {
	case models.StatusNotStarted:
		return 0
	case models.StatusStarted:
		return daysBetween(Day(t.StartDate), Day(date))
	default:
		return daysBetween(Day(t.StartDate), Day(t.EndDate)) + 1
	}
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

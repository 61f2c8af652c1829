package services

import (
	"time"

	"github.com/wordlehub/wordle-tournaments/models"
	"github.com/wordlehub/wordle-tournaments/scoring"
)

// Политики доступа — чистые предикаты над уже загруженным снимком турнира.
// nil означает "разрешено", иначе возвращается сентинел-ошибка с причиной
// отказа. Правила участия записаны явным упорядоченным списком: приоритет
// виден в коде и проверяется по отдельности.

type participationRule func(t *models.Tournament, actorID, targetID int, now time.Time) error

var participationRules = []participationRule{
	// 1. После старта (или финиша) состав заморожен, кем бы ни был актор.
	func(t *models.Tournament, _, _ int, now time.Time) error {
		if scoring.StatusAt(t, now) != models.StatusNotStarted {
			return ErrTournamentAlreadyStarted
		}
		return nil
	},
	// 2. В приватный турнир добавляет только владелец.
	func(t *models.Tournament, actorID, _ int, _ time.Time) error {
		if t.Visibility == models.VisibilityPrivate && !t.IsOwner(actorID) {
			return ErrPrivateTournamentAddForbidden
		}
		return nil
	},
	// 3. В публичный турнир не-владелец может добавить только себя.
	func(t *models.Tournament, actorID, targetID int, _ time.Time) error {
		if t.Visibility == models.VisibilityPublic && !t.IsOwner(actorID) && actorID != targetID {
			return ErrPublicTournamentAddForbidden
		}
		return nil
	},
}

// CanAddParticipant решает, может ли actor добавить target в турнир.
// Вызывается до любой мутации состава; при гонке добавлений арбитром
// остаётся уникальный индекс в хранилище.
func CanAddParticipant(t *models.Tournament, actorID, targetID int, now time.Time) error {
	for _, rule := range participationRules {
		if err := rule(t, actorID, targetID, now); err != nil {
			return err
		}
	}
	return nil
}

// CanView решает, может ли actor просматривать турнир. Публичные турниры
// видны всем, приватные — владельцу и текущим участникам.
func CanView(t *models.Tournament, actorID int) error {
	if t.Visibility == models.VisibilityPublic {
		return nil
	}
	if t.IsOwner(actorID) || t.IsParticipant(actorID) {
		return nil
	}
	return ErrTournamentViewForbidden
}

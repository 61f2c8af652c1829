package models

// Scoreboard — производное представление счёта одного участника на опорную
// дату. Не хранится в БД: пересчитывается из актуальных данных при каждом
// запросе. Меньше — лучше.
type Scoreboard struct {
	UserID        int    `json:"user_id"`
	Username      string `json:"username"`
	TournamentID  int    `json:"tournament_id"`
	TotalAttempts int    `json:"total_attempts"`
}

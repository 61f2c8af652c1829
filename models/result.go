package models

import "time"

// Result — одна завершённая попытка: день, язык, число догадок.
// Создаётся один раз и никогда не изменяется.
type Result struct {
	ID       int       `json:"id"`
	UserID   int       `json:"user_id"`
	Attempts int       `json:"attempts"`
	Language Language  `json:"language"`
	Date     time.Time `json:"date"`
}

package models

import "time"

// TournamentStatus — статус жизненного цикла турнира. Никогда не хранится:
// всегда вычисляется из дат турнира и опорной даты.
type TournamentStatus string

const (
	StatusNotStarted TournamentStatus = "NOTSTARTED"
	StatusStarted    TournamentStatus = "STARTED"
	StatusFinished   TournamentStatus = "FINISHED"
)

// Visibility определяет, кто может видеть турнир.
type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Tournament представляет турнир.
type Tournament struct {
	ID         int        `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	StartDate  time.Time  `json:"start_date" db:"start_date"`
	EndDate    time.Time  `json:"end_date" db:"end_date"`
	Visibility Visibility `json:"visibility" db:"visibility"`
	Languages  []Language `json:"languages" db:"-"`
	OwnerID    int        `json:"owner_id" db:"owner_id"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	LogoKey    *string    `json:"-" db:"logo_key"`
	LogoURL    *string    `json:"logo_url,omitempty" db:"-"`

	// Опциональные связанные сущности (не мапятся напрямую).
	// Participants упорядочены по порядку вступления, владелец всегда первый.
	Owner        *User  `json:"owner,omitempty" db:"-"`
	Participants []User `json:"participants,omitempty" db:"-"`
}

// IsOwner сообщает, является ли пользователь владельцем турнира.
func (t *Tournament) IsOwner(userID int) bool {
	return t.OwnerID == userID
}

// IsParticipant сообщает, состоит ли пользователь в турнире.
func (t *Tournament) IsParticipant(userID int) bool {
	for _, p := range t.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// SupportsLanguage сообщает, входит ли язык в набор языков турнира.
func (t *Tournament) SupportsLanguage(l Language) bool {
	for _, tl := range t.Languages {
		if tl == l {
			return true
		}
	}
	return false
}

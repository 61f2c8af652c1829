package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/wordlehub/wordle-tournaments/models"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentInvalidOwner = errors.New("invalid owner reference")
	ErrParticipantConflict    = errors.New("user is already a participant of this tournament")
	ErrParticipantUserInvalid = errors.New("participant references an unknown user")
)

type ListTournamentsFilter struct {
	// ViewerID ограничивает выборку турнирами, видимыми этому пользователю:
	// публичные плюс приватные, где он владелец или участник. Ноль — только
	// публичные.
	ViewerID int
	Limit    int
	Offset   int
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	AddParticipant(ctx context.Context, tournamentID, userID int) error
	UpdateLogoKey(ctx context.Context, tournamentID int, logoKey *string) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

// Create вставляет турнир, его набор языков и владельца как первого участника
// в одной транзакции: инвариант "владелец всегда участник" держится на уровне
// хранилища.
func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tournament create tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tournaments (name, start_date, end_date, visibility, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err = tx.QueryRowContext(ctx, query,
		t.Name, t.StartDate, t.EndDate, t.Visibility, t.OwnerID,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTournamentInvalidOwner
		}
		return fmt.Errorf("failed to create tournament: %w", err)
	}

	for _, lang := range t.Languages {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO tournament_languages (tournament_id, language) VALUES ($1, $2)`,
			t.ID, lang)
		if err != nil {
			return fmt.Errorf("failed to store tournament language %s: %w", lang, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tournament_participants (tournament_id, user_id) VALUES ($1, $2)`,
		t.ID, t.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to enroll owner as participant: %w", err)
	}

	return tx.Commit()
}

// GetByID загружает турнир целиком: языки, участников в порядке вступления и
// историю результатов каждого участника. Движку подсчёта нужен полный снимок.
func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT id, name, start_date, end_date, visibility, owner_id, logo_key, created_at
		FROM tournaments
		WHERE id = $1`

	t := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.StartDate, &t.EndDate, &t.Visibility, &t.OwnerID, &t.LogoKey, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}

	if t.Languages, err = r.loadLanguages(ctx, t.ID); err != nil {
		return nil, err
	}
	if t.Participants, err = r.loadParticipants(ctx, t.ID); err != nil {
		return nil, err
	}
	for i := range t.Participants {
		if t.Participants[i].ID == t.OwnerID {
			t.Owner = &t.Participants[i]
			break
		}
	}
	return t, nil
}

func (r *postgresTournamentRepository) loadLanguages(ctx context.Context, tournamentID int) ([]models.Language, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT language FROM tournament_languages WHERE tournament_id = $1 ORDER BY language`,
		tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament languages: %w", err)
	}
	defer rows.Close()

	var langs []models.Language
	for rows.Next() {
		var l models.Language
		if err := rows.Scan(&l); err != nil {
			return nil, fmt.Errorf("failed to scan language row: %w", err)
		}
		langs = append(langs, l)
	}
	return langs, rows.Err()
}

// loadParticipants сохраняет порядок вступления (по id строки участия) —
// от него зависит разрешение ничьих в таблице лидеров.
func (r *postgresTournamentRepository) loadParticipants(ctx context.Context, tournamentID int) ([]models.User, error) {
	query := `
		SELECT u.id, u.username, u.name, u.avatar_key, u.created_at
		FROM tournament_participants tp
		JOIN users u ON u.id = tp.user_id
		WHERE tp.tournament_id = $1
		ORDER BY tp.id`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.AvatarKey, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	query := `
		SELECT DISTINCT t.id, t.name, t.start_date, t.end_date, t.visibility, t.owner_id, t.logo_key, t.created_at
		FROM tournaments t
		LEFT JOIN tournament_participants tp ON tp.tournament_id = t.id
		WHERE t.visibility = 'PUBLIC' OR t.owner_id = $1 OR tp.user_id = $1
		ORDER BY t.id`

	args := []interface{}{filter.ViewerID}
	argID := 2
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	var tournaments []models.Tournament
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(&t.ID, &t.Name, &t.StartDate, &t.EndDate, &t.Visibility, &t.OwnerID, &t.LogoKey, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tournaments {
		if tournaments[i].Languages, err = r.loadLanguages(ctx, tournaments[i].ID); err != nil {
			return nil, err
		}
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) AddParticipant(ctx context.Context, tournamentID, userID int) error {
	query := `INSERT INTO tournament_participants (tournament_id, user_id) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, tournamentID, userID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				return ErrParticipantConflict
			case "23503": // foreign_key_violation
				if pqErr.Constraint == "tournament_participants_user_id_fkey" {
					return ErrParticipantUserInvalid
				}
				return ErrTournamentNotFound
			}
		}
		return fmt.Errorf("failed to add participant: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) UpdateLogoKey(ctx context.Context, tournamentID int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tournaments SET logo_key = $1 WHERE id = $2`, logoKey, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to update tournament logo key: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

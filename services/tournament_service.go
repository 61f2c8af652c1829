package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/wordlehub/wordle-tournaments/models"
	"github.com/wordlehub/wordle-tournaments/repositories"
	"github.com/wordlehub/wordle-tournaments/scoring"
	"github.com/wordlehub/wordle-tournaments/storage"
	"golang.org/x/sync/errgroup"
)

// LeaderboardBroadcaster рассылает обновления таблицы лидеров подписчикам
// комнаты турнира (см. пакет live).
type LeaderboardBroadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// LeaderboardUpdate — сообщение, уходящее в комнату турнира по WebSocket.
type LeaderboardUpdate struct {
	Type         string              `json:"type"`
	TournamentID int                 `json:"tournament_id"`
	At           string              `json:"at"`
	Leaderboard  []models.Scoreboard `json:"leaderboard"`
}

type CreateTournamentInput struct {
	Name       string   `json:"name"`
	StartDate  string   `json:"start_date"` // YYYY-MM-DD
	EndDate    string   `json:"end_date"`   // YYYY-MM-DD
	Visibility string   `json:"visibility"`
	Languages  []string `json:"languages"`
}

// TournamentService инкапсулирует бизнес-логику турниров: создание с
// валидацией инвариантов, выдачу с проверкой видимости, изменение состава
// через политику участия и расчёт таблицы лидеров чистым движком.
type TournamentService struct {
	tournamentRepo repositories.TournamentRepository
	userRepo       repositories.UserRepository
	resultRepo     repositories.ResultRepository
	uploader       storage.FileUploader
	hub            LeaderboardBroadcaster
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	userRepo repositories.UserRepository,
	resultRepo repositories.ResultRepository,
	uploader storage.FileUploader,
	hub LeaderboardBroadcaster,
	logger *slog.Logger,
) *TournamentService {
	return &TournamentService{
		tournamentRepo: tournamentRepo,
		userRepo:       userRepo,
		resultRepo:     resultRepo,
		uploader:       uploader,
		hub:            hub,
		logger:         logger,
	}
}

// Create валидирует и сохраняет новый турнир. Владелец автоматически
// становится первым участником. Невалидный турнир отвергается здесь, на
// границе построения: движок подсчёта всегда видит только корректные окна
// и непустые наборы языков.
func (s *TournamentService) Create(ctx context.Context, ownerID int, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}

	startDate, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrValidationFailed)
	}
	endDate, err := time.Parse("2006-01-02", input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrValidationFailed)
	}
	if endDate.Before(startDate) {
		return nil, ErrTournamentInvalidDateRange
	}

	visibility := models.Visibility(input.Visibility)
	if !visibility.Valid() {
		return nil, ErrTournamentInvalidVisibility
	}

	if len(input.Languages) == 0 {
		return nil, ErrTournamentNoLanguages
	}
	languages := make([]models.Language, 0, len(input.Languages))
	seen := make(map[models.Language]struct{}, len(input.Languages))
	for _, raw := range input.Languages {
		lang, err := models.ParseLanguage(raw)
		if err != nil {
			return nil, ErrTournamentInvalidLanguage
		}
		if _, dup := seen[lang]; dup {
			continue
		}
		seen[lang] = struct{}{}
		languages = append(languages, lang)
	}

	tournament := &models.Tournament{
		Name:       name,
		StartDate:  scoring.Day(startDate),
		EndDate:    scoring.Day(endDate),
		Visibility: visibility,
		Languages:  languages,
		OwnerID:    ownerID,
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentInvalidOwner) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.logger.Info("tournament created",
		slog.Int("tournament_id", tournament.ID),
		slog.Int("owner_id", ownerID),
		slog.String("visibility", string(visibility)))
	return tournament, nil
}

// List возвращает турниры, видимые пользователю: публичные плюс приватные,
// где он владелец или участник.
func (s *TournamentService) List(ctx context.Context, viewerID int, limit, offset int) ([]models.Tournament, error) {
	return s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{
		ViewerID: viewerID,
		Limit:    limit,
		Offset:   offset,
	})
}

// GetByID возвращает турнир, если политика видимости это разрешает.
func (s *TournamentService) GetByID(ctx context.Context, id, viewerID int) (*models.Tournament, error) {
	tournament, err := s.loadTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CanView(tournament, viewerID); err != nil {
		return nil, err
	}
	s.fillLogoURL(tournament)
	return tournament, nil
}

// AddParticipant пропускает запрос через политику участия и дописывает
// пользователя в состав. Повторное добавление уже состоящего участника —
// не ошибка, а no-op.
func (s *TournamentService) AddParticipant(ctx context.Context, tournamentID, actorID, targetID int, now time.Time) error {
	tournament, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return err
	}

	if err := CanAddParticipant(tournament, actorID, targetID, now); err != nil {
		return err
	}

	if tournament.IsParticipant(targetID) {
		return nil
	}

	err = s.tournamentRepo.AddParticipant(ctx, tournamentID, targetID)
	switch {
	case errors.Is(err, repositories.ErrParticipantConflict):
		// Гонка двух одинаковых добавлений: уникальный индекс уже решил
		// исход, для вызывающего это тот же no-op.
		return nil
	case errors.Is(err, repositories.ErrParticipantUserInvalid):
		return ErrUserNotFound
	case err != nil:
		return fmt.Errorf("failed to add participant: %w", err)
	}

	s.logger.Info("participant added",
		slog.Int("tournament_id", tournamentID),
		slog.Int("actor_id", actorID),
		slog.Int("user_id", targetID))

	s.broadcastLeaderboard(ctx, tournamentID, now)
	return nil
}

// LeaderboardAt считает таблицу лидеров на опорную дату. Истории результатов
// участников подгружаются параллельно, сам расчёт остаётся чистым.
func (s *TournamentService) LeaderboardAt(ctx context.Context, tournamentID, viewerID int, date time.Time) ([]models.Scoreboard, error) {
	tournament, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if err := CanView(tournament, viewerID); err != nil {
		return nil, err
	}

	if err := s.loadParticipantResults(ctx, tournament); err != nil {
		return nil, err
	}
	return scoring.LeaderboardAt(tournament, date), nil
}

// NotifyResultsChanged пересчитывает и рассылает таблицы лидеров всех
// турниров, в которых состоит пользователь. Вызывается после записи нового
// результата.
func (s *TournamentService) NotifyResultsChanged(ctx context.Context, userID int, now time.Time) {
	if s.hub == nil {
		return
	}
	tournaments, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{ViewerID: userID})
	if err != nil {
		s.logger.Error("failed to list tournaments for broadcast", slog.Any("error", err))
		return
	}
	for _, t := range tournaments {
		full, err := s.loadTournament(ctx, t.ID)
		if err != nil || !full.IsParticipant(userID) {
			continue
		}
		s.broadcastLeaderboard(ctx, t.ID, now)
	}
}

// UploadLogo сохраняет логотип турнира. Доступно только владельцу.
func (s *TournamentService) UploadLogo(ctx context.Context, tournamentID, actorID int, contentType string, file io.Reader) (string, error) {
	tournament, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return "", err
	}
	if !tournament.IsOwner(actorID) {
		return "", ErrForbiddenOperation
	}
	if s.uploader == nil {
		return "", errors.New("file uploads are not configured")
	}

	key := fmt.Sprintf("logos/tournament_%d", tournamentID)
	uploaded, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return "", fmt.Errorf("failed to upload logo: %w", err)
	}
	if err := s.tournamentRepo.UpdateLogoKey(ctx, tournamentID, &uploaded.Key); err != nil {
		return "", fmt.Errorf("failed to store logo key: %w", err)
	}
	return uploaded.Location, nil
}

func (s *TournamentService) loadTournament(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament: %w", err)
	}
	return tournament, nil
}

func (s *TournamentService) loadParticipantResults(ctx context.Context, t *models.Tournament) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := range t.Participants {
		i := i
		g.Go(func() error {
			results, err := s.resultRepo.ListByUser(gctx, t.Participants[i].ID)
			if err != nil {
				return fmt.Errorf("failed to load results for user %d: %w", t.Participants[i].ID, err)
			}
			t.Participants[i].Results = results
			return nil
		})
	}
	return g.Wait()
}

func (s *TournamentService) broadcastLeaderboard(ctx context.Context, tournamentID int, now time.Time) {
	if s.hub == nil {
		return
	}
	tournament, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		s.logger.Error("failed to load tournament for broadcast",
			slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return
	}
	if err := s.loadParticipantResults(ctx, tournament); err != nil {
		s.logger.Error("failed to load results for broadcast",
			slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return
	}

	s.hub.BroadcastToRoom(fmt.Sprintf("tournament_%d", tournamentID), LeaderboardUpdate{
		Type:         "LEADERBOARD_UPDATED",
		TournamentID: tournamentID,
		At:           scoring.Day(now).Format("2006-01-02"),
		Leaderboard:  scoring.LeaderboardAt(tournament, now),
	})
}

func (s *TournamentService) fillLogoURL(t *models.Tournament) {
	if s.uploader != nil && t.LogoKey != nil {
		url := s.uploader.GetPublicURL(*t.LogoKey)
		t.LogoURL = &url
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/wordlehub/wordle-tournaments/models"
	"github.com/wordlehub/wordle-tournaments/repositories"
	"github.com/wordlehub/wordle-tournaments/scoring"
	"github.com/wordlehub/wordle-tournaments/storage"
)

// UserService инкапсулирует бизнес-логику пользователей и их результатов.
type UserService struct {
	userRepo   repositories.UserRepository
	resultRepo repositories.ResultRepository
	uploader   storage.FileUploader
}

func NewUserService(
	userRepo repositories.UserRepository,
	resultRepo repositories.ResultRepository,
	uploader storage.FileUploader,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		resultRepo: resultRepo,
		uploader:   uploader,
	}
}

type SubmitResultInput struct {
	Attempts int    `json:"attempts"`
	Language string `json:"language"`
	Date     string `json:"date"` // YYYY-MM-DD; пусто — сегодняшний день
}

// GetByID возвращает пользователя вместе с историей его результатов.
func (s *UserService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.PasswordHash = ""

	if user.Results, err = s.resultRepo.ListByUser(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to load user results: %w", err)
	}
	s.fillAvatarURL(user)
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
		s.fillAvatarURL(&users[i])
	}
	return users, nil
}

// Delete удаляет учётную запись. Удалить можно только самого себя.
func (s *UserService) Delete(ctx context.Context, id, actorID int) error {
	if id != actorID {
		return ErrForbiddenOperation
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// SubmitResult записывает сыгранный результат. Результаты неизменяемы:
// повторная отправка за тот же день и язык добавляет новую строку, дубликаты
// разрешает движок подсчёта (берёт наименьшее число попыток).
func (s *UserService) SubmitResult(ctx context.Context, userID, actorID int, input SubmitResultInput) (*models.Result, error) {
	if userID != actorID {
		return nil, ErrForbiddenOperation
	}
	if input.Attempts < 0 {
		return nil, ErrResultNegativeAttempts
	}

	lang, err := models.ParseLanguage(input.Language)
	if err != nil {
		return nil, ErrResultInvalidLanguage
	}

	day := scoring.Day(time.Now().UTC())
	if input.Date != "" {
		parsed, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidationFailed)
		}
		day = scoring.Day(parsed)
	}

	result := &models.Result{
		UserID:   userID,
		Attempts: input.Attempts,
		Language: lang,
		Date:     day,
	}
	if err := s.resultRepo.Create(ctx, result); err != nil {
		if errors.Is(err, repositories.ErrResultUserInvalid) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to store result: %w", err)
	}
	return result, nil
}

func (s *UserService) ListResults(ctx context.Context, userID int) ([]models.Result, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	return s.resultRepo.ListByUser(ctx, userID)
}

// UploadAvatar сохраняет аватар в объектное хранилище и запоминает ключ.
func (s *UserService) UploadAvatar(ctx context.Context, userID, actorID int, contentType string, file io.Reader) (string, error) {
	if userID != actorID {
		return "", ErrForbiddenOperation
	}
	if s.uploader == nil {
		return "", errors.New("file uploads are not configured")
	}

	key := fmt.Sprintf("avatars/user_%d", userID)
	uploaded, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.userRepo.UpdateAvatarKey(ctx, userID, &uploaded.Key); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to store avatar key: %w", err)
	}
	return uploaded.Location, nil
}

func (s *UserService) fillAvatarURL(u *models.User) {
	if s.uploader != nil && u.AvatarKey != nil {
		url := s.uploader.GetPublicURL(*u.AvatarKey)
		u.AvatarURL = &url
	}
}

package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed            = errors.New("validation failed")
	ErrPasswordTooShort            = errors.New("password is too short")
	ErrUsernameRequired            = errors.New("username is required")
	ErrTournamentNameRequired      = errors.New("tournament name is required")
	ErrTournamentInvalidDateRange  = errors.New("tournament end date must not be before start date")
	ErrTournamentNoLanguages       = errors.New("tournament must include at least one language")
	ErrTournamentInvalidLanguage   = errors.New("tournament includes an unknown language")
	ErrTournamentInvalidVisibility = errors.New("invalid tournament visibility provided")
	ErrResultNegativeAttempts      = errors.New("result attempts must not be negative")
	ErrResultInvalidLanguage       = errors.New("result language is unknown")

	// Отказы авторизации — штатные исходы политик, а не сбои. Текст причины
	// уходит клиенту дословно вместе с 403.
	ErrTournamentAlreadyStarted      = errors.New("participants cannot be added once the tournament has started or finished")
	ErrPrivateTournamentAddForbidden = errors.New("a non-owner cannot add anyone to a private tournament")
	ErrPublicTournamentAddForbidden  = errors.New("a non-owner may only add themselves to a public tournament")
	ErrTournamentViewForbidden       = errors.New("actor lacks permission to view this tournament")
	ErrForbiddenOperation            = errors.New("operation not allowed for the current user")

	// Ошибки аутентификации
	ErrAuthInvalidCredentials = errors.New("invalid username or password")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound       = errors.New("user not found")
	ErrTournamentNotFound = errors.New("tournament not found")
)

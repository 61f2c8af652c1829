package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wordlehub/wordle-tournaments/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var (
	startDate = date(2016, time.June, 10)
	endDate   = date(2016, time.June, 12)
)

func tournamentBetween(start, end time.Time, langs ...models.Language) *models.Tournament {
	if len(langs) == 0 {
		langs = []models.Language{models.LanguageES}
	}
	return &models.Tournament{
		ID:         1,
		Name:       "Luchemos por la vida",
		StartDate:  start,
		EndDate:    end,
		Visibility: models.VisibilityPublic,
		Languages:  langs,
		OwnerID:    1,
	}
}

func userWithResults(id int, name string, results ...models.Result) models.User {
	return models.User{ID: id, Username: name, Results: results}
}

func felipe() models.User {
	return userWithResults(2, "felipe",
		models.Result{Attempts: 2, Language: models.LanguageES, Date: startDate},
		models.Result{Attempts: 3, Language: models.LanguageES, Date: startDate.AddDate(0, 0, 1)},
	)
}

func TestStatusAt(t *testing.T) {
	trn := tournamentBetween(startDate, endDate)

	tests := []struct {
		name string
		date time.Time
		want models.TournamentStatus
	}{
		{"before start", startDate.AddDate(0, 0, -1), models.StatusNotStarted},
		{"at start", startDate, models.StatusStarted},
		{"mid window", startDate.AddDate(0, 0, 1), models.StatusStarted},
		{"at end", endDate, models.StatusStarted},
		{"after end", endDate.AddDate(0, 0, 1), models.StatusFinished},
		{"long after end", endDate.AddDate(1, 0, 0), models.StatusFinished},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusAt(trn, tt.date))
		})
	}
}

func TestStatusAtIgnoresTimeOfDay(t *testing.T) {
	trn := tournamentBetween(startDate, endDate)
	lateOnEndDate := time.Date(2016, time.June, 12, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, models.StatusStarted, StatusAt(trn, lateOnEndDate))
}

func TestPlayedDaysAt(t *testing.T) {
	trn := tournamentBetween(startDate, endDate)

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"two days before start", startDate.AddDate(0, 0, -2), 0},
		{"day before start", startDate.AddDate(0, 0, -1), 0},
		{"at start, day in progress", startDate, 0},
		{"one full day elapsed", startDate.AddDate(0, 0, 1), 1},
		{"two full days elapsed", startDate.AddDate(0, 0, 2), 2},
		{"at end date", endDate, 2},
		{"day after end", endDate.AddDate(0, 0, 1), 3},
		{"well past end stays constant", endDate.AddDate(0, 0, 30), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlayedDaysAt(trn, tt.date))
		})
	}
}

func TestScoreAtUserPlaysAllElapsedDays(t *testing.T) {
	trn := tournamentBetween(startDate, endDate)
	user := felipe()

	// Two elapsed days, both played: 2 + 3.
	assert.Equal(t, 5, ScoreAt(&user, trn, endDate))
}

func TestScoreAtIgnoresResultsOfExcludedLanguages(t *testing.T) {
	trn := tournamentBetween(startDate, endDate)
	user := felipe()
	user.Results = append(user.Results,
		models.Result{Attempts: 3, Language: models.LanguageEN, Date: startDate})

	assert.Equal(t, 5, ScoreAt(&user, trn, endDate))
}

func TestScoreAtIgnoresResultsOutOfTournamentWindow(t *testing.T) {
	trn := tournamentBetween(startDate, endDate)
	user := felipe()
	user.Results = append(user.Results,
		models.Result{Attempts: 1, Language: models.LanguageES, Date: startDate.AddDate(0, 0, -1)},
		models.Result{Attempts: 0, Language: models.LanguageES, Date: endDate.AddDate(0, 0, 1)},
	)

	assert.Equal(t, 5, ScoreAt(&user, trn, endDate))
}

func TestScoreAtPenalizesDaysNotPlayed(t *testing.T) {
	extendedEnd := endDate.AddDate(0, 0, 2)
	trn := tournamentBetween(startDate, extendedEnd)
	user := felipe()

	// Four elapsed days: 2 + 3 + 7 + 7.
	assert.Equal(t, 19, ScoreAt(&user, trn, extendedEnd))
}

func TestScoreAtChargesEveryLanguageSeparately(t *testing.T) {
	trn := tournamentBetween(startDate, endDate, models.LanguageES, models.LanguageEN)
	user := felipe()

	// ES played both days, EN never: 2 + 3 + 7 + 7.
	assert.Equal(t, 19, ScoreAt(&user, trn, endDate))
}

func TestScoreAtUserPlaysEveryDayAndIsNotPenalized(t *testing.T) {
	trn := tournamentBetween(startDate, endDate)
	user := felipe()
	user.Results = append(user.Results,
		models.Result{Attempts: 1, Language: models.LanguageES, Date: endDate})

	assert.Equal(t, 6, ScoreAt(&user, trn, endDate.AddDate(0, 0, 2)))
}

func TestScoreAtPenaltyTableForUserWithoutResults(t *testing.T) {
	carlitos := userWithResults(3, "carlitos")

	t.Run("single language", func(t *testing.T) {
		trn := tournamentBetween(startDate, endDate)
		assert.Equal(t, 0, ScoreAt(&carlitos, trn, startDate.AddDate(0, 0, -1)))
		assert.Equal(t, 0, ScoreAt(&carlitos, trn, startDate))
		assert.Equal(t, 7, ScoreAt(&carlitos, trn, startDate.AddDate(0, 0, 1)))
		assert.Equal(t, 14, ScoreAt(&carlitos, trn, endDate))
		assert.Equal(t, 21, ScoreAt(&carlitos, trn, endDate.AddDate(0, 0, 1)))
		assert.Equal(t, 21, ScoreAt(&carlitos, trn, endDate.AddDate(0, 0, 2)))
	})

	t.Run("two languages", func(t *testing.T) {
		trn := tournamentBetween(startDate, endDate, models.LanguageES, models.LanguageEN)
		assert.Equal(t, 0, ScoreAt(&carlitos, trn, startDate))
		assert.Equal(t, 14, ScoreAt(&carlitos, trn, startDate.AddDate(0, 0, 1)))
		assert.Equal(t, 28, ScoreAt(&carlitos, trn, endDate))
		assert.Equal(t, 42, ScoreAt(&carlitos, trn, endDate.AddDate(0, 0, 1)))
		assert.Equal(t, 42, ScoreAt(&carlitos, trn, endDate.AddDate(0, 0, 2)))
	})
}

func TestScoreAtDuplicateResultsCountsLowest(t *testing.T) {
	trn := tournamentBetween(startDate, endDate)
	user := userWithResults(4, "doble",
		models.Result{Attempts: 6, Language: models.LanguageES, Date: startDate},
		models.Result{Attempts: 2, Language: models.LanguageES, Date: startDate},
		models.Result{Attempts: 4, Language: models.LanguageES, Date: startDate},
	)

	// Day one counts the lowest duplicate (2), day two is a miss (7).
	assert.Equal(t, 9, ScoreAt(&user, trn, endDate))
}

func TestScoreAtIsMonotonicInDate(t *testing.T) {
	trn := tournamentBetween(startDate, endDate, models.LanguageES, models.LanguageEN)
	user := felipe()

	prev := 0
	for d := -2; d <= 6; d++ {
		score := ScoreAt(&user, trn, startDate.AddDate(0, 0, d))
		assert.GreaterOrEqual(t, score, prev, "score must never decrease as the reference date advances")
		prev = score
	}
}

func TestLeaderboardAtSortsAscendingByTotalAttempts(t *testing.T) {
	trn := tournamentBetween(startDate, endDate)
	owner := userWithResults(1, "owner") // no results: 14 at endDate
	player := felipe()                   // 5 at endDate
	trn.Participants = []models.User{owner, player}

	boards := LeaderboardAt(trn, endDate)

	assert.Len(t, boards, 2)
	assert.Equal(t, "felipe", boards[0].Username)
	assert.Equal(t, 5, boards[0].TotalAttempts)
	assert.Equal(t, "owner", boards[1].Username)
	assert.Equal(t, 14, boards[1].TotalAttempts)
}

func TestLeaderboardAtStableTieOrder(t *testing.T) {
	trn := tournamentBetween(startDate, endDate)
	// Neither participant ever plays, so both accrue identical penalties.
	trn.Participants = []models.User{
		userWithResults(1, "owner"),
		userWithResults(2, "early-joiner"),
		userWithResults(3, "late-joiner"),
	}

	boards := LeaderboardAt(trn, endDate.AddDate(0, 0, 5))

	assert.Equal(t, []string{"owner", "early-joiner", "late-joiner"},
		[]string{boards[0].Username, boards[1].Username, boards[2].Username},
		"equal scores keep join order")
	for _, b := range boards {
		assert.Equal(t, 21, b.TotalAttempts)
	}
}

func TestLeaderboardAtBeforeStartIsAllZeros(t *testing.T) {
	trn := tournamentBetween(startDate, endDate)
	trn.Participants = []models.User{felipe()}

	boards := LeaderboardAt(trn, startDate.AddDate(0, 0, -1))

	assert.Len(t, boards, 1)
	assert.Zero(t, boards[0].TotalAttempts)
}

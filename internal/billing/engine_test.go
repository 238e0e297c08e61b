package billing

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Vextroyer/mange/internal/database"
	"github.com/Vextroyer/mange/internal/models"
	"github.com/Vextroyer/mange/internal/repository"
)

func newTestEngine(t *testing.T) (*Engine, *repository.Client) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	repo := repository.New(db, zerolog.Nop())
	return NewEngine(repo), repo
}

func createCompany(t *testing.T, repo *repository.Client, company models.Company) *models.Company {
	t.Helper()
	require.NoError(t, repo.CreateCompany(&company))
	return &company
}

func day(d int) time.Time {
	return time.Date(2000, 10, d, 0, 0, 0, 0, time.UTC)
}

func TestCharge(t *testing.T) {
	cases := []struct {
		name    string
		company models.Company
		want    int64
	}{
		{"no consumption", models.Company{LastReading: 100, Reading: 100, ExtraPercent: 15, Extra: 20}, 20},
		{"plain delta", models.Company{LastReading: 0, Reading: 100, ExtraPercent: 15, Extra: 20}, 135},
		{"floors the percentage term", models.Company{LastReading: 0, Reading: 3, ExtraPercent: 15, Extra: 20}, 23},
		{"custom surcharges", models.Company{LastReading: 50, Reading: 150, ExtraPercent: 50, Extra: 0}, 150},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Charge(&tc.company))
		})
	}
}

func TestCharge_AtLeastExtra(t *testing.T) {
	// With a non-negative delta the percentage term is non-negative, so the
	// charge never drops below the flat surcharge.
	for delta := int64(0); delta < 500; delta += 7 {
		c := models.Company{LastReading: 1000, Reading: 1000 + delta, ExtraPercent: 15, Extra: 20}
		assert.GreaterOrEqual(t, Charge(&c), c.Extra)
	}
}

func TestOverLimit(t *testing.T) {
	cases := []struct {
		reading, limit, want int64
	}{
		{0, 100, 0},
		{100, 100, 0},
		{150, 100, 50},
		{99, 100, 0},
	}
	for _, tc := range cases {
		c := models.Company{Reading: tc.reading, Limit: tc.limit}
		assert.Equal(t, tc.want, OverLimit(&c))
	}
}

func TestLiquidateBill(t *testing.T) {
	engine, repo := newTestEngine(t)
	company := createCompany(t, repo, models.Company{Name: "blobcorp", LastReading: 0, Reading: 0, Limit: 100})

	require.NoError(t, repo.Update(company, map[string]any{"reading": int64(50)}))
	company.Reading = 50

	bill, err := engine.LiquidateBill(company, day(1))
	require.NoError(t, err)
	assert.EqualValues(t, 0, bill.OverLimit)
	assert.EqualValues(t, 50, bill.Reading)
	assert.Equal(t, company.Reading, company.LastReading)

	stored, err := repository.Find[models.Company](repo, repository.Filter{"id": company.ID}).One()
	require.NoError(t, err)
	assert.EqualValues(t, 50, stored.LastReading)

	require.NoError(t, repo.Update(company, map[string]any{"reading": int64(150)}))
	company.Reading = 150

	bill, err = engine.LiquidateBill(company, day(2))
	require.NoError(t, err)
	assert.EqualValues(t, 50, bill.OverLimit)

	bills, err := repository.Find[models.Bill](repo, repository.Filter{"company_id": company.ID}).All()
	require.NoError(t, err)
	assert.Len(t, bills, 2)
}

func TestLiquidateBill_SameDayDuplicate(t *testing.T) {
	engine, repo := newTestEngine(t)
	company := createCompany(t, repo, models.Company{Name: "blobcorp", Limit: 9999})

	liquidateAt(t, engine, repo, company, 100, day(1))

	require.NoError(t, repo.Update(company, map[string]any{"reading": int64(150)}))
	company.Reading = 150
	_, err := engine.LiquidateBill(company, day(1))
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	// The rejected liquidation left nothing behind; consumption anchored on
	// day 1 keeps working.
	liquidateAt(t, engine, repo, company, 150, day(15))
	total, err := engine.TotalConsumption(company, day(1), day(15))
	require.NoError(t, err)
	assert.EqualValues(t, 50, total)
}

func TestLiquidateBill_UsesStoredReading(t *testing.T) {
	engine, repo := newTestEngine(t)
	company := createCompany(t, repo, models.Company{Name: "blobcorp", Limit: 9999})

	// Another handler advanced the meter after this snapshot was taken.
	stale := *company
	require.NoError(t, repo.Update(company, map[string]any{"reading": int64(80)}))

	bill, err := engine.LiquidateBill(&stale, day(1))
	require.NoError(t, err)
	assert.EqualValues(t, 80, bill.Reading)
	assert.EqualValues(t, 80, stale.LastReading)
}

func TestLiquidateBill_RejectsRollback(t *testing.T) {
	engine, repo := newTestEngine(t)
	company := createCompany(t, repo, models.Company{Name: "blobcorp", LastReading: 100, Reading: 50, Limit: 100})

	_, err := engine.LiquidateBill(company, time.Time{})
	assert.ErrorIs(t, err, ErrMeterRollback)

	// Nothing was written.
	bills, err := repository.Find[models.Bill](repo, nil).All()
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func liquidateAt(t *testing.T, engine *Engine, repo *repository.Client, company *models.Company, reading int64, date time.Time) *models.Bill {
	t.Helper()
	require.NoError(t, repo.Update(company, map[string]any{"reading": reading}))
	company.Reading = reading
	bill, err := engine.LiquidateBill(company, date)
	require.NoError(t, err)
	return bill
}

func TestTotalConsumption(t *testing.T) {
	engine, repo := newTestEngine(t)
	company := createCompany(t, repo, models.Company{Name: "blobcorp", LastReading: 0, Reading: 100, Limit: 9999})

	liquidateAt(t, engine, repo, company, 150, day(1))
	liquidateAt(t, engine, repo, company, 300, day(2))
	liquidateAt(t, engine, repo, company, 500, day(3))

	total, err := engine.TotalConsumption(company, day(1), day(3))
	require.NoError(t, err)
	assert.EqualValues(t, 350, total)

	// Additive over adjacent ranges.
	first, err := engine.TotalConsumption(company, day(1), day(2))
	require.NoError(t, err)
	second, err := engine.TotalConsumption(company, day(2), day(3))
	require.NoError(t, err)
	assert.Equal(t, total, first+second)
}

func TestTotalConsumption_MissingBill(t *testing.T) {
	engine, repo := newTestEngine(t)
	company := createCompany(t, repo, models.Company{Name: "blobcorp", Limit: 9999})

	liquidateAt(t, engine, repo, company, 100, day(1))

	// Exact-date match only, no interpolation.
	_, err := engine.TotalConsumption(company, day(1), day(9))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAverageConsumption(t *testing.T) {
	engine, repo := newTestEngine(t)
	company := createCompany(t, repo, models.Company{Name: "blobcorp", Limit: 9999})

	start := day(1)
	end := start.AddDate(0, 0, 60)
	liquidateAt(t, engine, repo, company, 100, start)
	liquidateAt(t, engine, repo, company, 400, end)

	average, err := engine.AverageConsumption(company, start, end)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, average, 0.001)
}

func TestAverageConsumption_RangeTooShort(t *testing.T) {
	engine, repo := newTestEngine(t)
	company := createCompany(t, repo, models.Company{Name: "blobcorp", Limit: 9999})

	_, err := engine.AverageConsumption(company, day(1), day(11))
	assert.ErrorIs(t, err, ErrRangeTooShort)
	assert.ErrorIs(t, err, repository.ErrValidation)
}

func TestPredictConsumption_MatchesAverage(t *testing.T) {
	engine, repo := newTestEngine(t)
	company := createCompany(t, repo, models.Company{Name: "blobcorp", Limit: 9999})

	start := day(1)
	end := start.AddDate(0, 0, 90)
	liquidateAt(t, engine, repo, company, 100, start)
	liquidateAt(t, engine, repo, company, 700, end)

	average, err := engine.AverageConsumption(company, start, end)
	require.NoError(t, err)
	prediction, err := engine.PredictConsumption(company, start, end)
	require.NoError(t, err)
	assert.Equal(t, average, prediction)
}

func TestOverConsumption_FiltersByRangeAndLimit(t *testing.T) {
	engine, repo := newTestEngine(t)
	over := createCompany(t, repo, models.Company{Name: "over", LastReading: 0, Reading: 1, Limit: 0})
	under := createCompany(t, repo, models.Company{Name: "under", Limit: 9999})

	inRange := liquidateAt(t, engine, repo, over, 1, day(1))
	// One bill under its limit, one over but outside the range.
	liquidateAt(t, engine, repo, under, 10, day(1))
	liquidateAt(t, engine, repo, over, 2, day(20))

	bills, err := engine.OverConsumption(day(1), day(10))
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, inRange.ID, bills[0].ID)
}

func TestCompareConsumption_InclusiveRange(t *testing.T) {
	engine, repo := newTestEngine(t)
	company := createCompany(t, repo, models.Company{Name: "blobcorp", Limit: 9999})

	liquidateAt(t, engine, repo, company, 100, day(1))
	liquidateAt(t, engine, repo, company, 200, day(5))
	liquidateAt(t, engine, repo, company, 300, day(9))

	bills, err := engine.CompareConsumption(day(1), day(5))
	require.NoError(t, err)
	assert.Len(t, bills, 2)
}

func TestListAlerts_Idempotent(t *testing.T) {
	engine, repo := newTestEngine(t)
	company := createCompany(t, repo, models.Company{Name: "blobcorp", LastReading: 0, Reading: 0, Limit: 100})

	liquidateAt(t, engine, repo, company, 50, day(1))
	liquidateAt(t, engine, repo, company, 150, day(2))
	liquidateAt(t, engine, repo, company, 250, day(3))

	first, err := engine.ListAlerts(company)
	require.NoError(t, err)
	second, err := engine.ListAlerts(company)
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, first, second)
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2000, 10, 1, 17, 45, 3, 0, time.UTC)
	assert.Equal(t, day(1), DateOf(ts))
}

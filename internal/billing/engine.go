package billing

import (
	"fmt"
	"sync"
	"time"

	"github.com/Vextroyer/mange/internal/models"
	"github.com/Vextroyer/mange/internal/repository"
)

var (
	// ErrRangeTooShort is returned when a consumption span covers less than
	// one billing month, which would otherwise divide by zero.
	ErrRangeTooShort = fmt.Errorf("%w: date range covers less than one month", repository.ErrValidation)
	// ErrMeterRollback is returned when the current reading is below the last
	// billed one. Rollbacks are rejected rather than billed as negative.
	ErrMeterRollback = fmt.Errorf("%w: meter reading is below the last billed reading", repository.ErrValidation)
)

// daysPerMonth is the fixed month length used for consumption averages.
const daysPerMonth = 30

// Charge is the amount owed for the company's unbilled consumption:
// the reading delta plus the percentage surcharge, plus the flat surcharge.
// Division is floor division.
func Charge(c *models.Company) int64 {
	return floorDiv((c.Reading-c.LastReading)*(100+c.ExtraPercent), 100) + c.Extra
}

// OverLimit is the positive excess of the current reading over the limit.
func OverLimit(c *models.Company) int64 {
	return max(0, c.Reading-c.Limit)
}

// floorDiv rounds toward negative infinity. Go's / truncates toward zero,
// which differs for negative deltas.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// DateOf normalizes a timestamp to its calendar day at UTC midnight. Bill
// dates are stored and matched in this form.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Engine computes billing amounts and consumption statistics. All I/O goes
// through the repository client.
type Engine struct {
	repo *repository.Client

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewEngine(repo *repository.Client) *Engine {
	return &Engine{repo: repo, locks: make(map[uint]*sync.Mutex)}
}

// companyLock serializes liquidations of the same company.
func (e *Engine) companyLock(companyID uint) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[companyID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[companyID] = l
	}
	return l
}

// LiquidateBill closes the company's current billing period: it snapshots the
// over-limit and charge, advances last_reading to the current reading and
// records a Bill, all in one transaction. A zero date means today.
func (e *Engine) LiquidateBill(company *models.Company, date time.Time) (*models.Bill, error) {
	if company.ID == 0 {
		return nil, fmt.Errorf("%w: company is not persisted", repository.ErrValidation)
	}

	lock := e.companyLock(company.ID)
	lock.Lock()
	defer lock.Unlock()

	// The caller's snapshot may predate another liquidation; the stored row
	// read under the lock is authoritative.
	fresh, err := repository.Find[models.Company](e.repo, repository.Filter{"id": company.ID}).One()
	if err != nil {
		return nil, err
	}
	if fresh.Reading < fresh.LastReading {
		return nil, ErrMeterRollback
	}

	if date.IsZero() {
		date = time.Now()
	}

	bill := &models.Bill{
		CompanyID: fresh.ID,
		Date:      DateOf(date),
		Reading:   fresh.Reading,
		Charge:    Charge(fresh),
		OverLimit: OverLimit(fresh),
	}
	err = e.repo.Transaction(func(tx *repository.Client) error {
		if err := tx.Update(fresh, map[string]any{"last_reading": fresh.Reading}); err != nil {
			return err
		}
		return tx.CreateBill(bill)
	})
	if err != nil {
		return nil, err
	}
	*company = *fresh
	company.LastReading = company.Reading
	return bill, nil
}

// billAt fetches the company's bill on the exact date. No interpolation.
func (e *Engine) billAt(company *models.Company, date time.Time) (*models.Bill, error) {
	return repository.Find[models.Bill](e.repo, repository.Filter{
		"company_id": company.ID,
		"date":       DateOf(date),
	}).One()
}

// TotalConsumption is the reading delta between the bills liquidated exactly
// on start and end.
func (e *Engine) TotalConsumption(company *models.Company, start, end time.Time) (int64, error) {
	startBill, err := e.billAt(company, start)
	if err != nil {
		return 0, fmt.Errorf("no bill on start date: %w", err)
	}
	endBill, err := e.billAt(company, end)
	if err != nil {
		return 0, fmt.Errorf("no bill on end date: %w", err)
	}
	return endBill.Reading - startBill.Reading, nil
}

// AverageConsumption is the total consumption per 30-day month over the
// span. Spans under one month fail with ErrRangeTooShort; callers must guard
// against short ranges.
func (e *Engine) AverageConsumption(company *models.Company, start, end time.Time) (float64, error) {
	months := int64(end.Sub(start).Hours()/24) / daysPerMonth
	if months <= 0 {
		return 0, ErrRangeTooShort
	}
	total, err := e.TotalConsumption(company, start, end)
	if err != nil {
		return 0, err
	}
	return float64(total) / float64(months), nil
}

// PredictConsumption returns the historical monthly average. There is no
// forecasting model yet; this is an explicit placeholder contract.
func (e *Engine) PredictConsumption(company *models.Company, start, end time.Time) (float64, error) {
	return e.AverageConsumption(company, start, end)
}

// OverConsumption lists every bill in the inclusive date range that went over
// its company's limit.
func (e *Engine) OverConsumption(start, end time.Time) ([]models.Bill, error) {
	return repository.Find[models.Bill](e.repo, nil).
		Where("over_limit > ?", 0).
		Where("date BETWEEN ? AND ?", DateOf(start), DateOf(end)).
		Order("date").
		All()
}

// CompareConsumption lists every bill in the inclusive date range, across all
// companies.
func (e *Engine) CompareConsumption(start, end time.Time) ([]models.Bill, error) {
	return repository.Find[models.Bill](e.repo, nil).
		Where("date BETWEEN ? AND ?", DateOf(start), DateOf(end)).
		Order("date").
		All()
}

// ListAlerts lists the company's bills that went over the limit.
func (e *Engine) ListAlerts(company *models.Company) ([]models.Bill, error) {
	return repository.Find[models.Bill](e.repo, repository.Filter{"company_id": company.ID}).
		Where("over_limit > ?", 0).
		Order("date").
		All()
}

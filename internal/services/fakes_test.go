package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"dealerpos/internal/domain"
	"dealerpos/internal/domain/models"
	"dealerpos/internal/repositories"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testReference() models.ReferenceData {
	bom := models.BOMRow{Model: "Splendor"}
	bom.Slots[0] = models.AccessorySlot{Name: "Floor Mat", Price: dec("1000")}
	bom.Slots[1] = models.AccessorySlot{Name: "Guard", Price: dec("500")}
	bom.Slots[4] = models.AccessorySlot{Name: "Helmet", Price: dec("1500")}
	return models.ReferenceData{
		Staff:      []string{"Anand"},
		Executives: []string{"Meena"},
		Financiers: []string{"Bank", "Shriram", "Bajaj"},
		IncentiveRules: map[string]domain.IncentiveRule{
			"Shriram": {Kind: domain.IncentivePercentageDD, Value: dec("0.02")},
			"Bajaj":   {Kind: domain.IncentiveFixedFile, Value: dec("1500")},
		},
		Vehicles: []models.Vehicle{models.NewVehicle("Splendor", "Disc", dec("450000"), dec("510000"))},
		Colors:   map[string][]string{"Splendor": {"Black", "Red"}},
		BOM:      map[string]models.BOMRow{"Splendor": bom},
		Firms: map[int]models.Firm{
			1: {ID: 1, Name: "Sai Motors", Address: "Main Road", GSTIN: "33AAA"},
			2: {ID: 2, Name: "Sai Accessories"},
		},
	}
}

type fakeReference struct {
	ref models.ReferenceData
	err error
}

func (f fakeReference) Get(context.Context) (models.ReferenceData, error) {
	return f.ref, f.err
}

type fakeSequences struct {
	mu    sync.Mutex
	last  map[string]int64
	calls []string
	err   error
}

func (f *fakeSequences) Next(_ context.Context, s repositories.Series) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, s.Name)
	if f.err != nil {
		return 0, f.err
	}
	if f.last == nil {
		f.last = map[string]int64{}
	}
	n := f.last[s.Name]
	if n < s.Floor {
		n = s.Floor
	}
	n++
	f.last[s.Name] = n
	return n, nil
}

type fakeLedger struct {
	records []models.LedgerRecord
	err     error
}

func (f *fakeLedger) Append(_ context.Context, rec models.LedgerRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeLedger) ListRecent(_ context.Context, limit int) ([]models.LedgerRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && limit < len(f.records) {
		return f.records[:limit], nil
	}
	return f.records, nil
}

type failingRenderer struct{}

func (failingRenderer) RenderChallan(*models.Order, time.Time) ([]byte, string, error) {
	return nil, "", errors.New("font missing")
}

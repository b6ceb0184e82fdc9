package grocy

import (
	"context"

	"github.com/five82/pantry/api"
	"github.com/five82/pantry/parse"
)

// BatteryFetcher loads the details of one battery. *api.Client satisfies it.
type BatteryFetcher interface {
	BatteryDetails(ctx context.Context, batteryID int) (*api.BatteryDetailsResponse, error)
}

var _ BatteryFetcher = (*api.Client)(nil)

// Battery is a tracked rechargeable battery.
type Battery struct {
	id                      int
	lastTrackedTime         *parse.Time
	nextEstimatedChargeTime *parse.Time

	detailed           bool
	name               string
	description        string
	usedIn             string
	chargeIntervalDays *int
	createdTimestamp   *parse.Time
	chargeCyclesCount  *int
	lastCharged        *parse.Time
	userfields         map[string]any
}

// BatteryFromCurrent builds a summary battery from a batteries list entry.
func BatteryFromCurrent(entry *api.CurrentBatteryResponse) (*Battery, error) {
	if entry == nil {
		return nil, &ShapeError{Model: "battery", Shape: "nil current battery entry"}
	}
	return &Battery{
		id:                      entry.ID,
		lastTrackedTime:         entry.LastTrackedTime,
		nextEstimatedChargeTime: entry.NextEstimatedChargeTime,
	}, nil
}

// BatteryFromDetails builds a detailed battery.
func BatteryFromDetails(details *api.BatteryDetailsResponse) (*Battery, error) {
	if details == nil {
		return nil, &ShapeError{Model: "battery", Shape: "nil battery details"}
	}
	b := &Battery{}
	b.applyDetails(details)
	return b, nil
}

func (b *Battery) applyDetails(details *api.BatteryDetailsResponse) {
	data := details.Battery
	b.detailed = true
	b.id = data.ID
	b.name = data.Name
	b.description = data.Description
	b.usedIn = data.UsedIn
	b.chargeIntervalDays = data.ChargeIntervalDays
	b.createdTimestamp = data.RowCreatedTimestamp
	b.userfields = data.Userfields
	b.chargeCyclesCount = details.ChargeCyclesCount
	b.lastCharged = details.LastCharged
	b.lastTrackedTime = details.LastTrackedTime
	b.nextEstimatedChargeTime = details.NextEstimatedChargeTime
}

// FetchDetails replaces b's fields with the battery's current details.
// Every call goes to the server. An empty response leaves b unchanged.
func (b *Battery) FetchDetails(ctx context.Context, fetcher BatteryFetcher) error {
	details, err := fetcher.BatteryDetails(ctx, b.id)
	if err != nil {
		return err
	}
	if details != nil {
		b.applyDetails(details)
	}
	return nil
}

// Detailed reports whether details have been loaded.
func (b *Battery) Detailed() bool { return b.detailed }

func (b *Battery) ID() int { return b.id }
func (b *Battery) Name() string { return b.name }
func (b *Battery) Description() string { return b.description }
func (b *Battery) UsedIn() string { return b.usedIn }
func (b *Battery) ChargeIntervalDays() *int { return b.chargeIntervalDays }
func (b *Battery) CreatedTimestamp() *parse.Time { return b.createdTimestamp }
func (b *Battery) ChargeCyclesCount() *int { return b.chargeCyclesCount }
func (b *Battery) LastCharged() *parse.Time { return b.lastCharged }
func (b *Battery) LastTrackedTime() *parse.Time { return b.lastTrackedTime }
func (b *Battery) NextEstimatedChargeTime() *parse.Time { return b.nextEstimatedChargeTime }
func (b *Battery) Userfields() map[string]any { return b.userfields }

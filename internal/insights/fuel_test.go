package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2025, 3, n, 12, 0, 0, 0, time.UTC)
}

func fptr(v float64) *float64 { return &v }

func TestEnrichFuelEntriesMPG(t *testing.T) {
	// 最新在前：d2 加了 10 加仑跑了 300 英里
	entries := []Fill{
		{Date: day(2), Odometer: 12400, Gallons: 10},
		{Date: day(1), Odometer: 12100, Gallons: 9},
	}

	derived := EnrichFuelEntries(entries)
	require.Len(t, derived, 2)

	require.NotNil(t, derived[0].MPG)
	assert.Equal(t, 30.0, *derived[0].MPG)
	assert.Nil(t, derived[0].CostPerGallon)

	// 最旧的一条没有前次加油
	assert.Nil(t, derived[1].MPG)
}

func TestEnrichFuelEntriesCostPerGallon(t *testing.T) {
	entries := []Fill{
		{Date: day(3), Odometer: 500, Gallons: 10, TotalCost: fptr(35.00)},
		{Date: day(2), Odometer: 300, Gallons: 10, TotalCost: fptr(0)},
		{Date: day(1), Odometer: 100, Gallons: 10},
	}

	derived := EnrichFuelEntries(entries)
	require.Len(t, derived, 3)

	require.NotNil(t, derived[0].CostPerGallon)
	assert.Equal(t, 3.50, *derived[0].CostPerGallon)
	assert.Nil(t, derived[1].CostPerGallon, "zero cost yields no cost per gallon")
	assert.Nil(t, derived[2].CostPerGallon, "absent cost yields no cost per gallon")
}

func TestEnrichFuelEntriesRounding(t *testing.T) {
	entries := []Fill{
		{Date: day(2), Odometer: 1100, Gallons: 3, TotalCost: fptr(10.00)},
		{Date: day(1), Odometer: 1000, Gallons: 3},
	}

	derived := EnrichFuelEntries(entries)

	// 100/3 = 33.333... -> 33.3；10/3 = 3.333... -> 3.33
	require.NotNil(t, derived[0].MPG)
	assert.Equal(t, 33.3, *derived[0].MPG)
	require.NotNil(t, derived[0].CostPerGallon)
	assert.Equal(t, 3.33, *derived[0].CostPerGallon)
}

func TestEnrichFuelEntriesNonMonotonicOdometer(t *testing.T) {
	// 倒填历史：较新的一条里程反而更低
	entries := []Fill{
		{Date: day(2), Odometer: 100, Gallons: 5},
		{Date: day(1), Odometer: 150, Gallons: 5},
	}

	derived := EnrichFuelEntries(entries)
	assert.Nil(t, derived[0].MPG, "negative mile delta must not produce an MPG")

	// 里程差为零同样不产生 MPG
	entries[0].Odometer = 150
	derived = EnrichFuelEntries(entries)
	assert.Nil(t, derived[0].MPG)
}

func TestEnrichFuelEntriesDegenerateInput(t *testing.T) {
	assert.Empty(t, EnrichFuelEntries(nil))

	derived := EnrichFuelEntries([]Fill{{Date: day(1), Odometer: 100, Gallons: 10}})
	require.Len(t, derived, 1)
	assert.Nil(t, derived[0].MPG)
}

func TestEnrichFuelEntriesIdempotent(t *testing.T) {
	entries := []Fill{
		{Date: day(3), Odometer: 900, Gallons: 8, TotalCost: fptr(30)},
		{Date: day(2), Odometer: 600, Gallons: 9},
		{Date: day(1), Odometer: 300, Gallons: 10, TotalCost: fptr(28.5)},
	}

	first := EnrichFuelEntries(entries)
	second := EnrichFuelEntries(entries)
	assert.Equal(t, first, second)
}

func TestAverageMPG(t *testing.T) {
	assert.Equal(t, 0.0, AverageMPG(nil))
	assert.Equal(t, 0.0, AverageMPG([]FillDerived{{}, {}}), "all-nil entries average to zero")

	derived := []FillDerived{
		{MPG: fptr(30.0)},
		{MPG: fptr(20.0)},
		{},
	}
	assert.Equal(t, 25.0, AverageMPG(derived))
}

func TestMilesPerTank(t *testing.T) {
	assert.Equal(t, "No fuel entries yet", MilesPerTank(nil))
	assert.Equal(t, "Not enough data to calculate miles per tank", MilesPerTank([]int{500}))

	// 乱序输入先排序再取相邻差的均值
	assert.Equal(t, "300.0 miles per fillup", MilesPerTank([]int{700, 100, 400}))
	assert.Equal(t, "150.5 miles per fillup", MilesPerTank([]int{100, 250, 401}))
}

func TestMilesPerTankDoesNotMutateInput(t *testing.T) {
	odometers := []int{700, 100, 400}
	MilesPerTank(odometers)
	assert.Equal(t, []int{700, 100, 400}, odometers)
}

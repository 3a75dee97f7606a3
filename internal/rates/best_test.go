package rates

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBestRatesKeepsMinimumPerKey(t *testing.T) {
	in := []RoomRate{
		{RoomType: "Suite", Policy: "Refundable", Total: 500},
		{RoomType: "Suite", Policy: "Refundable", Total: 450},
		{RoomType: "Suite", Policy: "Refundable", Total: 480},
	}
	out := BestRates(in)
	require.Len(t, out, 1)
	require.Equal(t, 450.0, out[0].Total)
}

func TestBestRatesDistinctPoliciesKept(t *testing.T) {
	in := []RoomRate{
		{RoomType: "Suite", Policy: "Refundable", Total: 500},
		{RoomType: "Suite", Policy: "Unknown", Total: 480},
	}
	out := BestRates(in)
	require.Len(t, out, 2)
}

func TestBestRatesDedupInvariant(t *testing.T) {
	in := []RoomRate{
		{RoomType: "Suite", Policy: "Refundable", Total: 300},
		{RoomType: "Twin", Policy: "Refundable", Total: 200},
		{RoomType: "Suite", Policy: "Refundable", Total: 250},
		{RoomType: "Twin", Policy: "Non-refundable", Total: 180},
		{RoomType: "Twin", Policy: "Refundable", Total: 220},
	}
	out := BestRates(in)

	seen := make(map[rateKey]bool)
	for _, r := range out {
		k := rateKey{r.RoomType, r.Policy}
		if seen[k] {
			t.Fatalf("duplicate (room_type, policy) key in output: %+v", k)
		}
		seen[k] = true
	}
	require.Len(t, out, 3)
}

func TestBestRatesSortedAscendingByTotal(t *testing.T) {
	in := []RoomRate{
		{RoomType: "A", Policy: "P", Total: 900},
		{RoomType: "B", Policy: "P", Total: 100},
		{RoomType: "C", Policy: "P", Total: 500},
	}
	out := BestRates(in)
	if !sort.SliceIsSorted(out, func(i, j int) bool { return out[i].Total < out[j].Total }) {
		t.Fatalf("output not sorted by total: %+v", out)
	}
}

func TestBestRatesTiesKeepInsertionOrder(t *testing.T) {
	in := []RoomRate{
		{RoomType: "First", Policy: "P", Total: 100},
		{RoomType: "Second", Policy: "P", Total: 100},
	}
	out := BestRates(in)
	require.Len(t, out, 2)
	require.Equal(t, "First", out[0].RoomType)
	require.Equal(t, "Second", out[1].RoomType)
}

func TestBestRatesEqualTotalDoesNotReplace(t *testing.T) {
	first := RoomRate{Provider: ProviderBooking, RoomType: "Suite", Policy: "P", Total: 100}
	second := RoomRate{Provider: ProviderHotels, RoomType: "Suite", Policy: "P", Total: 100}
	out := BestRates([]RoomRate{first, second})
	require.Len(t, out, 1)
	require.Equal(t, ProviderBooking, out[0].Provider)
}

func TestBestRatesEmptyInput(t *testing.T) {
	require.Empty(t, BestRates(nil))
}

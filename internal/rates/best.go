package rates

import "sort"

type rateKey struct {
	roomType string
	policy   string
}

// BestRates collapses rates to the cheapest offer per (room type, policy)
// pair and returns them sorted ascending by total. A stored rate is only
// replaced when a later one is strictly cheaper, and ties in the final sort
// keep first-seen order.
func BestRates(in []RoomRate) []RoomRate {
	best := make(map[rateKey]RoomRate, len(in))
	order := make([]rateKey, 0, len(in))

	for _, r := range in {
		k := rateKey{roomType: r.RoomType, policy: r.Policy}
		cur, ok := best[k]
		if !ok {
			best[k] = r
			order = append(order, k)
			continue
		}
		if r.Total < cur.Total {
			best[k] = r
		}
	}

	out := make([]RoomRate, 0, len(order))
	for _, k := range order {
		out = append(out, best[k])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total < out[j].Total })
	return out
}

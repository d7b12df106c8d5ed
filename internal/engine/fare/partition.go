package fare

import "go.trai.ch/railfare/internal/core/domain"

// PartitionWaypoints splits the stops strictly between origin and destination
// into k contiguous groups of nearly equal count, the remainder going to the
// earliest groups, and returns the first station of every group after the
// first. k of at least len(between)+1 selects every intermediate stop; k below
// two or an empty range selects none.
func PartitionWaypoints(between []domain.StopInfo, k int) []string {
	n := len(between)
	if n == 0 || k < 2 {
		return nil
	}
	if k >= n+1 {
		names := make([]string, 0, n)
		for _, s := range between {
			names = append(names, s.StationName)
		}
		return names
	}
	if k > n {
		k = n
	}

	size, extra := n/k, n%k
	names := make([]string, 0, k-1)
	idx := 0
	for g := range k - 1 {
		idx += size
		if g < extra {
			idx++
		}
		names = append(names, between[idx].StationName)
	}
	return names
}

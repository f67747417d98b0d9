package mapslicehelp

import (
	"github.com/umpc/go-sortedmap"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/exp/constraints"
)

// FindFirstKeyWithMinValue returns the oldest key holding the minimum value and how many keys hold it
func FindFirstKeyWithMinValue[K comparable, V constraints.Ordered](m *orderedmap.OrderedMap[K, V]) (minK K, minV V, numWinners uint) {
	first := true
	for p := m.Oldest(); p != nil; p = p.Next() {
		if first || p.Value < minV {
			minK = p.Key
			minV = p.Value
			numWinners = 1
			first = false
			continue
		}
		if p.Value == minV {
			numWinners++
		}
	}
	return
}

func OrderedMapKeys[K comparable, V any](m *orderedmap.OrderedMap[K, V]) []K {
	l := make([]K, m.Len())
	i := 0
	for p := m.Oldest(); p != nil; p = p.Next() {
		l[i] = p.Key
		i++
	}
	return l
}

// KeysSortedByValue returns the keys of m ordered by ascending value
func KeysSortedByValue[K comparable, V constraints.Ordered](m *orderedmap.OrderedMap[K, V]) []K {
	sm := sortedmap.New(m.Len(), func(i, j interface{}) bool {
		return i.(V) < j.(V)
	})
	for p := m.Oldest(); p != nil; p = p.Next() {
		sm.Insert(p.Key, p.Value)
	}
	sorted := sm.Keys()
	keys := make([]K, len(sorted))
	for i, k := range sorted {
		keys[i] = k.(K)
	}
	return keys
}

func CountVals[K, V comparable](m *orderedmap.OrderedMap[K, V], v V) int {
	n := 0
	for p := m.Oldest(); p != nil; p = p.Next() {
		if p.Value == v {
			n++
		}
	}
	return n
}

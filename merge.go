package main

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dolthub/swiss"
)

// mergeTables folds every per-worker table into one map keyed by the
// decoded station name.
func mergeTables(tables []*table) *swiss.Map[string, *accumulator] {
	global := swiss.NewMap[string, *accumulator](1 << 14)
	for _, t := range tables {
		t.iterate(func(name []byte, acc *accumulator) {
			if existing, ok := global.Get(string(name)); ok {
				existing.fold(acc)
			} else {
				merged := *acc
				global.Put(string(name), &merged)
			}
		})
	}
	return global
}

// formatResult renders the single result line (without the trailing
// newline): stations in ascending byte order, min/mean/max to one
// decimal.
func formatResult(global *swiss.Map[string, *accumulator]) string {
	names := make([]string, 0, global.Count())
	global.Iter(func(name string, _ *accumulator) bool {
		names = append(names, name)
		return false
	})
	sort.Strings(names)

	var b strings.Builder
	b.Grow(len(names) * 32)
	b.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		acc, _ := global.Get(name)
		b.WriteString(name)
		b.WriteByte('=')
		writeTenths(&b, int64(acc.min))
		b.WriteByte('/')
		writeTenths(&b, meanTenths(acc.sum, acc.count))
		b.WriteByte('/')
		writeTenths(&b, int64(acc.max))
	}
	b.WriteByte('}')
	return b.String()
}

// meanTenths divides a tenths sum by a count, rounding halves away from
// zero.
func meanTenths(sum int64, count uint64) int64 {
	c := int64(count)
	if sum >= 0 {
		return (2*sum + c) / (2 * c)
	}
	return (2*sum - c) / (2 * c)
}

func writeTenths(b *strings.Builder, tenths int64) {
	if tenths < 0 {
		b.WriteByte('-')
		tenths = -tenths
	}
	b.WriteString(strconv.FormatInt(tenths/10, 10))
	b.WriteByte('.')
	b.WriteByte(byte('0' + tenths%10))
}

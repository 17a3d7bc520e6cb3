package main

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/maps"
)

func TestMeanTenths(t *testing.T) {
	tt := []struct {
		sum   int64
		count uint64
		want  int64
	}{
		{292, 2, 146},
		{0, 2, 0},
		{15, 2, 8},   // half rounds away from zero
		{-15, 2, -8}, // on both sides
		{1, 3, 0},
		{-1, 3, 0},
		{999, 1, 999},
		{-999, 1, -999},
	}
	for _, tc := range tt {
		t.Run(fmt.Sprintf("%d over %d", tc.sum, tc.count), func(t *testing.T) {
			assert.Equal(t, tc.want, meanTenths(tc.sum, tc.count))
		})
	}
}

func TestWriteTenths(t *testing.T) {
	tt := []struct {
		in   int64
		want string
	}{
		{0, "0.0"},
		{5, "0.5"},
		{-5, "-0.5"},
		{146, "14.6"},
		{999, "99.9"},
		{-999, "-99.9"},
	}
	for _, tc := range tt {
		t.Run(tc.want, func(t *testing.T) {
			var b strings.Builder
			writeTenths(&b, tc.in)
			assert.Equal(t, tc.want, b.String())
		})
	}
}

func TestMergeTables(t *testing.T) {
	a := newTable()
	parseChunk([]byte("Istanbul;6.2\nHamburg;12.0\n"), a)
	b := newTable()
	parseChunk([]byte("Istanbul;23.0\nRoseau;34.4\n"), b)

	global := mergeTables([]*table{a, b})

	want := map[string]accumulator{
		"Istanbul": {count: 2, sum: 292, min: 62, max: 230},
		"Hamburg":  {count: 1, sum: 120, min: 120, max: 120},
		"Roseau":   {count: 1, sum: 344, min: 344, max: 344},
	}
	names := maps.Keys(want)
	sort.Strings(names)
	require.Equal(t, len(want), global.Count())
	for _, name := range names {
		got, ok := global.Get(name)
		require.True(t, ok, "missing station %s", name)
		assert.Equal(t, want[name], *got, name)
	}
}

func TestFormatResult(t *testing.T) {
	a := newTable()
	parseChunk([]byte("Istanbul;6.2\nIstanbul;23.0\nHamburg;12.0\n"), a)

	out := formatResult(mergeTables([]*table{a}))
	assert.Equal(t, "{Hamburg=12.0/12.0/12.0, Istanbul=6.2/14.6/23.0}", out)
}

func TestFormatResultEmpty(t *testing.T) {
	assert.Equal(t, "{}", formatResult(mergeTables(nil)))
}

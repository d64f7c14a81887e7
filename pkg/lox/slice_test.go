package lox_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"deal_radar/pkg/lox"
)

func TestMap(t *testing.T) {
	rq := require.New(t)

	rq.Equal([]string{"1", "2"}, lox.Map([]int{1, 2}, strconv.Itoa))
	rq.Empty(lox.Map([]int(nil), strconv.Itoa))
}

func TestGroupOrdered(t *testing.T) {
	rq := require.New(t)

	order, groups := lox.GroupOrdered([]string{"b1", "a1", "b2", "c1", "a2"}, func(s string) byte { return s[0] })

	rq.Equal([]byte{'b', 'a', 'c'}, order)
	rq.Equal([]string{"b1", "b2"}, groups['b'])
	rq.Equal([]string{"a1", "a2"}, groups['a'])
	rq.Equal([]string{"c1"}, groups['c'])
}

// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/gutenshelf/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))
	assert.Nil(t, slice.Map[int, string](nil, strconv.Itoa))
}

func TestCollect(t *testing.T) {
	names := slice.Collect([]any{"Austen, Jane", 42, "Shelley, Mary"}, func(v any) (string, bool) {
		name, ok := v.(string)
		return name, ok
	})
	assert.Equal(t, []string{"Austen, Jane", "Shelley, Mary"}, names)

	empty := slice.Collect[any, string](nil, func(any) (string, bool) { return "", false })
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

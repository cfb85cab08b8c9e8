// Copyright (c) 2026 Gutenshelf. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/gutenshelf/pkg/uuid"
)

func TestNew_IsSortable(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	assert.True(t, uuid.IsValid(first))
	assert.Equal(t, byte('7'), first[14])
	assert.LessOrEqual(t, first[:13], second[:13])
}

func TestIsValid(t *testing.T) {
	assert.True(t, uuid.IsValid("0190b2f0-4a5b-7c3d-9e8f-0123456789ab"))
	assert.False(t, uuid.IsValid("not-a-uuid"))
	assert.False(t, uuid.IsValid("{0190b2f0-4a5b-7c3d-9e8f-0123456789ab}"))
	assert.False(t, uuid.IsValid(""))
}

package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/utils"
)

func TestIntegerQuotient(t *testing.T) {
	// test: 精确整除
	q, ok := utils.IntegerQuotient(10, 1)
	assert.True(t, ok)
	assert.Equal(t, 10, q)

	// test: 浮点容差内的整除（35/(35/150)与110.5/0.221）
	q, ok = utils.IntegerQuotient(35, 35.0/150)
	assert.True(t, ok)
	assert.Equal(t, 150, q)
	q, ok = utils.IntegerQuotient(110.5, 0.221)
	assert.True(t, ok)
	assert.Equal(t, 500, q)

	// test: 不整除
	_, ok = utils.IntegerQuotient(10, 3)
	assert.False(t, ok)

	// test: 非正除数
	_, ok = utils.IntegerQuotient(10, 0)
	assert.False(t, ok)
	_, ok = utils.IntegerQuotient(10, -1)
	assert.False(t, ok)
}

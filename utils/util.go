package utils

import (
	"math"

	"git.fiblab.net/general/common/v2/mathutil"
)

// 浮点整除判定的容差
const divEpsilon = 1e-9

// 判断a是否能被b整除（带浮点容差）。
// 如果整除则返回商的整数值与true，
// 否则返回0与false。
func IntegerQuotient(a, b float64) (int, bool) {
	if b <= 0 {
		return 0, false
	}
	q := a / b
	r := math.Round(q)
	if mathutil.Abs(q-r) > divEpsilon {
		return 0, false
	}
	return int(r), true
}

// 随机数引擎，包装了golang.org/x/exp/rand，提供了一些常用的随机数生成方法
package randengine

import (
	"flag"
	"sync"

	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于调整随机数生成
)

// Engine 随机数引擎
// 功能：提供可复现的随机数生成功能，支持线程安全操作
// 说明：基于golang.org/x/exp/rand库，用于初始条件扰动与随机限速策略
type Engine struct {
	*rand.Rand            // 底层随机数生成器
	mtx        sync.Mutex // 互斥锁，用于线程安全操作
}

// New 创建随机数引擎
// 功能：初始化一个新的随机数引擎实例
// 参数：seed-随机数种子
// 返回：随机数引擎指针
// 说明：种子偏移量允许在不修改配置的情况下调整随机数序列
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// Uniform 在[low, high)范围内生成均匀分布的随机浮点数（非线程安全）
// 功能：生成指定区间内的随机浮点数
// 参数：low-下界，high-上界
// 返回：[low, high)范围内的随机浮点数
func (e *Engine) Uniform(low, high float64) float64 {
	return low + (high-low)*e.Float64()
}

// UniformSafe 在[low, high)范围内生成均匀分布的随机浮点数（线程安全）
// 功能：生成指定区间内的随机浮点数，支持多线程安全访问
// 参数：low-下界，high-上界
// 返回：[low, high)范围内的随机浮点数
// 说明：线程安全版本的Uniform方法
func (e *Engine) UniformSafe(low, high float64) float64 {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return low + (high-low)*e.Float64()
}

// PTrue 以指定概率返回true（非线程安全）
// 功能：根据给定概率返回布尔值
// 参数：p-返回true的概率（0.0到1.0之间）
// 返回：true或false
// 说明：实现伯努利分布，用于模拟概率事件
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}

package clock

import (
	"fmt"

	"github.com/tsinghua-fib-lab/macroflow-sim-oss/utils"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/utils/config"
)

// Clock 仿真时钟管理器
// 功能：管理仿真系统的时间推进与rollout步数计数
// 说明：维护当前仿真时间、步数等信息，步数达到TOTAL_STEP即为终止
type Clock struct {
	DT         float64 // 每个模拟步时间间隔（秒）
	TOTAL_STEP int32   // 总步数（时间范围/步长），模拟区间[0, TOTAL_STEP]

	T            float64 // 当前时间（秒）
	InternalStep int32   // 当前步数
}

// New 根据配置创建新的时钟实例
// 功能：根据时间控制配置初始化时钟信息
// 参数：stepConfig-控制步配置，包含时间范围与时间间隔
// 返回：初始化完成的时钟实例
// 算法说明：
// 1. 校验total_time能被dt整除（带浮点容差），否则返回配置错误
// 2. 计算总步数：TOTAL_STEP = total_time / dt
// 3. 初始化时钟状态
func New(stepConfig config.StepConfig) (*Clock, error) {
	horizon, ok := utils.IntegerQuotient(stepConfig.TotalTime, stepConfig.DT)
	if !ok {
		return nil, fmt.Errorf(
			"clock: total_time (%v) must be divisible by dt (%v)",
			stepConfig.TotalTime, stepConfig.DT,
		)
	}

	c := &Clock{
		DT:         stepConfig.DT,
		TOTAL_STEP: int32(horizon),
	}
	c.Init()
	return c, nil
}

// Init 初始化时钟状态
// 功能：重置时钟状态
// 说明：重置步数为0，重新计算当前时间
func (c *Clock) Init() {
	c.InternalStep = 0
	c.T = 0
}

// Tick 推进一个模拟步
// 功能：步数加一并更新当前时间
func (c *Clock) Tick() {
	c.InternalStep++
	c.T = float64(c.InternalStep) * c.DT
}

// Done 判断是否到达时间范围终点
// 返回：步数达到TOTAL_STEP时为true
func (c *Clock) Done() bool {
	return c.InternalStep >= c.TOTAL_STEP
}

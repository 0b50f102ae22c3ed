package task

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/utils/randengine"
)

// Policy 限速控制策略
// 功能：根据当前观测产生下一步的限速动作
// 说明：返回nil表示本步不下发动作，环境保持当前限速
type Policy func(obs []float64) *float64

// NewPolicy 根据配置构造限速控制策略
// 功能：将策略配置映射为可调用的策略函数
// 参数：cfg-策略配置，vMaxMax-可被赋予的最大限速
// 返回：策略函数，不受支持的策略类型返回配置错误
// 算法说明：
// 1. none：每步返回nil，整个rollout保持初始限速
// 2. constant：每步返回固定限速，取值截断到[0, vMaxMax]
// 3. random：每步返回[0, vMaxMax)内的均匀随机限速（可复现种子）
func NewPolicy(cfg config.PolicyConfig, vMaxMax float64) (Policy, error) {
	switch cfg.Type {
	case "", "none":
		return func([]float64) *float64 { return nil }, nil
	case "constant":
		v := lo.Clamp(cfg.Value, 0, vMaxMax)
		return func([]float64) *float64 {
			action := v
			return &action
		}, nil
	case "random":
		engine := randengine.New(cfg.Seed)
		return func([]float64) *float64 {
			action := engine.Uniform(0, vMaxMax)
			return &action
		}, nil
	default:
		return nil, fmt.Errorf("task: unsupported policy type %q (must be none, constant or random)", cfg.Type)
	}
}

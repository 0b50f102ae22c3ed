package task

import (
	"flag"
	"math"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/env"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/utils/config"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// StepSink 逐步仿真数据的输出目标
// 功能：定义实验运行时每步数据的写入接口
// 说明：CSV与MongoDB输出均实现该接口；实验按注册顺序依次写入
type StepSink interface {
	// WriteStep 写入一个模拟步的数据
	WriteStep(run, step int, t, dx float64, density, speed []float64) error
	// Close 关闭输出目标
	Close() error
}

// Summary 实验汇总结果
// 功能：存储所有rollout的回报与速度统计
type Summary struct {
	Returns    []float64 // 每个rollout的累计回报
	MeanSpeeds []float64 // 每个rollout的逐步平均速度的均值

	MeanReturn float64 // 累计回报均值
	StdReturn  float64 // 累计回报标准差
	MeanSpeed  float64 // 平均速度均值
}

// Experiment 实验运行器
// 功能：驱动环境执行若干次rollout，收集回报与速度指标并导出逐步数据
// 说明：对应强化学习实验中的评估循环，策略可以是none/constant/random
type Experiment struct {
	env    *env.Env
	runs   int
	policy Policy
	sinks  []StepSink
}

// New 创建实验运行器
// 功能：根据实验配置构造运行器并解析控制策略
// 参数：e-环境实例，cfg-实验配置，sinks-逐步数据输出目标（可为空）
// 返回：初始化完成的实验运行器，策略配置无效时返回配置错误
func New(e *env.Env, cfg config.ExperimentConfig, sinks ...StepSink) (*Experiment, error) {
	policy, err := NewPolicy(cfg.Policy, e.VMaxMax())
	if err != nil {
		return nil, err
	}
	runs := cfg.Runs
	if runs <= 0 {
		runs = 1
	}
	return &Experiment{
		env:    e,
		runs:   runs,
		policy: policy,
		sinks:  sinks,
	}, nil
}

// Run 运行实验
// 功能：执行全部rollout并汇总统计
// 返回：实验汇总结果，环境或输出出错时返回该错误
// 算法说明：
// 1. 每个rollout：Reset后按horizon步数循环Step
// 2. 每步：策略产生动作，累计回报，记录逐元胞数据到各输出目标
// 3. 心跳日志：每隔heartbeat_interval步输出一次进度
// 4. 汇总：计算回报均值/标准差与平均速度
func (ex *Experiment) Run() (*Summary, error) {
	horizon := ex.env.Horizon()
	n := ex.env.Road().N()
	dx := ex.env.Road().DX()

	summary := &Summary{
		Returns:    make([]float64, 0, ex.runs),
		MeanSpeeds: make([]float64, 0, ex.runs),
	}

	for run := 0; run < ex.runs; run++ {
		obs := ex.env.Reset()
		ret := .0
		vel := make([]float64, 0, horizon)

		for step := 1; step <= horizon; step++ {
			next, reward, done, _, err := ex.env.Step(ex.policy(obs))
			if err != nil {
				return nil, err
			}
			obs = next
			ret += reward

			density, speed := obs[:n], obs[n:]
			vel = append(vel, lo.Sum(speed)/float64(n))

			if step%*heartBeatInterval == 0 {
				log.Infof("STEP: %d/%d (t=%.2f)", step, horizon, ex.env.T())
			}
			for _, sink := range ex.sinks {
				if err := sink.WriteStep(run, step, ex.env.T(), dx, density, speed); err != nil {
					return nil, err
				}
			}
			if done {
				break
			}
		}

		summary.Returns = append(summary.Returns, ret)
		summary.MeanSpeeds = append(summary.MeanSpeeds, lo.Sum(vel)/float64(len(vel)))
		log.Infof("round %d, return: %f", run, ret)
	}

	summary.MeanReturn, summary.StdReturn = meanStd(summary.Returns)
	summary.MeanSpeed, _ = meanStd(summary.MeanSpeeds)
	return summary, nil
}

// meanStd 计算均值与（总体）标准差
func meanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	mean = lo.Sum(xs) / float64(len(xs))
	for _, x := range xs {
		std += (x - mean) * (x - mean)
	}
	std = math.Sqrt(std / float64(len(xs)))
	return
}

// 宏观交通流环境，基于LWR（Lighthill-Whitham-Richards）守恒律模型。
//
// M.J.Lighthill, G.B.Whitham, On kinematic waves II: A theory of traffic
// flow on long, crowded roads. Proceedings of the Royal Society of London
// Series A 229, 317-345, 1955.
package env

import (
	"errors"
	"fmt"

	"github.com/tsinghua-fib-lab/macroflow-sim-oss/clock"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/entity/road"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/utils/config"
)

var (
	// ErrNotReset 在Reset之前调用Step
	ErrNotReset = errors.New("env: Reset must be called before Step")
	// ErrTerminal 在rollout终止后继续调用Step
	ErrTerminal = errors.New("env: rollout is terminal, call Reset to start a new one")
)

// rollout生命周期状态
type lifecycle int

const (
	stateUninitialized lifecycle = iota // 已构造，尚未Reset
	stateReady                          // 已Reset，可以Step
	stateRunning                        // 至少执行过一步
	stateTerminal                       // 步数到达horizon
)

// Env 宏观交通流环境
// 功能：持有一维离散化道路并按步推进，提供强化学习环境风格的
// Reset/Step接口：观测为密度与速度的拼接，动作为新的限速值，
// 奖励为按密度加权的限速偏差惩罚
// 说明：纯顺序、单线程；单个Env实例归一个活动rollout独占，
// 并行实验应各自持有独立实例
type Env struct {
	params Params

	road *road.Road   // 空间状态：密度元胞与边界策略
	clk  *clock.Clock // 时间状态：步数与当前时间

	vMax  float64   // 当前限速，唯一可被动作修改的配置值
	state lifecycle // rollout生命周期状态
}

// New 创建宏观交通流环境
// 功能：校验全部配置不变量后构造环境，校验失败则不创建任何状态
// 参数：params-环境构造参数
// 返回：初始化完成的环境实例，任一不变量被违反时返回配置错误
// 算法说明：
// 1. 校验CFL取值范围[0,1]
// 2. 校验v_max <= v_max_max
// 3. 校验CFL稳定性条件 dt <= CFL*dx/v_max（含边界相等）
// 4. 构造时钟（校验total_time/dt整除性）
// 5. 解析边界策略（不受支持的策略名报错）
// 6. 构造道路（校验length/dx整除性、密度上限次序、初始条件长度）
func New(params Params) (*Env, error) {
	if params.CFL < 0 || params.CFL > 1 {
		return nil, fmt.Errorf("env: CFL (%v) must be between 0 and 1", params.CFL)
	}
	if params.VMax > params.VMaxMax {
		return nil, fmt.Errorf("env: v_max (%v) must be less than or equal to v_max_max (%v)", params.VMax, params.VMaxMax)
	}
	if params.DT > params.CFL*params.DX/params.VMax {
		return nil, fmt.Errorf(
			"env: CFL condition not satisfied, dt (%v) must be at most CFL*dx/v_max (%v)",
			params.DT, params.CFL*params.DX/params.VMax,
		)
	}

	clk, err := clock.New(config.StepConfig{TotalTime: params.TotalTime, DT: params.DT})
	if err != nil {
		return nil, err
	}
	boundary, err := road.ParseBoundary(params.Boundary)
	if err != nil {
		return nil, err
	}
	r, err := road.New(params.Length, params.DX, params.RhoMax, params.RhoMaxMax, params.InitialConditions, boundary)
	if err != nil {
		return nil, err
	}

	return &Env{
		params: params,
		road:   r,
		clk:    clk,
		vMax:   params.VMax,
		state:  stateUninitialized,
	}, nil
}

// Reset 重置环境，开始一个新的rollout
// 功能：密度恢复为初始条件，限速恢复为配置值，步数清零
// 返回：初始观测（N个密度值与N个速度值的拼接副本）
// 说明：初始速度由Greenshields闭合关系从初始密度导出；
// 无中间Step的情况下重复Reset返回完全相同的观测
func (e *Env) Reset() []float64 {
	e.clk.Init()
	e.vMax = e.params.VMax
	e.road.Reset()
	e.state = stateReady
	return e.observation()
}

// Step 推进一个模拟步
// 功能：可选地应用限速动作，执行一次有限体积更新，计算奖励与终止标志
// 参数：action-新的限速值，nil表示保持当前限速（闭环控制接口）
// 返回：观测副本、奖励、终止标志、附加信息（恒为空映射）；
// 在Reset之前或rollout终止后调用返回状态机错误
// 算法说明：
// 1. 生命周期检查：仅READY/RUNNING状态可Step
// 2. 步数加一；若提供动作则覆盖当前限速
// 3. 执行Godunov有限体积更新
// 4. 奖励 = mean(rho*(v-vMax)^2)，按密度加权的限速偏差惩罚，
//    空元胞无论速度偏差多大贡献都为零
// 5. 步数达到horizon时置done并进入TERMINAL状态
// 说明：宏观层面没有碰撞等其他终止条件
func (e *Env) Step(action *float64) ([]float64, float64, bool, map[string]any, error) {
	switch e.state {
	case stateUninitialized:
		return nil, 0, false, nil, ErrNotReset
	case stateTerminal:
		return nil, 0, false, nil, ErrTerminal
	}

	e.clk.Tick()
	if action != nil {
		e.vMax = *action
	}

	e.road.Update(e.clk.DT, e.vMax)

	rho := e.road.Density()
	speed := e.road.Speeds(e.vMax)
	reward := 0.0
	for i := range rho {
		d := speed[i] - e.vMax
		reward += rho[i] * d * d
	}
	reward /= float64(len(rho))

	done := e.clk.Done()
	if done {
		e.state = stateTerminal
		log.Debugf("rollout terminal after %d steps", e.clk.InternalStep)
	} else {
		e.state = stateRunning
	}

	obs := make([]float64, 0, 2*len(rho))
	obs = append(obs, rho...)
	obs = append(obs, speed...)
	return obs, reward, done, map[string]any{}, nil
}

// observation 组装观测
// 返回：N个密度值与N个速度值的有序拼接（值副本，不与内部状态共享）
func (e *Env) observation() []float64 {
	rho := e.road.Density()
	speed := e.road.Speeds(e.vMax)
	obs := make([]float64, 0, 2*len(rho))
	obs = append(obs, rho...)
	obs = append(obs, speed...)
	return obs
}

// VMax 获取当前限速
func (e *Env) VMax() float64 {
	return e.vMax
}

// VMaxMax 获取可被赋予的最大限速
func (e *Env) VMaxMax() float64 {
	return e.params.VMaxMax
}

// StepCount 获取当前rollout已执行的步数
func (e *Env) StepCount() int {
	return int(e.clk.InternalStep)
}

// Horizon 获取rollout总步数
func (e *Env) Horizon() int {
	return int(e.clk.TOTAL_STEP)
}

// T 获取当前仿真时间（秒）
func (e *Env) T() float64 {
	return e.clk.T
}

// Road 获取道路实体
// 说明：用于实验记录与测试中检查边界缓存等内部量
func (e *Env) Road() *road.Road {
	return e.road
}

package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/env"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/utils/config"
)

// 基准合法参数：4元胞环形道路，horizon=10，CFL边界恰好取等
func newTestParams() env.Params {
	return env.Params{
		Length:            8,
		DX:                2,
		RhoMax:            4,
		RhoMaxMax:         4,
		VMax:              1,
		VMaxMax:           1,
		CFL:               0.5,
		TotalTime:         10,
		DT:                1,
		InitialConditions: []float64{0.1, 0.2, 0.3, 0.4},
		Boundary:          config.BoundaryConfig{Type: "loop"},
	}
}

func TestNewValidation(t *testing.T) {
	// test: 基准参数合法，CFL条件取等（dt == CFL*dx/v_max）也必须通过
	p := newTestParams()
	assert.Equal(t, p.DT, p.CFL*p.DX/p.VMax)
	_, err := env.New(p)
	assert.NoError(t, err)

	// test: dt超过CFL界被拒绝
	p = newTestParams()
	p.DT = 1.1
	p.TotalTime = 11
	_, err = env.New(p)
	assert.Error(t, err)

	// test: CFL必须在[0,1]内
	p = newTestParams()
	p.CFL = 1.5
	_, err = env.New(p)
	assert.Error(t, err)
	p.CFL = -0.1
	_, err = env.New(p)
	assert.Error(t, err)

	// test: v_max不能超过v_max_max
	p = newTestParams()
	p.VMax = 2
	_, err = env.New(p)
	assert.Error(t, err)

	// test: total_time必须能被dt整除
	p = newTestParams()
	p.TotalTime = 10.5
	_, err = env.New(p)
	assert.Error(t, err)

	// test: 不受支持的边界策略在构造期报错
	p = newTestParams()
	p.Boundary = config.BoundaryConfig{Type: "noop"}
	_, err = env.New(p)
	assert.Error(t, err)

	// test: 初始条件长度不匹配
	p = newTestParams()
	p.InitialConditions = []float64{0.1, 0.2}
	_, err = env.New(p)
	assert.Error(t, err)
}

func TestSpaces(t *testing.T) {
	e, err := env.New(newTestParams())
	require.NoError(t, err)

	// test: 观测空间2N维，动作空间1维且上界为v_max_max
	assert.Equal(t, env.Box{Low: 0, High: 1, Shape: []int{8}}, e.ObservationSpace())
	assert.Equal(t, env.Box{Low: 0, High: 1, Shape: []int{1}}, e.ActionSpace())
}

func TestResetIdempotent(t *testing.T) {
	e, err := env.New(newTestParams())
	require.NoError(t, err)

	// test: 无中间Step时重复Reset返回完全相同的观测
	obs1 := e.Reset()
	obs2 := e.Reset()
	assert.Equal(t, obs1, obs2)
	assert.Len(t, obs1, 8)

	// test: 观测为密度与速度的拼接，速度由Greenshields闭合导出
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4}, obs1[:4])
	assert.InDeltaSlice(t, []float64{0.975, 0.95, 0.925, 0.9}, obs1[4:], 1e-12)
}

func TestStepBeforeReset(t *testing.T) {
	e, err := env.New(newTestParams())
	require.NoError(t, err)

	// test: Reset之前Step属于状态机违规
	_, _, _, _, err = e.Step(nil)
	assert.ErrorIs(t, err, env.ErrNotReset)
}

func TestHorizonTermination(t *testing.T) {
	e, err := env.New(newTestParams())
	require.NoError(t, err)
	e.Reset()

	// test: horizon=10时，前9步done=false，第10步done=true
	for i := 1; i <= 10; i++ {
		_, _, done, info, err := e.Step(nil)
		require.NoError(t, err)
		assert.Equal(t, i == 10, done)
		assert.Empty(t, info)
	}
	assert.Equal(t, 10, e.StepCount())

	// test: 终止后继续Step属于状态机违规
	_, _, _, _, err = e.Step(nil)
	assert.ErrorIs(t, err, env.ErrTerminal)

	// test: Reset开启新的rollout后可继续Step
	e.Reset()
	assert.Equal(t, 0, e.StepCount())
	_, _, done, _, err := e.Step(nil)
	assert.NoError(t, err)
	assert.False(t, done)
}

func TestActionOverridesVMax(t *testing.T) {
	e, err := env.New(newTestParams())
	require.NoError(t, err)
	e.Reset()

	// test: 动作覆盖当前限速，观测中的速度按新限速计算
	action := 0.5
	obs, _, _, _, err := e.Step(&action)
	require.NoError(t, err)
	assert.Equal(t, 0.5, e.VMax())
	for i, rho := range obs[:4] {
		assert.InDelta(t, 0.5*(1-rho/4), obs[4+i], 1e-12)
	}

	// test: 不提供动作时保持上一步的限速
	_, _, _, _, err = e.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, e.VMax())

	// test: Reset恢复配置的初始限速
	e.Reset()
	assert.Equal(t, 1.0, e.VMax())
}

func TestReward(t *testing.T) {
	e, err := env.New(newTestParams())
	require.NoError(t, err)
	e.Reset()

	// test: 奖励等于按密度加权的限速偏差均值
	obs, reward, _, _, err := e.Step(nil)
	require.NoError(t, err)
	expected := .0
	for i, rho := range obs[:4] {
		d := obs[4+i] - e.VMax()
		expected += rho * d * d
	}
	expected /= 4
	assert.InDelta(t, expected, reward, 1e-12)
	assert.GreaterOrEqual(t, reward, 0.0)
}

func TestRewardDensityWeighted(t *testing.T) {
	// 空路：恒零的Dirichlet边界与全零初始条件
	p := newTestParams()
	p.InitialConditions = []float64{0, 0, 0, 0}
	p.Boundary = config.BoundaryConfig{Type: "constant_both", Left: 0, Right: 0}
	e, err := env.New(p)
	require.NoError(t, err)
	e.Reset()

	// test: 空元胞无论速度偏差多大贡献都为零
	action := 0.5
	_, reward, _, _, err := e.Step(&action)
	require.NoError(t, err)
	assert.Zero(t, reward)
}

func TestObservationIsCopy(t *testing.T) {
	e, err := env.New(newTestParams())
	require.NoError(t, err)

	// test: 返回的观测是值副本，修改它不影响内部状态
	obs := e.Reset()
	obs[0] = 999
	assert.Equal(t, 0.1, e.Road().Density()[0])

	obs2, _, _, _, err := e.Step(nil)
	require.NoError(t, err)
	obs2[0] = 999
	assert.NotEqual(t, 999.0, e.Road().Density()[0])
}

package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/env"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/utils/config"
)

func newTestConfig() config.Config {
	return config.Config{
		Road:     config.RoadConfig{Length: 8, DX: 2, RhoMax: 4, RhoMaxMax: 4},
		Model:    config.ModelConfig{VMax: 1, VMaxMax: 1, CFL: 0.5},
		Step:     config.StepConfig{TotalTime: 10, DT: 1},
		Boundary: config.BoundaryConfig{Type: "loop"},
	}
}

func TestFromConfigDensities(t *testing.T) {
	c := newTestConfig()
	c.Initial.Densities = []float64{0.1, 0.2, 0.3, 0.4}

	// test: 显式密度列表直接复制
	p, err := env.FromConfig(config.NewRuntimeConfig(c))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4}, p.InitialConditions)
	assert.Equal(t, 8.0, p.Length)
	assert.Equal(t, "loop", p.Boundary.Type)
}

func TestFromConfigUniform(t *testing.T) {
	c := newTestConfig()
	base := 0.3
	c.Initial.Uniform = &base

	// test: uniform值填充所有元胞
	p, err := env.FromConfig(config.NewRuntimeConfig(c))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.3, 0.3, 0.3, 0.3}, p.InitialConditions)
}

func TestFromConfigUniformNoise(t *testing.T) {
	c := newTestConfig()
	base := 0.3
	c.Initial.Uniform = &base
	c.Initial.Noise = 0.1
	c.Initial.Seed = 42

	// test: 扰动落在[base-noise, base+noise]内且不越过[0, rho_max]
	p, err := env.FromConfig(config.NewRuntimeConfig(c))
	require.NoError(t, err)
	require.Len(t, p.InitialConditions, 4)
	for _, rho := range p.InitialConditions {
		assert.GreaterOrEqual(t, rho, 0.2)
		assert.LessOrEqual(t, rho, 0.4)
	}

	// test: 相同种子的扰动可复现
	p2, err := env.FromConfig(config.NewRuntimeConfig(c))
	require.NoError(t, err)
	assert.Equal(t, p.InitialConditions, p2.InitialConditions)
}

func TestFromConfigErrors(t *testing.T) {
	// test: 初始条件缺失
	c := newTestConfig()
	_, err := env.FromConfig(config.NewRuntimeConfig(c))
	assert.Error(t, err)

	// test: uniform填充依赖length/dx整除
	c = newTestConfig()
	base := 0.3
	c.Initial.Uniform = &base
	c.Road.DX = 3
	_, err = env.FromConfig(config.NewRuntimeConfig(c))
	assert.Error(t, err)
}

package env

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/utils"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/utils/randengine"
)

// Params 环境构造参数
// 功能：汇总宏观模型构造所需的全部参数
// 说明：校验通过后不可变；v_max是唯一可被动作修改的运行时值
type Params struct {
	Length    float64 // 道路长度
	DX        float64 // 元胞宽度，必须整除Length
	RhoMax    float64 // 运行最大密度
	RhoMaxMax float64 // 绝对最大密度
	VMax      float64 // 初始限速
	VMaxMax   float64 // 可被赋予的最大限速
	CFL       float64 // Courant数，取值[0,1]
	TotalTime float64 // 时间范围（秒）
	DT        float64 // 时间步长（秒）

	InitialConditions []float64             // 逐元胞初始密度，长度必须等于Length/DX
	Boundary          config.BoundaryConfig // 边界条件（带标签值），构造时解析
}

// FromConfig 从YAML配置构造环境参数
// 功能：将运行时配置映射为环境构造参数，物化初始密度条件
// 参数：rc-运行时配置
// 返回：环境构造参数，初始条件配置无效时返回配置错误
// 算法说明：
// 1. 显式densities列表优先，直接复制
// 2. 否则按uniform值填充所有元胞，若noise>0则叠加均匀扰动,
//    扰动结果截断到[0, rho_max]
// 3. 两者都未给出视为配置错误
func FromConfig(rc *config.RuntimeConfig) (Params, error) {
	all := rc.All
	p := Params{
		Length:    all.Road.Length,
		DX:        all.Road.DX,
		RhoMax:    all.Road.RhoMax,
		RhoMaxMax: all.Road.RhoMaxMax,
		VMax:      all.Model.VMax,
		VMaxMax:   all.Model.VMaxMax,
		CFL:       all.Model.CFL,
		TotalTime: all.Step.TotalTime,
		DT:        all.Step.DT,
		Boundary:  all.Boundary,
	}

	switch {
	case len(all.Initial.Densities) > 0:
		p.InitialConditions = append([]float64(nil), all.Initial.Densities...)
	case all.Initial.Uniform != nil:
		n, ok := utils.IntegerQuotient(p.Length, p.DX)
		if !ok {
			return Params{}, fmt.Errorf("env: length (%v) must be divisible by dx (%v)", p.Length, p.DX)
		}
		base := *all.Initial.Uniform
		p.InitialConditions = make([]float64, n)
		if all.Initial.Noise > 0 {
			engine := randengine.New(all.Initial.Seed)
			for i := range p.InitialConditions {
				rho := base + engine.Uniform(-all.Initial.Noise, all.Initial.Noise)
				p.InitialConditions[i] = lo.Clamp(rho, 0, p.RhoMax)
			}
		} else {
			for i := range p.InitialConditions {
				p.InitialConditions[i] = base
			}
		}
	default:
		return Params{}, fmt.Errorf("env: initial conditions missing, set either densities or uniform")
	}

	return p, nil
}

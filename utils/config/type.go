package config

import "fmt"

// RoadConfig 道路空间离散化配置
// 功能：定义一维道路的长度与元胞划分参数
// 说明：length必须能被dx整除，元胞数N=length/dx
type RoadConfig struct {
	Length    float64 `yaml:"length"`      // 道路长度
	DX        float64 `yaml:"dx"`          // 元胞宽度，必须整除length
	RhoMax    float64 `yaml:"rho_max"`     // LWR模型运行最大密度（veh/长度单位）
	RhoMaxMax float64 `yaml:"rho_max_max"` // 道路允许的绝对最大密度
}

// ModelConfig 宏观模型运行参数配置
// 功能：定义速度上限与数值稳定性参数
// 说明：v_max为初始限速，仿真中可被控制动作覆盖；CFL取值[0,1]
type ModelConfig struct {
	VMax    float64 `yaml:"v_max"`     // 初始限速（自由流速度）
	VMaxMax float64 `yaml:"v_max_max"` // 可被赋予的最大限速
	CFL     float64 `yaml:"cfl"`       // Courant-Friedrichs-Lewy数
}

// StepConfig 指定模拟时间范围和间隔的配置项
// 功能：定义仿真时间控制参数
// 说明：total_time必须能被dt整除，步数horizon=total_time/dt
type StepConfig struct {
	TotalTime float64 `yaml:"total_time"` // 时间范围（秒）
	DT        float64 `yaml:"dt"`         // 每步的时间间隔（秒）
}

// InitialConfig 初始密度条件配置
// 功能：定义每个元胞的初始密度来源
// 说明：两种来源互斥，优先级：densities > uniform；noise只对uniform生效
type InitialConfig struct {
	Densities []float64 `yaml:"densities,omitempty"` // 显式的逐元胞密度列表，长度必须等于N
	Uniform   *float64  `yaml:"uniform,omitempty"`   // 所有元胞统一的初始密度
	Noise     float64   `yaml:"noise,omitempty"`     // 均匀扰动幅度，叠加在uniform值上
	Seed      uint64    `yaml:"seed,omitempty"`      // 扰动随机种子
}

// BoundaryConfig 边界条件配置（带标签值）
// 功能：表达三种边界策略之一
// 说明：YAML中既可以是字符串（"loop"、"extend_both"），
// 也可以是单键映射 {constant_both: [left, right]}
type BoundaryConfig struct {
	Type  string  // 边界策略名
	Left  float64 // 左端固定密度（仅constant_both）
	Right float64 // 右端固定密度（仅constant_both）
}

// UnmarshalYAML 解析边界条件配置
// 功能：兼容字符串与单键映射两种YAML形式
// 算法说明：
// 1. 先尝试按字符串解析，成功则直接作为策略名
// 2. 否则按 map[string][]float64 解析，要求恰好一个键、恰好两个值
// 说明：此处只做形式解析，策略名是否受支持由模型构造时判定
func (b *BoundaryConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		b.Type = s
		return nil
	}
	var m map[string][]float64
	if err := unmarshal(&m); err != nil {
		return fmt.Errorf("boundary conditions must be a string or a single-key mapping: %w", err)
	}
	if len(m) != 1 {
		return fmt.Errorf("boundary conditions mapping must have exactly one key, got %d", len(m))
	}
	for k, v := range m {
		if len(v) != 2 {
			return fmt.Errorf("boundary conditions %q must carry exactly two values (left, right), got %d", k, len(v))
		}
		b.Type = k
		b.Left = v[0]
		b.Right = v[1]
	}
	return nil
}

// PolicyConfig 限速控制策略配置
// 功能：定义实验运行时每步产生控制动作的方式
// 说明：none-不下发动作；constant-固定限速；random-均匀随机限速
type PolicyConfig struct {
	Type  string  `yaml:"type"`            // none / constant / random
	Value float64 `yaml:"value,omitempty"` // constant策略的限速值
	Seed  uint64  `yaml:"seed,omitempty"`  // random策略的随机种子
}

// ExperimentConfig 实验运行配置
// 功能：定义rollout次数与控制策略
type ExperimentConfig struct {
	Runs   int          `yaml:"runs"`   // rollout次数
	Policy PolicyConfig `yaml:"policy"` // 控制策略
}

// OutputConfig 指定模拟器输出数据的配置项
// 功能：定义逐步仿真数据的导出目标
// 说明：支持CSV文件与MongoDB两种输出，均为可选
type OutputConfig struct {
	Emission string `yaml:"emission,omitempty"` // CSV输出文件路径，为空则不输出
	URI      string `yaml:"uri,omitempty"`      // MongoDB连接字符串，为空则不输出
	DB       string `yaml:"db,omitempty"`       // 数据库名
	Col      string `yaml:"col,omitempty"`      // 集合名
}

// Config YAML配置文件的根结构
// 功能：定义整个仿真系统的配置结构
// 说明：包含道路、模型、时间、初始/边界条件、实验与输出等所有配置项
type Config struct {
	Road       RoadConfig       `yaml:"road"`       // 道路离散化
	Model      ModelConfig      `yaml:"model"`      // 模型参数
	Step       StepConfig       `yaml:"step"`       // 模拟过程控制
	Initial    InitialConfig    `yaml:"initial"`    // 初始条件
	Boundary   BoundaryConfig   `yaml:"boundary"`   // 边界条件
	Experiment ExperimentConfig `yaml:"experiment"` // 实验运行
	Output     OutputConfig     `yaml:"output"`     // 输出
}

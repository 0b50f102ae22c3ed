package config

// RuntimeConfig 运行时配置
// 功能：存储仿真运行时的配置信息
// 说明：将YAML配置转换为运行时可用的配置对象
type RuntimeConfig struct {
	All Config     // 全部配置
	C   StepConfig // 时间控制配置
}

// NewRuntimeConfig 根据配置初始化全局变量
// 功能：创建运行时配置对象，填充缺省值
// 参数：config-原始配置对象
// 返回：初始化的运行时配置指针
// 算法说明：
// 1. 创建运行时配置对象
// 2. 设置默认值：如果未指定rollout次数则默认为1次
// 说明：确保配置的正确性和一致性，为仿真运行提供有效配置
func NewRuntimeConfig(config Config) *RuntimeConfig {
	rc := &RuntimeConfig{}

	rc.All = config
	rc.C = config.Step
	if rc.All.Experiment.Runs <= 0 {
		rc.All.Experiment.Runs = 1
	}
	if rc.All.Experiment.Policy.Type == "" {
		rc.All.Experiment.Policy.Type = "none"
	}

	return rc
}

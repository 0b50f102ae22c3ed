package env

// Box 有界连续空间描述
// 功能：描述观测/动作空间的上下界与形状
// 说明：与强化学习环境接口约定的Box空间对应
type Box struct {
	Low   float64 // 下界
	High  float64 // 上界
	Shape []int   // 形状
}

// ObservationSpace 获取观测空间描述
// 返回：2N维Box，逐维归一化上界为1
// 说明：观测为N个密度值与N个速度值的有序拼接，
// 归一化（除以各自配置上限）由调用方按此描述自行处理
func (e *Env) ObservationSpace() Box {
	return Box{Low: 0, High: 1, Shape: []int{2 * e.road.N()}}
}

// ActionSpace 获取动作空间描述
// 返回：1维Box，取值范围[0, v_max_max]
// 说明：动作为新的限速值
func (e *Env) ActionSpace() Box {
	return Box{Low: 0, High: e.params.VMaxMax, Shape: []int{1}}
}

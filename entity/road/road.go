package road

import (
	"fmt"
	"math"

	"github.com/tsinghua-fib-lab/macroflow-sim-oss/utils"
)

// Greenshields速度-密度关系的指数项，LWR模型中固定为1
const greenshieldsLambda = 1

// Road 宏观道路实体
// 功能：表示一维离散化道路，持有逐元胞密度状态并执行有限体积更新
// 说明：密度数组共n个元胞，首尾两个元胞兼作ghost cell，
// 每步更新后按边界策略重建；数组归单个rollout独占，不跨rollout共享
type Road struct {
	length float64 // 道路长度
	dx     float64 // 元胞宽度
	n      int     // 元胞数（length/dx）

	rhoMax      float64 // 运行最大密度
	rhoMaxMax   float64 // 绝对最大密度
	rhoCritical float64 // 临界密度（rhoMax/2），Greenshields模型下流量最大处

	initial []float64 // 初始密度条件（只读）
	density []float64 // 当前逐元胞密度

	boundary      Boundary // 已解析的边界策略
	boundaryLeft  float64  // 左ghost cell缓存值
	boundaryRight float64  // 右ghost cell缓存值
}

// New 创建并初始化一个新的Road实例
// 功能：根据离散化参数创建Road对象，校验空间离散化不变量
// 参数：length-道路长度，dx-元胞宽度，rhoMax/rhoMaxMax-运行/绝对最大密度，
// initial-逐元胞初始密度，boundary-已解析的边界策略
// 返回：初始化完成的Road实例，任一不变量被违反时返回配置错误
// 算法说明：
// 1. 校验length能被dx整除（带浮点容差），得到元胞数n
// 2. 校验n>=3（两个ghost cell加至少一个内部元胞）
// 3. 校验rhoMax<=rhoMaxMax
// 4. 校验初始条件长度等于n
// 5. 复制初始条件并填充密度状态
func New(length, dx, rhoMax, rhoMaxMax float64, initial []float64, boundary Boundary) (*Road, error) {
	n, ok := utils.IntegerQuotient(length, dx)
	if !ok {
		return nil, fmt.Errorf("road: length (%v) must be divisible by dx (%v)", length, dx)
	}
	if n < 3 {
		return nil, fmt.Errorf("road: need at least 3 cells (2 boundary + 1 interior), got %d", n)
	}
	if rhoMax > rhoMaxMax {
		return nil, fmt.Errorf("road: rho_max (%v) must be less than or equal to rho_max_max (%v)", rhoMax, rhoMaxMax)
	}
	if len(initial) != n {
		return nil, fmt.Errorf("road: initial conditions must have length/dx = %d entries, got %d", n, len(initial))
	}

	r := &Road{
		length:      length,
		dx:          dx,
		n:           n,
		rhoMax:      rhoMax,
		rhoMaxMax:   rhoMaxMax,
		rhoCritical: rhoMax / 2,
		initial:     append([]float64(nil), initial...),
		density:     make([]float64, n),
		boundary:    boundary,
	}
	r.Reset()
	log.Debugf("road created: %d cells, dx=%v, boundary=%v", n, dx, boundary.Type)
	return r, nil
}

// Reset 重置道路状态
// 功能：将密度恢复为初始条件，清空边界缓存
// 说明：每个rollout开始时调用一次
func (r *Road) Reset() {
	copy(r.density, r.initial)
	r.boundaryLeft = 0
	r.boundaryRight = 0
}

// N 获取元胞数
func (r *Road) N() int {
	return r.n
}

// DX 获取元胞宽度
func (r *Road) DX() float64 {
	return r.dx
}

// Length 获取道路长度
func (r *Road) Length() float64 {
	return r.length
}

// RhoMax 获取运行最大密度
func (r *Road) RhoMax() float64 {
	return r.rhoMax
}

// Boundary 获取已解析的边界策略
func (r *Road) Boundary() Boundary {
	return r.boundary
}

// BoundaryLeft 获取左ghost cell缓存值
func (r *Road) BoundaryLeft() float64 {
	return r.boundaryLeft
}

// BoundaryRight 获取右ghost cell缓存值
func (r *Road) BoundaryRight() float64 {
	return r.boundaryRight
}

// Density 获取逐元胞密度
// 返回：当前密度数组的副本
// 说明：返回副本，调用方不能通过返回值修改内部状态
func (r *Road) Density() []float64 {
	return append([]float64(nil), r.density...)
}

// Equilibrium 计算单点的Greenshields平衡速度
// 功能：根据密度与当前限速计算平衡速度 v = vMax*(1-rho/rhoMax)^lambda
// 参数：rho-密度，vMax-当前限速
// 返回：平衡速度
// 说明：密度超过rhoMax时按解析模型得到负速度，刻意不做截断
func (r *Road) Equilibrium(rho, vMax float64) float64 {
	return vMax * math.Pow(1-rho/r.rhoMax, greenshieldsLambda)
}

// Speeds 计算逐元胞的Greenshields平衡速度
// 功能：对当前密度数组逐元胞求平衡速度
// 参数：vMax-当前限速
// 返回：逐元胞速度数组（新分配）
func (r *Road) Speeds(vMax float64) []float64 {
	v := make([]float64, r.n)
	for i, rho := range r.density {
		v[i] = r.Equilibrium(rho, vMax)
	}
	return v
}

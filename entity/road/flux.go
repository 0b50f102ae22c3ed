package road

// godunovFlux 计算Godunov数值通量
// 功能：按需求/供给构造法计算每个界面的数值通量
// 参数：rho-逐元胞密度（含首尾ghost cell），vMax-当前限速
// 返回：逐界面通量数组
// 算法说明：
// 1. 最大流量 qMax = rhoCritical * v(rhoCritical)
// 2. 需求 demand(rho) = rho*v(rho)（rho<rhoCritical时），否则qMax
// 3. 供给 supply(rho) = rho*v(rho)（rho>rhoCritical时），否则qMax
// 4. 供给取下游邻居的值，最右元胞复制自身供给作为其下游值
// 5. 通量 = min(demand, 下游供给)，即局部Riemann问题的熵解
func (r *Road) godunovFlux(rho []float64, vMax float64) []float64 {
	n := len(rho)
	qMax := r.rhoCritical * r.Equilibrium(r.rhoCritical, vMax)

	demand := make([]float64, n)
	supply := make([]float64, n)
	for i, x := range rho {
		q := x * r.Equilibrium(x, vMax)
		if x < r.rhoCritical {
			demand[i] = q
		} else {
			demand[i] = qMax
		}
		if x > r.rhoCritical {
			supply[i] = q
		} else {
			supply[i] = qMax
		}
	}

	f := make([]float64, n)
	for i := 0; i < n; i++ {
		// 供给左移一位（取下游邻居），最右端复制边缘值
		s := supply[n-1]
		if i+1 < n {
			s = supply[i+1]
		}
		f[i] = demand[i]
		if s < f[i] {
			f[i] = s
		}
	}
	return f
}

// Update 执行一次有限体积更新（时间上前向Euler，空间上一阶迎风）
// 功能：用Godunov通量差分推进密度一个时间步，然后按边界策略重建ghost cell
// 参数：dt-时间步长，vMax-当前限速
// 算法说明：
// 1. loop边界：先缓存更新前的rho[n-1]、rho[n-2]作为下一步的ghost来源
// 2. 计算通量f；左邻通量fm取f左移一位，最左界面复制f[0]（左端零梯度差分）
// 3. rho <- rho - (dt/dx)*(f - fm)
// 4. 按边界策略重建首尾ghost cell：
//   - loop：写入第1步缓存的更新前边缘值
//   - extend_both：ghost即更新后的边缘元胞，缓存之
//   - constant_both：写入配置的固定值
//
// 说明：一阶精度、无限制器，仅在CFL约束内稳定；密度可以合法地超过
// rhoMax（产生负平衡速度），不视为错误
func (r *Road) Update(dt, vMax float64) {
	n := r.n
	step := dt / r.dx

	// 环形边界需要更新前的边缘值
	if r.boundary.Type == BoundaryPeriodic {
		r.boundaryLeft = r.density[n-1]
		r.boundaryRight = r.density[n-2]
	}

	f := r.godunovFlux(r.density, vMax)

	next := make([]float64, n)
	next[0] = r.density[0] // fm[0] = f[0]，最左元胞通量差为零
	for i := 1; i < n; i++ {
		next[i] = r.density[i] - step*(f[i]-f[i-1])
	}

	switch r.boundary.Type {
	case BoundaryPeriodic:
		next[0] = r.boundaryLeft
		next[n-1] = r.boundaryRight
	case BoundaryExtrapolated:
		r.boundaryLeft = next[0]
		r.boundaryRight = next[n-1]
	case BoundaryFixed:
		r.boundaryLeft = r.boundary.Left
		r.boundaryRight = r.boundary.Right
		next[0] = r.boundary.Left
		next[n-1] = r.boundary.Right
	}

	r.density = next
}

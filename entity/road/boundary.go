package road

import (
	"fmt"

	"github.com/tsinghua-fib-lab/macroflow-sim-oss/utils/config"
)

// BoundaryType 边界策略类型
type BoundaryType int

const (
	BoundaryPeriodic     BoundaryType = iota // "loop"：环形道路，边界值由上一步的边缘值回绕
	BoundaryExtrapolated                     // "extend_both"：零梯度外推，边界值取更新后的边缘元胞
	BoundaryFixed                            // "constant_both"：Dirichlet边界，边界值固定为配置值
)

// 配置文件中各边界策略的名称
const (
	boundaryNameLoop       = "loop"
	boundaryNameExtendBoth = "extend_both"
	boundaryNameConstant   = "constant_both"
)

// Boundary 已解析的边界策略
// 功能：在构造时将带标签的边界配置解析为可直接分发的策略值
// 说明：Left/Right仅在BoundaryFixed时有意义；
// 解析一次后每步按Type分发，不再做形式检查
type Boundary struct {
	Type  BoundaryType // 策略类型
	Left  float64      // 左端固定密度（仅BoundaryFixed）
	Right float64      // 右端固定密度（仅BoundaryFixed）
}

// ParseBoundary 解析边界条件配置
// 功能：将配置中的带标签值解析为边界策略
// 参数：cfg-边界条件配置（字符串或单键映射形式）
// 返回：解析后的边界策略，不受支持的策略名返回配置错误
// 说明：不受支持的边界策略在此处直接报错，而不是运行期静默忽略
func ParseBoundary(cfg config.BoundaryConfig) (Boundary, error) {
	switch cfg.Type {
	case boundaryNameLoop:
		return Boundary{Type: BoundaryPeriodic}, nil
	case boundaryNameExtendBoth:
		return Boundary{Type: BoundaryExtrapolated}, nil
	case boundaryNameConstant:
		return Boundary{Type: BoundaryFixed, Left: cfg.Left, Right: cfg.Right}, nil
	default:
		return Boundary{}, fmt.Errorf(
			"road: unsupported boundary conditions %q (must be %q, %q or %q)",
			cfg.Type, boundaryNameLoop, boundaryNameExtendBoth, boundaryNameConstant,
		)
	}
}

// String 返回边界策略名称
func (t BoundaryType) String() string {
	switch t {
	case BoundaryPeriodic:
		return boundaryNameLoop
	case BoundaryExtrapolated:
		return boundaryNameExtendBoth
	case BoundaryFixed:
		return boundaryNameConstant
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// emission CSV的表头
var emissionHeader = []string{"run", "step", "time", "position", "density", "speed"}

// Emission 逐步仿真数据的CSV输出
// 功能：将每个（rollout，步，元胞）的密度与速度写入CSV文件
// 说明：position为元胞中心的位置坐标
type Emission struct {
	file *os.File
	w    *csv.Writer
}

// NewEmission 创建CSV输出
// 功能：创建（或截断）输出文件并写入表头
// 参数：path-输出文件路径
// 返回：初始化完成的CSV输出实例
func NewEmission(path string) (*Emission, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("output: failed to create emission file: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(emissionHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("output: failed to write emission header: %w", err)
	}
	log.Infof("writing emission to %s", path)
	return &Emission{file: f, w: w}, nil
}

// WriteStep 写入一个模拟步的数据
// 功能：为每个元胞写入一行（run, step, time, position, density, speed）
// 参数：run-rollout序号，step-步数，t-仿真时间，dx-元胞宽度，
// density/speed-逐元胞密度与速度
func (e *Emission) WriteStep(run, step int, t, dx float64, density, speed []float64) error {
	for i := range density {
		rec := []string{
			strconv.Itoa(run),
			strconv.Itoa(step),
			strconv.FormatFloat(t, 'g', -1, 64),
			strconv.FormatFloat((float64(i)+0.5)*dx, 'g', -1, 64),
			strconv.FormatFloat(density[i], 'g', -1, 64),
			strconv.FormatFloat(speed[i], 'g', -1, 64),
		}
		if err := e.w.Write(rec); err != nil {
			return fmt.Errorf("output: failed to write emission record: %w", err)
		}
	}
	return nil
}

// Close 关闭CSV输出
// 功能：刷新缓冲并关闭文件
func (e *Emission) Close() error {
	e.w.Flush()
	if err := e.w.Error(); err != nil {
		e.file.Close()
		return fmt.Errorf("output: failed to flush emission file: %w", err)
	}
	return e.file.Close()
}

package output_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/macroflow-sim-oss/output"
)

func TestEmission(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emission.csv")
	e, err := output.NewEmission(path)
	require.NoError(t, err)

	// test: 每步每元胞写一行
	require.NoError(t, e.WriteStep(0, 1, 0.5, 1, []float64{0.1, 0.2, 0.3}, []float64{0.975, 0.95, 0.925}))
	require.NoError(t, e.WriteStep(0, 2, 1.0, 1, []float64{0.1, 0.2, 0.3}, []float64{0.975, 0.95, 0.925}))
	require.NoError(t, e.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	// test: 表头加2步x3元胞共7行
	require.Len(t, records, 7)
	assert.Equal(t, []string{"run", "step", "time", "position", "density", "speed"}, records[0])

	// test: 第一行数据（元胞中心位置0.5）
	assert.Equal(t, []string{"0", "1", "0.5", "0.5", "0.1", "0.975"}, records[1])

	// test: 第二步第三个元胞（位置2.5）
	assert.Equal(t, []string{"0", "2", "1", "2.5", "0.3", "0.925"}, records[6])
}

func TestEmissionBadPath(t *testing.T) {
	// test: 目录不存在时报错
	_, err := output.NewEmission(filepath.Join(t.TempDir(), "no", "such", "dir", "emission.csv"))
	assert.Error(t, err)
}

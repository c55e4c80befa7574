package consolidate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mwiater/benchcsv/internal/benchdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunSingleFile(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "alpha-data", `{"benchmarks":[{"name":"sort","cpu_time":120},{"name":"search","cpu_time":45}]}`)

	summary, err := Run(Options{Dir: dir})
	require.NoError(t, err)
	assert.Len(t, summary.Succeeded(), 1)

	want := "Index,library,execution time,benchmark\n" +
		"0,alpha,120,sort\n" +
		"1,alpha,45,search\n"
	assert.Equal(t, want, readOutput(t, filepath.Join(dir, DefaultOutput)))
}

func TestRunTwoFilesContiguousIndex(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "beta-data", `{"benchmarks":[{"name":"sort","cpu_time":7},{"name":"scan","cpu_time":8},{"name":"hash","cpu_time":9}]}`)
	writeInput(t, dir, "alpha-data", `{"benchmarks":[{"name":"sort","cpu_time":120},{"name":"search","cpu_time":45}]}`)

	summary, err := Run(Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Rows())

	want := "Index,library,execution time,benchmark\n" +
		"0,alpha,120,sort\n" +
		"1,alpha,45,search\n" +
		"2,beta,7,sort\n" +
		"3,beta,8,scan\n" +
		"4,beta,9,hash\n"
	assert.Equal(t, want, readOutput(t, filepath.Join(dir, DefaultOutput)))
}

func TestRunMissingFieldsKeepRow(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "alpha-data", `{"benchmarks":[{"name":"sort"},{"cpu_time":3.5},{"name":null,"cpu_time":null}]}`)

	_, err := Run(Options{Dir: dir})
	require.NoError(t, err)

	want := "Index,library,execution time,benchmark\n" +
		"0,alpha,,sort\n" +
		"1,alpha,3.5,\n" +
		"2,alpha,,\n"
	assert.Equal(t, want, readOutput(t, filepath.Join(dir, DefaultOutput)))
}

func TestRunEmptyBenchmarks(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "alpha-data", `{"benchmarks":[]}`)

	summary, err := Run(Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Rows())
	assert.Equal(t, "Index,library,execution time,benchmark\n", readOutput(t, filepath.Join(dir, DefaultOutput)))
}

func TestRunNoFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := Run(Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "Index,library,execution time,benchmark\n", readOutput(t, filepath.Join(dir, DefaultOutput)))
}

func TestRunAbortsOnBadFile(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "alpha-data", `{"benchmarks":[{"name":"sort","cpu_time":1}]}`)
	writeInput(t, dir, "beta-data", `{"runs":[]}`)

	_, err := Run(Options{Dir: dir})
	require.Error(t, err)
	assert.ErrorIs(t, err, benchdata.ErrMissingBenchmarks)

	_, statErr := os.Stat(filepath.Join(dir, DefaultOutput))
	assert.True(t, os.IsNotExist(statErr), "output must not be written on abort")
}

func TestRunContinueOnError(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "alpha-data", `{"benchmarks":[{"name":"sort","cpu_time":1}]}`)
	writeInput(t, dir, "beta-data", `{not json`)
	writeInput(t, dir, "gamma-data", `{"benchmarks":[{"name":"scan","cpu_time":2}]}`)

	summary, err := Run(Options{Dir: dir, ContinueOnError: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, benchdata.ErrInvalidJSON)
	require.Len(t, summary.Failed(), 1)
	assert.Equal(t, filepath.Join(dir, "beta-data"), summary.Failed()[0].Input)

	want := "Index,library,execution time,benchmark\n" +
		"0,alpha,1,sort\n" +
		"1,gamma,2,scan\n"
	assert.Equal(t, want, readOutput(t, filepath.Join(dir, DefaultOutput)))
}

func TestRunCustomFieldAndOutput(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "alpha-data", `{"benchmarks":[{"name":"sort","cpu_time":1,"real_time":2}]}`)
	out := filepath.Join(t.TempDir(), "merged.csv")

	_, err := Run(Options{Dir: dir, Field: "real_time", Output: out})
	require.NoError(t, err)
	assert.Equal(t, "Index,library,execution time,benchmark\n0,alpha,2,sort\n", readOutput(t, out))
}

func TestRunIsRepeatable(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "alpha-data", `{"benchmarks":[{"name":"sort","cpu_time":120}]}`)
	writeInput(t, dir, "beta-data", `{"benchmarks":[{"name":"sort","cpu_time":90}]}`)

	_, err := Run(Options{Dir: dir})
	require.NoError(t, err)
	first := readOutput(t, filepath.Join(dir, DefaultOutput))

	_, err = Run(Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, first, readOutput(t, filepath.Join(dir, DefaultOutput)))
}

func TestBuildLibraryAndCount(t *testing.T) {
	a, err := benchdata.Parse([]byte(`{"benchmarks":[{"name":"x"},{"name":"y"}]}`))
	require.NoError(t, err)
	a.Name = "xsimd-data"
	b, err := benchdata.Parse([]byte(`{"benchmarks":[{"name":"z"}]}`))
	require.NoError(t, err)
	b.Name = "highway-data"

	rows := Build([]*benchdata.File{a, b}, benchdata.DefaultSuffix, DefaultField)
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, i, row.Index)
	}
	assert.Equal(t, "xsimd", rows[0].Library)
	assert.Equal(t, "xsimd", rows[1].Library)
	assert.Equal(t, "highway", rows[2].Library)
}

func TestRunNonFiniteExecutionTime(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "alpha-data", `{"benchmarks":[{"name":"BM_sort_cv","cpu_time":NaN},{"name":"BM_sort_mean","cpu_time":12}]}`)

	_, err := Run(Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "Index,library,execution time,benchmark\n"+
		"0,alpha,NaN,BM_sort_cv\n"+
		"1,alpha,12,BM_sort_mean\n", readOutput(t, filepath.Join(dir, DefaultOutput)))
}

package analyzer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanopore-tools/h5audit/internal/aggregate"
	"github.com/nanopore-tools/h5audit/internal/logging"
	"github.com/nanopore-tools/h5audit/internal/parser"
	"github.com/nanopore-tools/h5audit/internal/report"
)

// attr renders a scalar attribute the way h5dump prints it.
func attr(indent, name, value string) string {
	return fmt.Sprintf(`%[1]sATTRIBUTE "%[2]s" {
%[1]s   DATATYPE  H5T_STRING {
%[1]s      STRSIZE H5T_VARIABLE;
%[1]s      CSET H5T_CSET_UTF8;
%[1]s   }
%[1]s   DATASPACE  SCALAR
%[1]s   DATA {
%[1]s   (0): %[3]s
%[1]s   }
%[1]s}
`, indent, name, value)
}

func dumpFile(name string, body ...string) string {
	return fmt.Sprintf("HDF5 %q {\nGROUP \"/\" {\n%s}\n}\n", name, strings.Join(body, ""))
}

func writeFiles(t *testing.T, dumps ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, len(dumps))
	for i, d := range dumps {
		paths[i] = filepath.Join(dir, fmt.Sprintf("read%d.txt", i))
		require.NoError(t, os.WriteFile(paths[i], []byte(d), 0o644))
	}
	return paths
}

func run(t *testing.T, showValues bool, paths ...string) string {
	t.Helper()
	a := New(DefaultOptions(), logging.Discard())
	require.NoError(t, a.ScanFiles(paths))
	res := a.Result()

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, res.Tree, res.Classification, report.Options{ShowValues: showValues}))
	return buf.String()
}

func TestConstantAndVariableRootAttributes(t *testing.T) {
	paths := writeFiles(t,
		dumpFile("a.fast5", attr("   ", "sample_rate", "4000"), attr("   ", "read_id", `"abc"`)),
		dumpFile("b.fast5", attr("   ", "sample_rate", "4000"), attr("   ", "read_id", `"xyz"`)),
	)

	assert.Equal(t, "CONSTANT\nsample_rate\n\nVARIABLE\nread_id\n", run(t, false, paths...))
	assert.Equal(t, "CONSTANT\nsample_rate: 4000\n\nVARIABLE\nread_id\n", run(t, true, paths...))
}

func TestRepeatedReadGroupsCollapse(t *testing.T) {
	paths := writeFiles(t, dumpFile("multi.fast5",
		"   GROUP \"read_0001\" {\n"+attr("      ", "digitisation", "8192")+"   }\n",
		"   GROUP \"read_0002\" {\n"+attr("      ", "digitisation", "4096")+"   }\n",
	))

	a := New(DefaultOptions(), logging.Discard())
	require.NoError(t, a.ScanFiles(paths))
	res := a.Result()

	assert.True(t, res.Classification.IsVariable("digitisation"))
	assert.Equal(t, []string{"4096", "8192"}, res.Aggregator.Values("digitisation"))

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, res.Tree, res.Classification, report.Options{}))
	assert.Equal(t, "CONSTANT\nread_0001:\n\nVARIABLE\nread_0001:\n    digitisation\n", buf.String())
}

func TestUnclosedGroupStillReports(t *testing.T) {
	// "Broken" never closes, so "after" is recorded inside it.
	broken := "GROUP \"/\" {\n" +
		"   GROUP \"Broken\" {\n" +
		attr("      ", "inside", "1") +
		attr("   ", "after", "2") +
		"}\n"
	paths := writeFiles(t, broken)

	out := run(t, true, paths...)
	assert.Equal(t, "CONSTANT\nBroken:\n    inside: 1\n    after: 2\n\nVARIABLE\nBroken:\n", out)
}

func TestStructureComesFromFirstFileOnly(t *testing.T) {
	first := dumpFile("a.fast5", attr("   ", "x", "1"))
	second := dumpFile("b.fast5",
		attr("   ", "x", "2"),
		"   GROUP \"extra\" {\n"+attr("      ", "y", "1")+"   }\n",
	)
	paths := writeFiles(t, first, second)

	a := New(DefaultOptions(), logging.Discard())
	require.NoError(t, a.ScanFiles(paths))
	res := a.Result()

	assert.Equal(t, 2, res.Files)
	assert.Equal(t, 2, res.Tree.Len(), "root and x only")
	// y was aggregated even though it never entered the tree.
	assert.True(t, res.Classification.IsConstant("y"))
	assert.Equal(t, "CONSTANT\n\nVARIABLE\nx\n", run(t, false, paths...))
}

func TestLeafWithoutValueIsOmitted(t *testing.T) {
	signal := "   DATASET \"Signal\" {\n" +
		"      DATATYPE  H5T_STD_I16LE\n" +
		"      DATASPACE  SIMPLE { ( 4 ) / ( H5S_UNLIMITED ) }\n" +
		"      DATA {\n" +
		"      (0,0): 1, 2, 3, 4\n" +
		"      }\n" +
		"   }\n"
	paths := writeFiles(t, dumpFile("a.fast5", signal, attr("   ", "k", "v")))

	out := run(t, false, paths...)
	assert.NotContains(t, out, "Signal")
	assert.Equal(t, "CONSTANT\nk\n\nVARIABLE\n", out)
}

func TestSameNameAtDifferentDepthsSharesOneEntry(t *testing.T) {
	paths := writeFiles(t,
		dumpFile("a.fast5",
			attr("   ", "version", "1"),
			"   GROUP \"tracking_id\" {\n"+attr("      ", "version", "2")+"   }\n",
		),
	)

	out := run(t, false, paths...)
	assert.Equal(t, "CONSTANT\ntracking_id:\n\nVARIABLE\nversion\ntracking_id:\n    version\n", out)
}

func TestOutputIsDeterministic(t *testing.T) {
	paths := writeFiles(t,
		dumpFile("a.fast5", attr("   ", "a", "1"), attr("   ", "b", "1"), attr("   ", "c", "1")),
		dumpFile("b.fast5", attr("   ", "a", "1"), attr("   ", "b", "2"), attr("   ", "c", "3")),
	)

	first := run(t, true, paths...)
	for range 5 {
		assert.Equal(t, first, run(t, true, paths...))
	}
}

func TestMissingFileAborts(t *testing.T) {
	paths := writeFiles(t, dumpFile("a.fast5", attr("   ", "a", "1")))
	missing := filepath.Join(t.TempDir(), "missing.txt")

	a := New(DefaultOptions(), logging.Discard())
	err := a.ScanFiles(append(paths, missing))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), missing)
}

func TestMalformedLineAborts(t *testing.T) {
	paths := writeFiles(t, "GROUP \"/\" {\n\n}\n")

	err := New(DefaultOptions(), logging.Discard()).ScanFiles(paths)
	assert.ErrorIs(t, err, parser.ErrMalformedLine)

	var lineErr *parser.LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 2, lineErr.Line)
}

func TestValueBeforeLeafAborts(t *testing.T) {
	paths := writeFiles(t, "GROUP \"/\" {\n(0): 1\n}\n")

	err := New(DefaultOptions(), logging.Discard()).ScanFiles(paths)
	assert.ErrorIs(t, err, aggregate.ErrValueWithoutLeaf)
}

func TestScanReaderFromStdin(t *testing.T) {
	stdin := strings.NewReader(dumpFile("a.fast5", attr("   ", "a", "1")))
	a := New(Options{RepeatPrefix: "read_", Stdin: stdin}, logging.Discard())
	require.NoError(t, a.ScanFiles([]string{"-"}))

	res := a.Result()
	assert.Equal(t, 1, res.Files)
	assert.True(t, res.Classification.IsConstant("a"))
}

func TestSingleLineDatasetOfAnyLength(t *testing.T) {
	samples := strings.TrimSuffix(strings.Repeat("123, ", 300000), ", ")
	signal := "   DATASET \"Signal\" {\n" +
		"      DATATYPE  H5T_STD_I16LE\n" +
		"      DATASPACE  SIMPLE { ( 300000 ) / ( H5S_UNLIMITED ) }\n" +
		"      DATA {\n" +
		"      (0): " + samples + "\n" +
		"      }\n" +
		"   }\n"
	paths := writeFiles(t, dumpFile("big.fast5", signal))

	assert.Equal(t, "CONSTANT\nSignal\n\nVARIABLE\n", run(t, false, paths...))
}

func TestVerboseLogging(t *testing.T) {
	paths := writeFiles(t, dumpFile("a.fast5", attr("   ", "a", "1")))

	var logs bytes.Buffer
	a := New(DefaultOptions(), logging.New(&logs, true))
	require.NoError(t, a.ScanFiles(paths))
	a.Result()

	assert.Contains(t, logs.String(), `msg="structure recording stopped" reason="end of first file"`)
	assert.Contains(t, logs.String(), "depth=0")
	assert.Contains(t, logs.String(), `msg="scanned dump report"`)
	assert.Contains(t, logs.String(), "constant=1")
}

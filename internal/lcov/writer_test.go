package lcov

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	t.Run("should emit a complete per-file block", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)

		w.TestName("nightly")
		w.SourceFile("/src/main.py")
		w.FunctionLocation(0, 1, 2)
		w.FunctionActivity(0, 1, "f")
		w.LineData(1, 1, "")
		w.LineData(2, 1, "3A2BoAFT1WLV5mOj3rTpjA")
		w.BranchData(2, 0, 0, 1)
		w.BranchData(2, 0, 1, 0)
		w.CounterPair("LF", "LH", 2, 2)
		w.CounterPair("BRF", "BRH", 2, 1)
		w.CounterPair("FNF", "FNH", 1, 1)
		w.EndOfRecord()
		require.NoError(t, w.Flush())

		want := "TN:nightly\n" +
			"SF:/src/main.py\n" +
			"FNL:0,1,2\n" +
			"FNA:0,1,f\n" +
			"DA:1,1\n" +
			"DA:2,1,3A2BoAFT1WLV5mOj3rTpjA\n" +
			"BRDA:2,0,0,1\n" +
			"BRDA:2,0,1,0\n" +
			"LF:2\nLH:2\n" +
			"BRF:2\nBRH:1\n" +
			"FNF:1\nFNH:1\n" +
			"end_of_record\n"
		assert.Equal(t, want, buf.String())
	})

	t.Run("should write an empty test name as a bare TN record", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		w.TestName("")
		require.NoError(t, w.Flush())
		assert.Equal(t, "TN:\n", buf.String())
	})
}

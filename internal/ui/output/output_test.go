package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vpm/internal/ui/output"
)

func TestColorProfile(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile(), "NO_COLOR should force Ascii profile")

	t.Setenv("NO_COLOR", "")
	p := output.ColorProfile()
	assert.True(t, p >= termenv.TrueColor && p <= termenv.Ascii, "should return a valid profile")
}

func TestColorProfileANSI(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.ANSI, output.ColorProfileANSI())

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfileANSI())
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(&buf)
	require.NotNil(t, out)

	_, _ = out.WriteString("test")
	assert.Equal(t, "test", buf.String())
	assert.NotNil(t, output.New(nil))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, output.IsTerminal(&bytes.Buffer{}))
}

func TestTable_Plain(t *testing.T) {
	var buf bytes.Buffer
	tbl := output.NewTable(&buf, false, "NAME", "VERSION")
	tbl.Row("com.vrchat.base", "3.5.0")
	tbl.Row("com.vrchat.avatars", "3.5.0")

	require.NoError(t, tbl.Flush())
	assert.Equal(t, "com.vrchat.base\t3.5.0\ncom.vrchat.avatars\t3.5.0\n", buf.String())
	assert.Equal(t, 2, tbl.Len())
}

func TestTable_Styled(t *testing.T) {
	var buf bytes.Buffer
	tbl := output.NewTable(&buf, true, "NAME", "VERSION")
	tbl.Row("a", "1.0.0")
	tbl.Row("longer.name", "2.0.0")

	require.NoError(t, tbl.Flush())
	assert.Contains(t, buf.String(), "a            1.0.0\n")
	assert.Contains(t, buf.String(), "longer.name  2.0.0\n")
}

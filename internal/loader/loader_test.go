package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCSV(t *testing.T) {
	input := strings.Join([]string{
		"W_TEMP_SENSOR_5,B_DOOR_OPEN_1,Unnamed: 2",
		"21.5,1,x",
		"21.6,0,y",
		"21.7,1,z",
	}, "\n")

	src, err := FromCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"W_TEMP_SENSOR_5", "B_DOOR_OPEN_1", "Unnamed: 2"}, src.Headers())
	assert.Equal(t, 3, src.RowCount())

	col, ok := src.Column("W_TEMP_SENSOR_5")
	require.True(t, ok)
	assert.Equal(t, []string{"21.5", "21.6", "21.7"}, col)

	_, ok = src.Column("missing")
	assert.False(t, ok)

	assert.Equal(t, "utf-8", src.Encoding())
}

func TestFromCSVRaggedRows(t *testing.T) {
	input := strings.Join([]string{
		"a,b,c",
		"1,2",     // short row padded
		"4,5,6,7", // long row truncated
	}, "\n")

	src, err := FromCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, src.RowCount())

	c, _ := src.Column("c")
	assert.Equal(t, []string{"", "6"}, c)
}

func TestFromCSVDuplicateHeader(t *testing.T) {
	input := strings.Join([]string{
		"W_TEMP_SENSOR_5,B_DOOR_OPEN_1,W_TEMP_SENSOR_5",
		"21.5,1,21.9",
		"21.6,0,22.0",
	}, "\n")

	_, err := FromCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate header "W_TEMP_SENSOR_5"`)
	assert.Contains(t, err.Error(), "columns 1 and 3")
}

func TestFromCSVEmpty(t *testing.T) {
	_, err := FromCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestFromColumns(t *testing.T) {
	src := FromColumns([]string{"a", "b"}, map[string][]string{
		"a": {"1", "2", "3"},
		"b": {"x"},
	})
	assert.Equal(t, 3, src.RowCount())

	b, ok := src.Column("b")
	require.True(t, ok)
	assert.Equal(t, []string{"x", "", ""}, b)
}

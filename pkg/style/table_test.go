package style

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c9s/bollband/pkg/types"
)

func TestNewBandTable(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewBandTable(&buf, "BOLL", []types.BandPoint{
		{Timestamp: 1609459200000, Upper: 12, Middle: 10, Lower: 8},
		{Timestamp: 1609462800000, Upper: 13.5, Middle: 11, Lower: 8.5},
	}, NewPlainTableStyle())
	tbl.Render()

	out := buf.String()
	assert.Contains(t, out, "BOLL")
	assert.Contains(t, out, "2021-01-01 00:00")
	assert.Contains(t, out, "2021-01-01 01:00")
	assert.Contains(t, out, "12.0000")
	assert.Contains(t, out, "40.00")
	assert.Contains(t, strings.ToUpper(out), "POINTS")
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "2021-01-01 00:00", FormatTimestamp(1609459200000))
}

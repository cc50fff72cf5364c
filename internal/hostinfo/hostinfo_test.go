package hostinfo

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect_RuntimeFieldsAlwaysSet(t *testing.T) {
	info, _ := Detect()

	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.GOARCH, info.Architecture)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Positive(t, info.CPUThreads)
	assert.Positive(t, info.GOMAXPROCS)
}

func TestFormatRAM(t *testing.T) {
	tests := []struct {
		bytes    uint64
		expected string
	}{
		{0, "0.0 GB"},
		{1024 * 1024 * 1024, "1.0 GB"},
		{16 * 1024 * 1024 * 1024, "16.0 GB"},
		{1536 * 1024 * 1024, "1.5 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatRAM(tt.bytes))
		})
	}
}

func TestSummary_UnknownCPU(t *testing.T) {
	s := Info{OS: "linux", Architecture: "amd64", GoVersion: "go1.24"}.Summary()
	assert.True(t, strings.HasPrefix(s, "unknown CPU"), s)
	assert.Contains(t, s, "linux/amd64")
}

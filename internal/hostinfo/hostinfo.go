package hostinfo

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Info is the host fingerprint printed next to every report. Timings are
// only comparable between reports with the same fingerprint.
type Info struct {
	CPUModel     string `json:"cpu_model" yaml:"cpu_model"`
	CPUCores     int    `json:"cpu_cores" yaml:"cpu_cores"`
	CPUThreads   int    `json:"cpu_threads" yaml:"cpu_threads"`
	RAMBytes     uint64 `json:"ram_bytes" yaml:"ram_bytes"`
	OS           string `json:"os" yaml:"os"`
	Architecture string `json:"architecture" yaml:"architecture"`
	GoVersion    string `json:"go_version" yaml:"go_version"`
	GOMAXPROCS   int    `json:"gomaxprocs" yaml:"gomaxprocs"`
}

// Detect gathers what it can. Probe failures are joined into the returned
// error but the Info is still usable; runtime fields are always set.
func Detect() (Info, error) {
	info := Info{
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		GoVersion:    runtime.Version(),
		GOMAXPROCS:   runtime.GOMAXPROCS(0),
		CPUThreads:   runtime.NumCPU(),
	}

	var errs []error

	if cpus, err := cpu.Info(); err != nil {
		errs = append(errs, fmt.Errorf("cpu info: %w", err))
	} else if len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
	}

	if cores, err := cpu.Counts(false); err != nil {
		errs = append(errs, fmt.Errorf("cpu cores: %w", err))
	} else {
		info.CPUCores = cores
	}

	if threads, err := cpu.Counts(true); err == nil && threads > 0 {
		info.CPUThreads = threads
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		errs = append(errs, fmt.Errorf("memory: %w", err))
	} else {
		info.RAMBytes = vm.Total
	}

	return info, errors.Join(errs...)
}

// Summary is a one-line description for report captions
func (i Info) Summary() string {
	model := i.CPUModel
	if model == "" {
		model = "unknown CPU"
	}
	return fmt.Sprintf("%s (%d cores / %d threads), %s RAM, %s/%s, %s",
		model, i.CPUCores, i.CPUThreads, FormatRAM(i.RAMBytes), i.OS, i.Architecture, i.GoVersion)
}

// FormatRAM formats bytes as GB with one decimal
func FormatRAM(bytes uint64) string {
	return fmt.Sprintf("%.1f GB", float64(bytes)/(1024*1024*1024))
}

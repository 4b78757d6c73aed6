package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sys/cpu"

	"github.com/agbru/natcalc/internal/sysmon"
)

// CurrentProfileVersion changes whenever the profile layout does.
const CurrentProfileVersion = 1

// Profile is a saved bench report together with the host it ran on.
type Profile struct {
	ProfileVersion int       `json:"profile_version"`
	NumCPU         int       `json:"num_cpu"`
	GOARCH         string    `json:"goarch"`
	GOOS           string    `json:"goos"`
	GoVersion      string    `json:"go_version"`
	CPUFeatures    []string  `json:"cpu_features"`
	CPUPercent     float64   `json:"cpu_percent"`
	MemPercent     float64   `json:"mem_percent"`
	BenchedAt      time.Time `json:"benched_at"`
	Report         Report    `json:"report"`
}

// NewProfile describes the current host.
func NewProfile() *Profile {
	load := sysmon.Sample()
	return &Profile{
		ProfileVersion: CurrentProfileVersion,
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		CPUFeatures:    CPUFeatures(),
		CPUPercent:     load.CPUPercent,
		MemPercent:     load.MemPercent,
		BenchedAt:      time.Now(),
	}
}

// CPUFeatures lists the instruction-set extensions relevant to multiword
// arithmetic that the host supports.
func CPUFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasADX, "adx")
		add(cpu.X86.HasBMI2, "bmi2")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasAVX512F, "avx512f")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasATOMICS, "atomics")
		add(cpu.ARM64.HasSVE, "sve")
	}
	return features
}

// IsValid reports whether the profile was produced by this build on this
// kind of host.
func (p *Profile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.GOOS == runtime.GOOS
}

// IsStale reports whether the profile is older than maxAge.
func (p *Profile) IsStale(maxAge time.Duration) bool {
	return p == nil || time.Since(p.BenchedAt) > maxAge
}

func (p *Profile) String() string {
	features := "none"
	if len(p.CPUFeatures) > 0 {
		features = strings.Join(p.CPUFeatures, ",")
	}
	return fmt.Sprintf("bench profile v%d: %s/%s, %d CPUs, features %s, %d measurements, taken %s",
		p.ProfileVersion, p.GOOS, p.GOARCH, p.NumCPU, features,
		len(p.Report.Measurements), p.BenchedAt.Format(time.RFC3339))
}

// SaveProfile writes the profile as indented JSON, creating parent
// directories as needed.
func (p *Profile) SaveProfile(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("bench: create profile directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("bench: encode profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("bench: write profile: %w", err)
	}
	return nil
}

// LoadProfile reads a profile written by SaveProfile.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bench: read profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("bench: decode profile %s: %w", path, err)
	}
	return &p, nil
}

// DefaultProfilePath is ~/.natcalc_bench.json, or a file in the working
// directory when the home directory is unknown.
func DefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".natcalc_bench.json"
	}
	return filepath.Join(home, ".natcalc_bench.json")
}

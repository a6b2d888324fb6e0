package blazingsql

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/blazingdb/blazingsql/cluster"
)

// Config of a session.  The zero value is not usable, start from
// DefaultConfig or LoadConfig.
type Config struct {
	// Connection is the orchestrator address, host:port
	Connection string `json:"connection" yaml:"connection"`
	// Bridge names the control connection implementation, see
	// bridge.Register; nothing here registers the default "blazing"
	Bridge          string `json:"bridge" yaml:"bridge"`
	RunOrchestrator bool   `json:"run_orchestrator" yaml:"run_orchestrator"`
	RunEngine       bool   `json:"run_engine" yaml:"run_engine"`
	RunAlgebra      bool   `json:"run_algebra" yaml:"run_algebra"`
	// NetworkInterface the engine uses to exchange data with other nodes
	NetworkInterface string `json:"network_interface" yaml:"network_interface"`
	// LeaveProcessesRunning never terminate the processes this session starts
	LeaveProcessesRunning bool          `json:"leave_processes_running" yaml:"leave_processes_running"`
	ReadyTimeout          time.Duration `json:"ready_timeout" yaml:"ready_timeout"`
}

// DefaultConfig a standalone session on this host starting every process
func DefaultConfig() *Config {
	return &Config{
		Connection:       "localhost:8889",
		Bridge:           "blazing",
		RunOrchestrator:  true,
		RunEngine:        true,
		RunAlgebra:       true,
		NetworkInterface: "lo",
		ReadyTimeout:     cluster.DefaultReadyTimeout,
	}
}

// LoadConfig reads a yaml (or json) file over the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses yaml (or json) over the defaults
func ParseConfig(data []byte) (*Config, error) {
	conf := DefaultConfig()
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return conf, nil
}

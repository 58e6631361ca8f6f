package config

import (
	"gopkg.in/yaml.v3"
)

// PipelineConfig is the root structure for a pipeline definition (e.g. from
// YAML).
type PipelineConfig struct {
	Name string `yaml:"name"`

	// LogOnHalt: "" (disabled) | "debug" | "info" | "warn" | "error".
	LogOnHalt string `yaml:"log_on_halt"`

	Stages []StageRef `yaml:"stages"`
}

// StageRef is a single stage entry: either a plain name or name + options +
// guard. In YAML, a stage can be written as:
//
//	- fetch
//	- name: authorize
//	  options: {realm: admin}
//	  when: 'assigns.role == "admin"'
type StageRef struct {
	Name string `yaml:"name"`

	// Options are passed to the stage (or to the component's Init) at build
	// time.
	Options map[string]any `yaml:"options"`

	// When is an HCL guard expression over the connection. Empty means the
	// stage always runs.
	When string `yaml:"when"`
}

// UnmarshalYAML allows a stage to be a string (stage name only) or a struct.
func (s *StageRef) UnmarshalYAML(value *yaml.Node) error {
	var nameOnly string
	if err := value.Decode(&nameOnly); err == nil {
		s.Name = nameOnly
		return nil
	}
	type raw StageRef
	return value.Decode((*raw)(s))
}

// ParsePipelineConfig parses YAML bytes into a single PipelineConfig.
func ParsePipelineConfig(data []byte) (*PipelineConfig, error) {
	var cfg PipelineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MultiPipelineConfig is the root structure for a file that defines multiple
// pipelines. Top-level key is "pipelines"; each value is a pipeline.
type MultiPipelineConfig struct {
	Pipelines map[string]PipelineConfig `yaml:"pipelines"`
}

// ParseMultiPipelineConfig parses YAML bytes that contain a "pipelines" map
// from name to pipeline config.
func ParseMultiPipelineConfig(data []byte) (*MultiPipelineConfig, error) {
	var cfg MultiPipelineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

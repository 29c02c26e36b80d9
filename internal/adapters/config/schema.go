package config

import (
	"gopkg.in/yaml.v3"
)

// Workfile represents the structure of the modelcache.work.yaml file.
type Workfile struct {
	Version  string                 `yaml:"version"`
	Cache    CacheDTO               `yaml:"cache"`
	Projects map[string]*ProjectDTO `yaml:"projects"`
}

// CacheDTO represents the cache settings of the workfile.
type CacheDTO struct {
	Dir         string `yaml:"dir"`
	Codec       string `yaml:"codec"`
	Compression *bool  `yaml:"compression"`
	MetricsFile string `yaml:"metrics_file"`
}

// ProjectDTO represents a project declaration in the workfile.
// A plain string is shorthand for the directory.
type ProjectDTO struct {
	Dir       string   `yaml:"dir"`
	DependsOn []string `yaml:"dependsOn"`
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (p *ProjectDTO) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&p.Dir)
	}
	type plain ProjectDTO
	return node.Decode((*plain)(p))
}

// ProjectFileDTO represents the structure of a project.yaml file.
type ProjectFileDTO struct {
	Description string              `yaml:"description"`
	Inputs      []string            `yaml:"inputs"`
	Env         []string            `yaml:"env"`
	Tasks       map[string]*TaskDTO `yaml:"tasks"`
}

// TaskDTO represents a task definition in a project file.
type TaskDTO struct {
	Cmd       []string `yaml:"cmd"`
	DependsOn []string `yaml:"dependsOn"`
}

package utils

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// composeFile is the subset of a compose file the doctor cares about.
type composeFile struct {
	Services map[string]composeService `yaml:"services"`
}

type composeService struct {
	ContainerName string `yaml:"container_name"`
}

// ComposeContainerNames returns the expected container name of every service
// declared in the compose file: container_name when set, the service name
// otherwise. Names come back sorted for deterministic report order.
func ComposeContainerNames(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cf composeFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse compose file %s: %v", path, err)
	}
	if len(cf.Services) == 0 {
		return nil, fmt.Errorf("compose file %s declares no services", path)
	}

	names := make([]string, 0, len(cf.Services))
	for svc, props := range cf.Services {
		if props.ContainerName != "" {
			names = append(names, props.ContainerName)
		} else {
			names = append(names, svc)
		}
	}
	sort.Strings(names)
	return names, nil
}

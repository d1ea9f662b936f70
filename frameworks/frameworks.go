// Package frameworks maps project types to their code generation backends.
package frameworks

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/modelgen/framework"
	"github.com/ridoystarlord/modelgen/sequelize"
)

var registry = map[framework.ProjectType]framework.Framework{
	framework.NPM: sequelize.Framework{},
}

// ForProjectType returns the framework generating projectType projects.
func ForProjectType(projectType framework.ProjectType) (framework.Framework, bool) {
	f, ok := registry[projectType]
	return f, ok
}

// Default is the framework used when no project type is configured.
func Default() framework.Framework {
	return registry[framework.NPM]
}

// ParseProjectType accepts a project type name in any case. An empty name
// selects the default.
func ParseProjectType(s string) (framework.ProjectType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Default().ProjectType(), nil
	}
	for _, pt := range framework.ProjectTypes {
		if strings.EqualFold(string(pt), s) {
			return pt, nil
		}
	}
	return "", fmt.Errorf("unknown project type %q", s)
}

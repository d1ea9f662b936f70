// Package framework defines the contract every code generation backend
// implements.
package framework

import (
	"github.com/ridoystarlord/modelgen/database"
	"github.com/ridoystarlord/modelgen/files"
	"github.com/ridoystarlord/modelgen/schema"
)

// ProjectType identifies the kind of project a framework emits.
type ProjectType string

const (
	NPM ProjectType = "NPM"
)

// ProjectTypes lists the known project types.
var ProjectTypes = []ProjectType{NPM}

// GenerateArgs is the input of Framework.Generate.
type GenerateArgs struct {
	Schema    schema.Schema
	DbOptions database.DbOptions
}

// Framework turns a schema into a source tree and maps generated paths back
// to models.
type Framework interface {
	DisplayName() string
	ProjectType() ProjectType

	// Generate must only be called with a schema that passed validation.
	Generate(args GenerateArgs) files.Item

	// DefaultFile is the path of the file to show first.
	DefaultFile(root files.Item) (string, bool)
	// DefaultModelFile is the path of the file defining model.
	DefaultModelFile(model schema.Model, root files.Item) (string, bool)
	// ModelFromPath returns the model a generated path belongs to.
	ModelFromPath(path string, s schema.Schema) (schema.Model, bool)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/ridoystarlord/modelgen/database"
	"github.com/ridoystarlord/modelgen/debug"
	"github.com/ridoystarlord/modelgen/files"
	"github.com/ridoystarlord/modelgen/framework"
	"github.com/ridoystarlord/modelgen/frameworks"
	"github.com/ridoystarlord/modelgen/loader"
	"github.com/ridoystarlord/modelgen/plan"
	"github.com/ridoystarlord/modelgen/schema"
	"github.com/ridoystarlord/modelgen/validator"
)

// project is a loaded schema together with the options and framework
// used to generate it.
type project struct {
	schema    schema.Schema
	dbOptions database.DbOptions
	framework framework.Framework
}

func loadProject() (*project, error) {
	s, err := loader.Load(appFs, cfg.Schema, schema.NewFactory())
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", cfg.Schema, err)
	}
	opts, err := cfg.DbOptions()
	if err != nil {
		return nil, err
	}
	pt, err := frameworks.ParseProjectType(cfg.ProjectType)
	if err != nil {
		return nil, err
	}
	fw, ok := frameworks.ForProjectType(pt)
	if !ok {
		return nil, fmt.Errorf("no framework for project type %s", pt)
	}
	debug.Debug("schema loaded", "name", s.Name, "models", len(s.Models),
		"dialect", opts.SQLDialect, "framework", fw.DisplayName())
	return &project{schema: s, dbOptions: opts, framework: fw}, nil
}

func (p *project) validate() *validator.ValidationResult {
	return validator.Report(p.schema, validator.ValidateSchemaWith(p.schema, nil, p.dbOptions))
}

// generate validates the schema and renders its tree.
func (p *project) generate() (files.Item, error) {
	if result := p.validate(); !result.Valid {
		return nil, fmt.Errorf("schema has %d validation errors, run modelgen validate for details", len(result.Errors))
	}
	root := p.framework.Generate(framework.GenerateArgs{Schema: p.schema, DbOptions: p.dbOptions})
	debug.Debug("project generated", "items", len(files.Paths(root)))
	return root, nil
}

// buildPlan validates the schema and resolves it into tables and migrations.
func (p *project) buildPlan() (plan.Plan, error) {
	if result := p.validate(); !result.Valid {
		return plan.Plan{}, fmt.Errorf("schema has %d validation errors, run modelgen validate for details", len(result.Errors))
	}
	return plan.Build(p.schema, p.dbOptions), nil
}

// mustProject loads the project or exits like the other commands do.
func mustProject() *project {
	p, err := loadProject()
	if err != nil {
		fail("Loading schema", err)
	}
	return p
}

func fail(context string, err error) {
	fmt.Printf("❌ %s: %v\n", context, err)
	os.Exit(1)
}

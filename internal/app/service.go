package app

import (
	"lmtk/internal/adapters"
	"lmtk/internal/core"
	"lmtk/internal/ports"
)

type Service struct {
	Loader    ports.SchemaLoaderPort
	Writer    ports.SchemaWriterPort
	Lists     ports.SchemaListPort
	Validator ports.ValidatorPort
	Output    ports.OutputPort
	Combiner  core.Combiner
	Subsetter core.Subsetter
	Verifier  func(dialect adapters.SQLDialect, dsn string) (ports.DDLVerifierPort, error)
}

func NewService() Service {
	files := adapters.NewSchemaFileAdapter()
	return Service{
		Loader:    files,
		Writer:    files,
		Lists:     adapters.NewSchemaListAdapter(),
		Validator: adapters.NewRuleValidator(),
		Output:    adapters.NewOutputFileAdapter(),
		Combiner:  core.NewCombiner(),
		Subsetter: core.NewSubsetter(),
		Verifier: func(dialect adapters.SQLDialect, dsn string) (ports.DDLVerifierPort, error) {
			return adapters.NewSQLVerifier(dialect, dsn)
		},
	}
}

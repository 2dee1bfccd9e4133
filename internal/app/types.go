package app

import (
	"lmtk/internal/core"
	"lmtk/internal/types"
)

// SourceOptions control how every command reads its input schemas.
type SourceOptions struct {
	// Validate runs the rule validator on each loaded schema.
	Validate       bool
	ResolveImports bool
}

type ValidateRequest struct {
	SchemaPath     string
	ResolveImports bool
}

type ValidateResult struct {
	Schema      string
	Diagnostics []types.Diagnostic
}

// Valid reports whether validation found no ERROR diagnostics.
func (r ValidateResult) Valid() bool {
	return !types.HasErrors(r.Diagnostics)
}

type SummaryRequest struct {
	SchemaPath string
	Sections   []string
	Detailed   bool
	OutputPath string
	Source     SourceOptions
}

type SummaryResult struct {
	Summary     core.Summary
	Diagnostics []types.Diagnostic
	OutputPath  string
}

type CombineRequest struct {
	Schemas    string
	InputType  string
	OutputPath string
	Strict     bool
	Source     SourceOptions
}

type CombineResult struct {
	Inputs      []string
	OutputPath  string
	Document    types.Document
	Diagnostics []types.DocumentDiagnostics
}

type SubsetRequest struct {
	SchemaPath       string
	Classes          []string
	IncludeInherited bool
	OutputPath       string
	Source           SourceOptions
}

type SubsetResult struct {
	OutputPath string
	Requested  []string
	Skipped    []string
	Classes    []string
	Slots      []string
	Types      []string
	Enums      []string
	SubsetTags []string
}

// FormatAll exports every format next to the output path.
const FormatAll = "all"

type ExportRequest struct {
	SchemaPath string
	Format     string
	OutputPath string
	SQLDialect string
	RDFFormat  string
	Verify     bool
	VerifyDSN  string
	Source     SourceOptions
}

type ExportedFile struct {
	Format   string
	Path     string
	Verified bool
}

type ExportResult struct {
	Files []ExportedFile
}

package ports

// OutputPort writes the artifacts a command produces: exported schemas
// and JSON reports.  Parent directories are created as needed.
type OutputPort interface {
	WriteArtifact(path string, data []byte) error
	WriteJSON(path string, value any) error
}

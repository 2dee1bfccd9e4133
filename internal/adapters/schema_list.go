package adapters

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"lmtk/internal/shared"
)

const (
	InputTypeAuto = "auto"
	InputTypeFile = "file"
	InputTypeList = "list"
)

// SchemaListAdapter expands the schema list argument of merge and concat.
// A list file holds one path per line; blank lines and lines starting with
// # are skipped.  Relative paths in a list file stay relative to the
// working directory.
type SchemaListAdapter struct{}

func NewSchemaListAdapter() SchemaListAdapter {
	return SchemaListAdapter{}
}

func (a SchemaListAdapter) Resolve(spec string, inputType string) ([]string, error) {
	spec = strings.TrimSpace(spec)
	switch inputType {
	case "", InputTypeAuto:
		if strings.Contains(spec, ",") || isSchemaPath(spec) {
			return a.fromList(spec)
		}
		paths, err := a.fromFile(spec)
		if err == nil {
			return paths, nil
		}
		if errbuilder.CodeOf(err) == errbuilder.CodeNotFound {
			log.Debug().Str("spec", spec).Msg("schema list file not found, treating as path list")
			return a.fromList(spec)
		}
		return nil, err
	case InputTypeFile:
		return a.fromFile(spec)
	case InputTypeList:
		return a.fromList(spec)
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid input type " + inputType + ": must be one of auto, file or list")
	}
}

func (a SchemaListAdapter) fromList(spec string) ([]string, error) {
	paths := shared.SplitList(spec)
	if len(paths) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no valid schema paths found in comma-separated list")
	}
	return paths, nil
}

func (a SchemaListAdapter) fromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		code := errbuilder.CodeInternal
		if errors.Is(err, fs.ErrNotExist) {
			code = errbuilder.CodeNotFound
		}
		return nil, errbuilder.New().
			WithCode(code).
			WithMsg("schema list file not found: " + path).
			WithCause(err)
	}
	defer file.Close()

	var paths []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read schema list file: " + path).
			WithCause(err)
	}
	if len(paths) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no valid schema paths found in file: " + path)
	}
	return paths, nil
}

// isSchemaPath reports whether spec names a schema file itself rather than
// a list file.
func isSchemaPath(spec string) bool {
	switch strings.ToLower(filepath.Ext(spec)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

package adapters

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"lmtk/internal/ports"
	"lmtk/internal/types"
)

// SchemaFileAdapter loads and saves schema YAML files.
type SchemaFileAdapter struct{}

func NewSchemaFileAdapter() SchemaFileAdapter {
	return SchemaFileAdapter{}
}

func (a SchemaFileAdapter) Load(ctx context.Context, path string, opts ports.LoadOptions) (types.Document, error) {
	doc, err := a.read(path)
	if err != nil {
		return types.Document{}, err
	}
	if opts.ResolveImports {
		if err := a.resolveImports(ctx, &doc, path); err != nil {
			return types.Document{}, err
		}
	}
	log.Ctx(ctx).Debug().
		Str("path", path).
		Str("schema", doc.Name).
		Int("sections", doc.Sections.Len()).
		Msg("schema loaded")
	return doc, nil
}

func (a SchemaFileAdapter) read(path string) (types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read schema file: " + path).
			WithCause(err)
	}
	doc, err := types.DecodeDocument(path, data)
	if err != nil {
		return types.Document{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse schema file: " + path).
			WithCause(err)
	}
	return doc, nil
}

// resolveImports copies the entity sections of every local import into doc.
// Imports are not followed transitively.
func (a SchemaFileAdapter) resolveImports(ctx context.Context, doc *types.Document, path string) error {
	node, ok := doc.Metadata(types.KeyImports)
	if !ok {
		return nil
	}
	var imports types.StringList
	if err := node.Decode(&imports); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("imports must be a list in " + path).
			WithCause(err)
	}
	dir := filepath.Dir(path)
	for _, entry := range imports {
		if !isLocalImport(entry) {
			log.Ctx(ctx).Warn().Str("import", entry).Msg("skipping remote import")
			continue
		}
		target := filepath.Join(dir, entry)
		if filepath.Ext(target) == "" {
			target += ".yaml"
		}
		if _, err := os.Stat(target); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("import file not found: " + target).
				WithCause(err)
		}
		imported, err := a.read(target)
		if err != nil {
			return err
		}
		for _, section := range types.EntitySections {
			incoming, ok := imported.Section(section)
			if !ok || incoming.Kind != types.SectionKindEntity || incoming.Elements.Len() == 0 {
				continue
			}
			existing, ok := doc.Section(section)
			if !ok || existing.Kind != types.SectionKindEntity {
				existing = types.NewEntitySection(nil, types.EmptyFormNone)
				doc.Sections.Set(section, existing)
			}
			incoming.Elements.Range(func(name string, element *types.Element) bool {
				existing.Elements.Set(name, element)
				return true
			})
		}
		log.Ctx(ctx).Debug().Str("import", target).Msg("import resolved")
	}
	return nil
}

// isLocalImport reports whether an import names a file next to the schema
// rather than a URL or a CURIE such as linkml:types.
func isLocalImport(entry string) bool {
	if entry == "" || strings.HasPrefix(entry, "http") {
		return false
	}
	return !strings.Contains(entry, ":")
}

func (a SchemaFileAdapter) Save(ctx context.Context, doc types.Document, path string) error {
	data, err := types.EncodeDocument(doc)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode schema").
			WithCause(err)
	}
	if err := writeFile(path, data); err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(data)).Msg("schema saved")
	return nil
}

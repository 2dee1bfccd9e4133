package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"lmtk/internal/policies"
	"lmtk/internal/shared"
	"lmtk/internal/types"
)

// CombineInput is one loaded document together with the diagnostics the
// validator produced for it.
type CombineInput struct {
	Document    types.Document
	Diagnostics []types.Diagnostic
}

type CombineOptions struct {
	// Strict aborts the whole combination on the first ERROR diagnostic of
	// any input.  Otherwise diagnostics are only reported back.
	Strict bool
}

type CombineResult struct {
	Document    types.Document
	Diagnostics []types.DocumentDiagnostics
}

// Combiner merges or concatenates schema documents.  The first input is
// the base: its section order and empty-value spelling shape the output.
type Combiner struct{}

func NewCombiner() Combiner {
	return Combiner{}
}

// Merge folds every later document into the base.  Same-named elements are
// merged attribute by attribute with the later document winning.
func (c Combiner) Merge(ctx context.Context, inputs []CombineInput, opts CombineOptions) (CombineResult, error) {
	return c.combine(ctx, inputs, opts, policies.CollisionMerge)
}

// Concat adds every later document's elements to the base.  Same-named
// elements are kept side by side, the later one renamed with the stem of
// its source.
func (c Combiner) Concat(ctx context.Context, inputs []CombineInput, opts CombineOptions) (CombineResult, error) {
	return c.combine(ctx, inputs, opts, policies.CollisionRename)
}

func (c Combiner) combine(ctx context.Context, inputs []CombineInput, opts CombineOptions, mode string) (CombineResult, error) {
	if len(inputs) < 2 {
		return CombineResult{}, insufficientInputsError(len(inputs))
	}
	reports, err := collectDiagnostics(ctx, inputs, opts)
	if err != nil {
		return CombineResult{}, err
	}

	base := inputs[0].Document
	template := CaptureStructure(base)
	sections := base.Clone().Sections

	for index, input := range inputs[1:] {
		stem := sourceStem(input.Document, index+1)
		assert.NotEmpty(ctx, stem, "combine source stem must be set")
		var err error
		input.Document.Sections.Range(func(name string, incoming *types.Section) bool {
			existing, ok := sections.Get(name)
			if !ok {
				sections.Set(name, incoming.Clone())
				return true
			}
			switch incoming.Kind {
			case types.SectionKindMetadata:
				existing.Value = policies.MergeMetadata(existing.Value, incoming.Value)
			case types.SectionKindEntity:
				if mode == policies.CollisionMerge {
					err = mergeElements(ctx, name, existing, incoming)
				} else {
					err = concatElements(ctx, name, existing, incoming, stem)
				}
			case types.SectionKindSubsets:
				if mode == policies.CollisionMerge {
					mergeSubsets(existing, incoming)
				} else {
					err = concatSubsets(ctx, existing, incoming, stem)
				}
			}
			return err == nil
		})
		if err != nil {
			return CombineResult{}, err
		}
	}

	applySubsetForm(template, base, sections)
	sections.Range(func(name string, section *types.Section) bool {
		applyElementForms(template, name, section)
		return true
	})

	out := types.Document{
		Source:   base.Source,
		Name:     base.Name,
		ID:       base.ID,
		Sections: reassemble(template, sections),
	}
	log.Ctx(ctx).Debug().
		Str("mode", mode).
		Int("inputs", len(inputs)).
		Int("classes", out.Classes().Len()).
		Int("slots", out.Slots().Len()).
		Msg("schemas combined")
	return CombineResult{Document: out, Diagnostics: reports}, nil
}

// collectDiagnostics groups diagnostics per input.  In strict mode the
// first ERROR aborts before any output is built; otherwise every finding is
// logged as a warning and passed through.
func collectDiagnostics(ctx context.Context, inputs []CombineInput, opts CombineOptions) ([]types.DocumentDiagnostics, error) {
	reports := make([]types.DocumentDiagnostics, 0, len(inputs))
	for _, input := range inputs {
		if opts.Strict {
			if diagnostic, found := types.FirstError(input.Diagnostics); found {
				return nil, validationFailedError(input.Document.Source, diagnostic.Message)
			}
		}
		for _, diagnostic := range input.Diagnostics {
			log.Ctx(ctx).Warn().
				Str("source", input.Document.Source).
				Str("severity", string(diagnostic.Severity)).
				Msg(diagnostic.Message)
		}
		reports = append(reports, types.DocumentDiagnostics{
			Source:      input.Document.Source,
			Diagnostics: input.Diagnostics,
		})
	}
	return reports, nil
}

func mergeElements(ctx context.Context, section string, existing, incoming *types.Section) error {
	var err error
	incoming.Elements.Range(func(name string, element *types.Element) bool {
		current, ok := existing.Elements.Get(name)
		if !ok {
			existing.Elements.Set(name, element.Clone())
			return true
		}
		attrs, merged := policies.MergeAttributes(current.Attrs, element.Attrs)
		if !merged {
			log.Ctx(ctx).Debug().
				Str("section", section).
				Str("element", name).
				Msg("skipping merge of non-mapping element")
			return true
		}
		var updated *types.Element
		updated, err = types.NewElement(current.Kind, attrs)
		if err != nil {
			err = errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("merged %s.%s is not a valid element", section, name)).
				WithCause(err)
			return false
		}
		existing.Elements.Set(name, updated)
		return true
	})
	return err
}

func concatElements(ctx context.Context, section string, existing, incoming *types.Section, stem string) error {
	var err error
	incoming.Elements.Range(func(name string, element *types.Element) bool {
		target := name
		if existing.Elements.Has(name) {
			target, err = policies.RenameOnCollision(name, stem, existing.Elements.Has)
			if err != nil {
				return false
			}
			log.Ctx(ctx).Debug().
				Str("section", section).
				Str("element", name).
				Str("renamed", target).
				Msg("renamed colliding element")
		}
		existing.Elements.Set(target, element.Clone())
		return true
	})
	return err
}

func mergeSubsets(existing, incoming *types.Section) {
	incoming.Subsets.Range(func(name string, marker *yaml.Node) bool {
		if !existing.Subsets.Has(name) {
			existing.Subsets.Set(name, types.CloneNode(marker))
		}
		return true
	})
}

func concatSubsets(ctx context.Context, existing, incoming *types.Section, stem string) error {
	var err error
	incoming.Subsets.Range(func(name string, marker *yaml.Node) bool {
		target := name
		if existing.Subsets.Has(name) {
			target, err = policies.RenameOnCollision(name, stem, existing.Subsets.Has)
			if err != nil {
				return false
			}
			log.Ctx(ctx).Debug().Str("subset", name).Str("renamed", target).Msg("renamed colliding subset")
		}
		existing.Subsets.Set(target, types.CloneNode(marker))
		return true
	})
	return err
}

// applySubsetForm spells every subset entry the way the base spelled the
// first empty subset it declares.  Subsets carry no data, so only the
// cosmetic form is at stake.
// TODO: keep each subset's own spelling instead of the base's first one.
func applySubsetForm(template types.StructureTemplate, base types.Document, sections *types.OrderedMap[*types.Section]) {
	section, ok := sections.Get(types.SectionSubsets)
	if !ok || section.Kind != types.SectionKindSubsets {
		return
	}
	form, ok := template.FirstEmptyForm(types.SectionSubsets, base.Subsets().Keys())
	if !ok {
		return
	}
	for _, name := range section.Subsets.Keys() {
		section.Subsets.Set(name, types.NewEmptyNode(form))
	}
}

// sourceStem names a non-base input for collision renames: the stem of its
// source path, else its schema name, else its position.
func sourceStem(doc types.Document, index int) string {
	if stem := shared.FileStem(doc.Source); stem != "" {
		return stem
	}
	if doc.Name != "" {
		return doc.Name
	}
	return fmt.Sprintf("schema%d", index+1)
}

// Package pipeline provides the export pipeline for cinegraph.
//
// This package implements the resolve → encode → write pipeline used by the
// CLI commands. By centralizing this logic, every command produces the same
// documents from the same graph.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Resolve: validate the cinema graph and build the resolved view
//  2. Encode: marshal the view once per requested format (json, xml, dot, svg)
//  3. Write: store each artifact atomically under the output directory
//
// The graph is resolved exactly once per run, so every format is encoded
// from the same snapshot and the documents agree with each other. If resolve
// or any encoder fails, no file is written.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Formats:   []string{"json", "xml"},
//	    OutputDir: "out",
//	}
//	result, err := runner.Execute(ctx, c, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := runner.Write(ctx, result, opts)
package pipeline

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"

	cerrors "github.com/matzehuels/cinegraph/pkg/errors"
	"github.com/matzehuels/cinegraph/pkg/render/nodelink"
	"github.com/matzehuels/cinegraph/pkg/resolve"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultBaseName is the file name, without extension, of written artifacts.
const DefaultBaseName = "cinema"

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// DefaultFormats are the document formats written when none are requested.
var DefaultFormats = []string{FormatJSON, FormatXML}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatXML:  true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for an export run.
type Options struct {
	// Formats lists the artifacts to produce, in order. Duplicates are dropped.
	Formats []string

	// OutputDir is the directory artifacts are written to. Empty means the
	// current directory.
	OutputDir string

	// BaseName is the artifact file name without extension.
	BaseName string

	// Strict requires every comment author to be a registered user.
	Strict bool

	// Detailed adds metadata to node labels in dot and svg output.
	Detailed bool

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// View is the resolved graph every artifact was encoded from.
	View *resolve.Cinema

	// Formats lists the produced formats in request order.
	Formats []string

	// Artifacts contains encoded documents keyed by format.
	Artifacts map[string][]byte

	// Stats contains counts and timings.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Movies      int
	Users       int
	Comments    int
	ResolveTime time.Duration
	EncodeTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return cerrors.New(cerrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, xml, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// lowercasing each entry. It does not validate.
func ParseFormats(s string) []string {
	parts := lo.Map(strings.Split(s, ","), func(p string, _ int) string {
		return strings.ToLower(strings.TrimSpace(p))
	})
	return lo.Compact(parts)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	o.Formats = lo.Uniq(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.BaseName == "" {
		o.BaseName = DefaultBaseName
	}
	if strings.ContainsAny(o.BaseName, `/\`) || o.BaseName == "." || o.BaseName == ".." {
		return cerrors.New(cerrors.ErrCodeInvalidPath, "base name %q must be a plain file name", o.BaseName)
	}
	o.validated = true
	return nil
}

// ResolveOptions returns the resolver options implied by o.
func (o *Options) ResolveOptions() []resolve.Option {
	if o.Strict {
		return []resolve.Option{resolve.WithStrictAuthors()}
	}
	return nil
}

// NodelinkOptions returns the diagram options implied by o.
func (o *Options) NodelinkOptions() nodelink.Options {
	return nodelink.Options{Detailed: o.Detailed}
}

// Path returns the file path an artifact of the given format is written to.
func (o *Options) Path(format string) string {
	base := o.BaseName
	if base == "" {
		base = DefaultBaseName
	}
	return filepath.Join(o.OutputDir, base+"."+format)
}

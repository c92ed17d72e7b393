package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cinegraph/pkg/cinema"
	cerrors "github.com/matzehuels/cinegraph/pkg/errors"
	cio "github.com/matzehuels/cinegraph/pkg/io"
	"github.com/matzehuels/cinegraph/pkg/observability"
	"github.com/matzehuels/cinegraph/pkg/render/nodelink"
	"github.com/matzehuels/cinegraph/pkg/resolve"
)

// Runner executes export pipelines.
//
// The Runner is stateless except for its logger; it does not keep results.
// Multiple goroutines can use the same Runner with different graphs, as long
// as no graph is mutated while it is being resolved.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger discards all output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger}
}

// Execute runs the resolve → encode stages and returns the encoded artifacts.
// Nothing is written to disk; see [Runner.Write].
func (r *Runner) Execute(ctx context.Context, c *cinema.Cinema, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Formats:   opts.Formats,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}

	// Stage 1: Resolve
	resolveStart := time.Now()
	v, err := r.Resolve(ctx, c, opts)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	result.View = v
	result.Stats = statsOf(v)
	result.Stats.ResolveTime = time.Since(resolveStart)
	r.Logger.Debug("resolved graph",
		"cinema", v.Name,
		"movies", result.Stats.Movies,
		"users", result.Stats.Users,
		"comments", result.Stats.Comments)

	// Stage 2: Encode
	encodeStart := time.Now()
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := r.Encode(ctx, v, format, opts)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", format, err)
		}
		result.Artifacts[format] = data
	}
	result.Stats.EncodeTime = time.Since(encodeStart)

	r.Logger.Info("encoded documents",
		"formats", opts.Formats,
		"duration", result.Stats.EncodeTime)

	return result, nil
}

// Resolve validates c and builds its resolved view, firing pipeline hooks.
func (r *Runner) Resolve(ctx context.Context, c *cinema.Cinema, opts Options) (*resolve.Cinema, error) {
	name := ""
	if c != nil {
		name = c.Name
	}
	hooks := observability.Pipeline()
	hooks.OnResolveStart(ctx, name)

	start := time.Now()
	v, err := resolve.Resolve(c, opts.ResolveOptions()...)
	var stats observability.GraphStats
	if v != nil {
		s := statsOf(v)
		stats = observability.GraphStats{Movies: s.Movies, Users: s.Users, Comments: s.Comments}
	}
	hooks.OnResolveComplete(ctx, name, stats, time.Since(start), err)
	return v, err
}

// Encode marshals an already resolved view in one format.
func (r *Runner) Encode(ctx context.Context, v *resolve.Cinema, format string, opts Options) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnEncodeStart(ctx, format)

	start := time.Now()
	data, err := encode(ctx, v, format, opts)
	hooks.OnEncodeComplete(ctx, format, len(data), time.Since(start), err)
	return data, err
}

func encode(ctx context.Context, v *resolve.Cinema, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return cio.MarshalJSON(v)
	case FormatXML:
		return cio.MarshalXML(v)
	case FormatDOT:
		return []byte(nodelink.ToDOT(v, opts.NodelinkOptions())), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(v, opts.NodelinkOptions()))
	default:
		return nil, ValidateFormat(format)
	}
}

// Write stores each artifact of result under opts.OutputDir in format order
// and returns the written paths. Each file is replaced atomically; if a
// write fails, files written before it are kept and the error is returned
// with the paths written so far.
func (r *Runner) Write(ctx context.Context, result *Result, opts Options) ([]string, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	var paths []string
	for _, format := range result.Formats {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		data, ok := result.Artifacts[format]
		if !ok {
			return paths, cerrors.New(cerrors.ErrCodeInternal, "no %s artifact in result", format)
		}
		path := opts.Path(format)
		err := cio.WriteFile(path, data)
		observability.Output().OnWrite(ctx, path, len(data), err)
		if err != nil {
			return paths, err
		}
		r.Logger.Debug("wrote artifact", "path", path, "bytes", len(data))
		paths = append(paths, path)
	}
	return paths, nil
}

func statsOf(v *resolve.Cinema) Stats {
	s := Stats{Movies: len(v.Catalog), Users: len(v.Users)}
	for _, ref := range v.Catalog {
		if m, ok := ref.Record(); ok {
			s.Comments += len(m.Comments)
		}
	}
	return s
}

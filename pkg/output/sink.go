package output

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	googleopt "google.golang.org/api/option"
	"golang.org/x/xerrors"
)

const gcsScheme = "gs://"

// ParseGCSPath splits "gs://bucket/object" into its bucket and object names
func ParseGCSPath(p string) (bucket, object string, ok bool) {
	if !strings.HasPrefix(p, gcsScheme) {
		return "", "", false
	}
	rest := strings.TrimPrefix(p, gcsScheme)
	slash := strings.Index(rest, "/")
	if slash <= 0 || slash == len(rest)-1 {
		return "", "", false
	}
	return rest[:slash], rest[slash+1:], true
}

// Writer receives a finished render. Close publishes the output; Abort
// discards it so a failed render leaves nothing behind.
type Writer interface {
	io.WriteCloser
	Abort() error
}

// Open returns a writer for the render output at p. Paths of the form
// gs://bucket/object are written to Cloud Storage; anything else is a
// local file, whose parent directories are created as needed. Local output
// is staged in a temporary file next to p and only appears at p on Close.
func Open(ctx context.Context, p string) (Writer, error) {
	tracer := otel.Tracer("go-pathtracer/output")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "output.Open", trace.WithAttributes(attribute.String("path", p)))
	defer span.End()

	if strings.HasPrefix(p, gcsScheme) {
		bucket, object, ok := ParseGCSPath(p)
		if !ok {
			return nil, xerrors.Errorf("malformed GCS path %q, want gs://bucket/object", p)
		}
		return openGCS(ctx, bucket, object)
	}

	dir := filepath.Dir(p)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, xerrors.Errorf("while creating output directory %q: %w", dir, err)
		}
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(p)+".tmp-*")
	if err != nil {
		return nil, xerrors.Errorf("while creating output file: %w", err)
	}
	return &fileWriter{File: f, path: p}, nil
}

// fileWriter renames its temporary file into place on Close
type fileWriter struct {
	*os.File
	path string
}

func (w *fileWriter) Close() error {
	if err := w.File.Close(); err != nil {
		os.Remove(w.File.Name())
		return xerrors.Errorf("while closing output file: %w", err)
	}
	if err := os.Chmod(w.File.Name(), 0644); err != nil {
		os.Remove(w.File.Name())
		return xerrors.Errorf("while setting output file mode: %w", err)
	}
	if err := os.Rename(w.File.Name(), w.path); err != nil {
		os.Remove(w.File.Name())
		return xerrors.Errorf("while moving output into place: %w", err)
	}
	return nil
}

func (w *fileWriter) Abort() error {
	w.File.Close()
	if err := os.Remove(w.File.Name()); err != nil && !os.IsNotExist(err) {
		return xerrors.Errorf("while removing partial output: %w", err)
	}
	return nil
}

// gcsWriter closes its client once the object upload completes. Cancelling
// the upload context before Close keeps the object from being created.
type gcsWriter struct {
	*storage.Writer
	client *storage.Client
	cancel context.CancelFunc
}

func (w *gcsWriter) Close() error {
	defer w.client.Close()
	defer w.cancel()
	if err := w.Writer.Close(); err != nil {
		return xerrors.Errorf("while closing object writer: %w", err)
	}
	return nil
}

func (w *gcsWriter) Abort() error {
	defer w.client.Close()
	w.cancel()
	// Close reports the cancellation; the upload is discarded either way
	w.Writer.Close()
	return nil
}

// gcsClientOptions limits the client to the read-write scope uploads need
func gcsClientOptions() []googleopt.ClientOption {
	return []googleopt.ClientOption{googleopt.WithScopes(storage.ScopeReadWrite)}
}

func openGCS(ctx context.Context, bucket, object string) (Writer, error) {
	client, err := storage.NewClient(ctx, gcsClientOptions()...)
	if err != nil {
		return nil, xerrors.Errorf("while creating GCS client: %w", err)
	}

	uploadCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	w := client.Bucket(bucket).Object(object).NewWriter(uploadCtx)
	switch FormatForPath(object) {
	case FormatPPM:
		w.ContentType = "image/x-portable-pixmap"
	default:
		w.ContentType = "image/png"
	}
	return &gcsWriter{Writer: w, client: client, cancel: cancel}, nil
}

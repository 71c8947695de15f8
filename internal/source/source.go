// Package source opens the project dataset from a local path or an S3
// object and hands it to ingestion as a row source.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/ppiankov/floodspectre/internal/project"
)

// ErrUnsupportedScheme is returned for input URIs other than local paths,
// file:// and s3://.
var ErrUnsupportedScheme = errors.New("unsupported input scheme")

// Format is the tabular encoding of an input.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Target types recorded in the manifest.
const (
	TypeFile = "file"
	TypeS3   = "s3"
)

// FormatOf picks the format from the URI's extension. Anything that is not
// .xlsx is read as CSV.
func FormatOf(uri string) Format {
	if strings.EqualFold(path.Ext(uri), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// Input is an opened dataset.
type Input struct {
	URI    string
	Type   string
	Format Format
	Body   io.ReadCloser
}

// Rows wraps the body in the row source matching its format.
func (in *Input) Rows() (project.RowSource, error) {
	switch in.Format {
	case FormatXLSX:
		return project.NewXLSXRows(in.Body)
	default:
		return project.NewCSVRows(in.Body)
	}
}

// Close releases the underlying body.
func (in *Input) Close() error {
	return in.Body.Close()
}

// Opener resolves input URIs.
type Opener struct {
	Profile string
	Region  string

	// NewS3 builds the S3 client on first use. Defaults to NewS3Client.
	NewS3 func(ctx context.Context, profile, region string) (S3API, error)
}

// Open opens uri for reading. Local paths and file:// URIs are read from
// disk, s3://bucket/key from S3.
func (o *Opener) Open(ctx context.Context, uri string) (*Input, error) {
	scheme, rest := splitScheme(uri)
	switch scheme {
	case "", "file":
		f, err := os.Open(rest)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", rest, err)
		}
		return &Input{URI: uri, Type: TypeFile, Format: FormatOf(rest), Body: f}, nil

	case "s3":
		bucket, key, err := parseS3Path(rest)
		if err != nil {
			return nil, err
		}
		newS3 := o.NewS3
		if newS3 == nil {
			newS3 = NewS3Client
		}
		client, err := newS3(ctx, o.Profile, o.Region)
		if err != nil {
			return nil, err
		}
		body, err := GetObject(ctx, client, bucket, key)
		if err != nil {
			return nil, err
		}
		return &Input{URI: uri, Type: TypeS3, Format: FormatOf(key), Body: body}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}

func splitScheme(uri string) (scheme, rest string) {
	i := strings.Index(uri, "://")
	if i < 0 {
		return "", uri
	}
	return strings.ToLower(uri[:i]), uri[i+3:]
}

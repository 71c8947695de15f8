package commands

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/ppiankov/floodspectre/internal/source"
)

// enhanceError wraps an error with context and suggestions for common input
// and output issues.
func enhanceError(action string, err error) error {
	msg := err.Error()

	var hint string
	switch {
	case errors.Is(err, fs.ErrNotExist):
		hint = "Input not found. Pass the dataset path as an argument or set input in .floodspectre.yaml"
	case errors.Is(err, fs.ErrPermission):
		hint = "Permission denied. Check read access on the input and write access on --output-dir"
	case errors.Is(err, source.ErrUnsupportedScheme):
		hint = "Use a local path, file:///path or s3://bucket/key"
	case strings.Contains(msg, "NoCredentialProviders") || strings.Contains(msg, "failed to retrieve credentials"):
		hint = "Configure AWS credentials: set AWS_PROFILE, AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY, or run 'aws configure'"
	case strings.Contains(msg, "ExpiredToken"):
		hint = "AWS session token expired. Refresh credentials or run 'aws sso login'"
	case strings.Contains(msg, "AccessDenied"):
		hint = "Insufficient permissions. Apply the IAM policy from 'floodspectre init' to your role/user"
	case strings.Contains(msg, "NoSuchBucket"):
		hint = "Bucket does not exist. Check the bucket name and --region"
	case strings.Contains(msg, "NoSuchKey"):
		hint = "Object not found. Check the key in the s3:// URI"
	case strings.Contains(msg, "RequestExpired"):
		hint = "Request expired. Check system clock synchronization"
	case strings.Contains(msg, "context deadline exceeded"):
		hint = "Timed out. Increase --timeout"
	}

	if hint != "" {
		return fmt.Errorf("%s: %w\n  hint: %s", action, err, hint)
	}
	return fmt.Errorf("%s: %w", action, err)
}

// computeTargetHash generates a SHA256 hash for the input URI.
func computeTargetHash(inputType, uri string) string {
	input := fmt.Sprintf("type:%s,uri:%s", inputType, uri)
	h := sha256.Sum256([]byte(input))
	return fmt.Sprintf("sha256:%x", h)
}

package source

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// mockS3Client implements S3API for testing.
type mockS3Client struct {
	objects map[string]string // "bucket/key" -> body
	getErr  error
	calls   int
}

func newMockClient() *mockS3Client {
	return &mockS3Client{objects: make(map[string]string)}
}

func (m *mockS3Client) GetObject(_ context.Context, input *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	m.calls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	body, ok := m.objects[aws.ToString(input.Bucket)+"/"+aws.ToString(input.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewBufferString(body)),
		ContentLength: aws.Int64(int64(len(body))),
	}, nil
}

func (m *mockS3Client) opener() *Opener {
	return &Opener{
		NewS3: func(context.Context, string, string) (S3API, error) { return m, nil },
	}
}

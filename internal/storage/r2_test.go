package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	in   *s3.PutObjectInput
	body string
	err  error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, _ := io.ReadAll(in.Body)
	f.in, f.body = in, string(b)
	return &s3.PutObjectOutput{}, nil
}

var testConfig = Config{
	Endpoint:      "https://acct.r2.cloudflarestorage.com",
	AccessKey:     "ak",
	SecretKey:     "sk",
	Bucket:        "kitchen",
	PublicBaseURL: "https://cdn.example.com/",
}

func TestPut(t *testing.T) {
	fake := &fakeS3{}
	client := &R2Client{client: fake, cfg: testConfig}

	url, err := client.Put(context.Background(), "kitchen-prep/2026-10-18/a.json", strings.NewReader("[]"), "application/json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if url != "https://cdn.example.com/kitchen-prep/2026-10-18/a.json" {
		t.Errorf("unexpected url %q", url)
	}
	if aws.ToString(fake.in.Bucket) != "kitchen" || aws.ToString(fake.in.ContentType) != "application/json" {
		t.Errorf("unexpected put input: bucket=%s type=%s", aws.ToString(fake.in.Bucket), aws.ToString(fake.in.ContentType))
	}
	if fake.body != "[]" {
		t.Errorf("unexpected body %q", fake.body)
	}
}

func TestPut_Error(t *testing.T) {
	client := &R2Client{client: &fakeS3{err: errors.New("denied")}, cfg: testConfig}

	if _, err := client.Put(context.Background(), "k", strings.NewReader(""), "text/plain"); err == nil {
		t.Fatal("expected error")
	}
}

func TestConfigFromEnv(t *testing.T) {
	for _, k := range []string{"R2_ENDPOINT", "R2_ACCESS_KEY", "R2_SECRET_KEY", "R2_BUCKET_NAME", "R2_PUBLIC_BASE_URL"} {
		t.Setenv(k, "")
	}
	if _, ok := ConfigFromEnv(); ok {
		t.Fatal("empty env must not be complete")
	}

	t.Setenv("R2_ENDPOINT", "https://e")
	t.Setenv("R2_ACCESS_KEY", "a")
	t.Setenv("R2_SECRET_KEY", "s")
	t.Setenv("R2_BUCKET_NAME", "b")
	t.Setenv("R2_PUBLIC_BASE_URL", "https://p")
	if _, ok := ConfigFromEnv(); !ok {
		t.Fatal("full env must be complete")
	}

	if _, err := NewR2Client(context.Background(), Config{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

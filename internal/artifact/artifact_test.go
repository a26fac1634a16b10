package artifact

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	headErr error
	created []string
	puts    []string
}

func (f *fakeS3) HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) CreateBucket(ctx context.Context, in *s3.CreateBucketInput, opts ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.created = append(f.created, *in.Bucket)
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, *in.Key)
	return &s3.PutObjectOutput{}, nil
}

func TestSaveReport_Local(t *testing.T) {
	dir := t.TempDir()
	s := NewLocal(dir)

	path, err := s.SaveReport("run-1", "### Plan\n")
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	if !strings.Contains(path, "run-1") || !strings.HasSuffix(path, ".md") {
		t.Errorf("report path = %q", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved report: %v", err)
	}
	if string(content) != "### Plan\n" {
		t.Errorf("saved content = %q", content)
	}
}

func TestSaveReport_MirrorsToS3(t *testing.T) {
	fake := &fakeS3{}
	s := &Store{dir: t.TempDir(), s3: fake, bucket: "bio-reports"}

	if _, err := s.SaveReport("run-2", "report body"); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	if len(fake.puts) != 1 || !strings.HasPrefix(fake.puts[0], "reports/") {
		t.Errorf("puts = %v, want one reports/ key", fake.puts)
	}
}

func TestEnsureBucket(t *testing.T) {
	t.Run("existing bucket", func(t *testing.T) {
		fake := &fakeS3{}
		s := &Store{s3: fake, bucket: "bio-reports", region: "ap-southeast-1"}
		if err := s.ensureBucket(context.Background()); err != nil {
			t.Fatalf("ensureBucket: %v", err)
		}
		if len(fake.created) != 0 {
			t.Errorf("created buckets = %v, want none", fake.created)
		}
	})

	t.Run("missing bucket is created", func(t *testing.T) {
		fake := &fakeS3{headErr: errors.New("NotFound")}
		s := &Store{s3: fake, bucket: "bio-reports", region: "ap-southeast-1"}
		if err := s.ensureBucket(context.Background()); err != nil {
			t.Fatalf("ensureBucket: %v", err)
		}
		if len(fake.created) != 1 || fake.created[0] != "bio-reports" {
			t.Errorf("created buckets = %v", fake.created)
		}
	})
}

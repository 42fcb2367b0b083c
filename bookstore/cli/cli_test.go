package cli_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/bookstore/app"
	"github.com/Astemirdum/bookstore-service/bookstore/cli"
	"github.com/Astemirdum/bookstore-service/pkg/stable"
	"github.com/Astemirdum/bookstore-service/pkg/stable/s3backup"
)

type fakeS3 struct {
	objects map[string][]byte
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

type env struct {
	pages *stable.MemoryStore
	s3    *fakeS3
}

func (e *env) deps() cli.Deps {
	return cli.Deps{
		Open: func(context.Context) (*app.Storage, error) {
			return &app.Storage{Pages: e.pages}, nil
		},
		Backup: func(context.Context) (*s3backup.Backup, error) {
			return s3backup.New(e.s3, s3backup.Config{Bucket: "bkt", Prefix: "snap"}, zap.NewNop()), nil
		},
		Log: zap.NewNop(),
	}
}

func run(t *testing.T, d cli.Deps, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := cli.NewRootCmd(d)
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_Customers(t *testing.T) {
	e := &env{pages: stable.NewMemoryStore()}

	_, err := run(t, e.deps(), "customers", "list")
	require.EqualError(t, err, "NotFound: No customers found")

	out, err := run(t, e.deps(), "customers", "create", "--username", "root", "--role", "Admin")
	require.NoError(t, err)
	require.Contains(t, out, `"root"`)

	_, err = run(t, e.deps(), "customers", "create", "--username", "root")
	require.EqualError(t, err, "Error: Customer already exists")

	out, err = run(t, e.deps(), "customers", "list")
	require.NoError(t, err)
	var customers []struct {
		ID       uint64 `json:"id"`
		Username string `json:"username"`
	}
	require.NoError(t, jsoniter.Unmarshal([]byte(out), &customers))
	require.Len(t, customers, 1)
	require.Equal(t, uint64(1), customers[0].ID)

	_, err = run(t, e.deps(), "books", "list")
	require.EqualError(t, err, "NotFound: No books found")
}

func TestCLI_Regions(t *testing.T) {
	e := &env{pages: stable.NewMemoryStore()}
	_, err := run(t, e.deps(), "customers", "create", "--username", "root", "--role", "Admin")
	require.NoError(t, err)

	out, err := run(t, e.deps(), "regions")
	require.NoError(t, err)
	var report struct {
		Customers int              `json:"customers"`
		LastID    uint64           `json:"lastId"`
		Persisted map[string]int64 `json:"persistedBytes"`
	}
	require.NoError(t, jsoniter.Unmarshal([]byte(out), &report))
	require.Equal(t, 1, report.Customers)
	require.Equal(t, uint64(1), report.LastID)
	require.Len(t, report.Persisted, 4)
	require.Equal(t, int64(stable.PageSize), report.Persisted["3"])
}

func TestCLI_BackupRestore(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	src := &env{pages: stable.NewMemoryStore(), s3: fake}
	_, err := run(t, src.deps(), "customers", "create", "--username", "root", "--role", "Admin")
	require.NoError(t, err)

	_, err = run(t, src.deps(), "backup")
	require.NoError(t, err)
	require.Len(t, fake.objects, 4)

	dst := &env{pages: stable.NewMemoryStore(), s3: fake}
	_, err = run(t, dst.deps(), "restore")
	require.NoError(t, err)

	out, err := run(t, dst.deps(), "customers", "list")
	require.NoError(t, err)
	require.Contains(t, out, `"root"`)

	_, err = run(t, dst.deps(), "restore")
	require.ErrorIs(t, err, s3backup.ErrRegionNotEmpty)
}

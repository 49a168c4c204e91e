package snapshot

import (
	"context"
	"errors"
	"testing"

	"audience-sync/core/storage/mocks"
	"audience-sync/core/table"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSource struct {
	rows  map[string][]string
	err   error
	kinds []string
}

func (s *stubSource) Read(_ context.Context, kind string, store table.Store, _ []string) (int, error) {
	s.kinds = append(s.kinds, kind)
	if s.err != nil {
		return 0, s.err
	}
	for _, id := range s.rows[kind] {
		row := store.NewRow()
		row.Set("id", id)
		if store.AddWithIdentifier(row, id) == table.Abort {
			break
		}
	}
	return len(s.rows[kind]), nil
}

func TestService_Take(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)
	src := &stubSource{rows: map[string][]string{"member": {"m1", "m2"}}}
	svc := NewService(src, fixedStore(m), 0, zap.NewNop())

	m.On("PutObject", ctx, "bucket", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	res, err := svc.Take(ctx, "member")
	require.NoError(t, err)
	assert.Equal(t, "member", res.Kind)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "snapshots/member/20260301T113000.000000005Z.json", res.Object)
	m.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_TakePrunes(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)
	src := &stubSource{rows: map[string][]string{"list": {"L1"}}}
	svc := NewService(src, fixedStore(m), 1, nil)

	m.On("PutObject", ctx, "bucket", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	m.On("ListObjects", ctx, "bucket", mock.Anything).Return(objects("snapshots/list/1.json", "snapshots/list/2.json"))
	m.On("RemoveObjects", ctx, "bucket", mock.Anything, mock.Anything).Return(nil)

	res, err := svc.Take(ctx, "list")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pruned)
}

func TestService_TakeReadError(t *testing.T) {
	m := new(mocks.Client)
	svc := NewService(&stubSource{err: errors.New("boom")}, fixedStore(m), 0, nil)

	_, err := svc.Take(context.Background(), "member")
	assert.ErrorContains(t, err, "read member: boom")
	m.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_TakeAll(t *testing.T) {
	ctx := context.Background()
	m := new(mocks.Client)
	src := &stubSource{rows: map[string][]string{"list": {"L1"}, "member": {"m1"}}}
	svc := NewService(src, fixedStore(m), 0, nil)

	m.On("PutObject", ctx, "bucket", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	res, err := svc.TakeAll(ctx, []string{"list", "member"})
	require.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Equal(t, []string{"list", "member"}, src.kinds)
}

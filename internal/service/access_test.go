package service

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"docflow/internal/model"
	"docflow/internal/storage"
	storeMocks "docflow/internal/storage/mocks"
	"docflow/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "access-test-secret"

func newAccessFixture() (*storeMocks.MockStorage, AccessService) {
	mStore := new(storeMocks.MockStorage)
	codec := token.NewCodec([]byte(testSecret))
	svc := NewAccessService(mStore, codec, "http://localhost:8080", time.Hour)
	return mStore, svc
}

func TestAccessService_IssueGrant(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mStore, svc := newAccessFixture()
		mStore.On("Stat", ctx, storage.BucketWord, "D1").Return(storage.ObjectInfo{
			Key:         "D1",
			Size:        10,
			ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			Metadata:    map[string]string{storage.MetaOriginalFilename: "report.docx"},
		}, nil)

		res, err := svc.IssueGrant(ctx, model.KindWord, "D1")
		require.NoError(t, err)

		assert.Equal(t, "docx", res.Document.FileType)
		assert.Equal(t, "report.docx", res.Document.Title)
		assert.Equal(t, "http://localhost:8080/documents/word/D1/content", res.Document.URL)
		assert.True(t, res.Document.Permissions.Edit)
		assert.True(t, res.Document.Permissions.Review)
		assert.NotEmpty(t, res.Token)
		assert.Contains(t, res.Document.Key, "doc_")
		assert.NotEqual(t, "D1", res.Document.Key)

		// TTL invariant: expiresAt = issuedAt + 1h, visible inside the token.
		claims, err := token.NewCodec([]byte(testSecret)).Decode(res.Token)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

		mStore.AssertExpectations(t)
	})

	t.Run("re-issuance produces distinct grants", func(t *testing.T) {
		mStore, svc := newAccessFixture()
		mStore.On("Stat", ctx, storage.BucketExcel, "E1").Return(storage.ObjectInfo{Key: "E1"}, nil).Twice()

		first, err := svc.IssueGrant(ctx, model.KindExcel, "E1")
		require.NoError(t, err)
		second, err := svc.IssueGrant(ctx, model.KindExcel, "E1")
		require.NoError(t, err)

		assert.NotEqual(t, first.Document.Key, second.Document.Key)
		assert.Equal(t, first.Document.URL, second.Document.URL)
	})

	t.Run("missing id", func(t *testing.T) {
		_, svc := newAccessFixture()
		_, err := svc.IssueGrant(ctx, model.KindWord, "")
		assert.ErrorIs(t, err, ErrIDRequired)
	})

	t.Run("invalid kind", func(t *testing.T) {
		_, svc := newAccessFixture()
		_, err := svc.IssueGrant(ctx, model.DocumentKind("pdf"), "D1")
		assert.ErrorIs(t, err, ErrInvalidKind)
	})

	t.Run("document absent", func(t *testing.T) {
		mStore, svc := newAccessFixture()
		mStore.On("Stat", ctx, storage.BucketWord, "missing").
			Return(storage.ObjectInfo{}, storage.ErrObjectNotFound)

		_, err := svc.IssueGrant(ctx, model.KindWord, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAccessService_Redeem(t *testing.T) {
	ctx := context.Background()
	content := []byte("ten bytes!")

	issue := func(t *testing.T, mStore *storeMocks.MockStorage, svc AccessService, id string) *GrantResult {
		t.Helper()
		mStore.On("Stat", ctx, storage.BucketWord, id).Return(storage.ObjectInfo{
			Key:         id,
			Size:        int64(len(content)),
			ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			Metadata:    map[string]string{storage.MetaOriginalFilename: "report.docx"},
		}, nil).Once()
		res, err := svc.IssueGrant(ctx, model.KindWord, id)
		require.NoError(t, err)
		return res
	}

	t.Run("issue then redeem yields identical bytes", func(t *testing.T) {
		mStore, svc := newAccessFixture()
		res := issue(t, mStore, svc, "D1")

		mStore.On("Get", ctx, storage.BucketWord, "D1").Return(
			io.NopCloser(bytes.NewReader(content)),
			storage.ObjectInfo{
				Key:         "D1",
				Size:        int64(len(content)),
				ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			}, nil)

		rc, info, err := svc.Redeem(ctx, model.KindWord, res.Token, "D1")
		require.NoError(t, err)
		defer rc.Close()

		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, content, got)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", info.ContentType)
		mStore.AssertExpectations(t)
	})

	t.Run("redemption is repeatable until expiry", func(t *testing.T) {
		mStore, svc := newAccessFixture()
		res := issue(t, mStore, svc, "D1")

		mStore.On("Get", ctx, storage.BucketWord, "D1").Return(
			io.NopCloser(bytes.NewReader(content)), storage.ObjectInfo{Key: "D1"}, nil).Twice()

		for i := 0; i < 2; i++ {
			rc, _, err := svc.Redeem(ctx, model.KindWord, res.Token, "D1")
			require.NoError(t, err)
			rc.Close()
		}
		mStore.AssertExpectations(t)
	})

	t.Run("missing token", func(t *testing.T) {
		_, svc := newAccessFixture()
		_, _, err := svc.Redeem(ctx, model.KindWord, "", "D1")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, svc := newAccessFixture()
		_, _, err := svc.Redeem(ctx, model.KindWord, "garbage", "D1")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("wrong-secret token", func(t *testing.T) {
		_, svc := newAccessFixture()

		forged := forgeToken(t, "some-other-secret", time.Hour, "D1")
		_, _, err := svc.Redeem(ctx, model.KindWord, forged, "D1")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("expired token fails regardless of signature validity", func(t *testing.T) {
		_, svc := newAccessFixture()

		expired := forgeToken(t, testSecret, -time.Minute, "D1")
		_, _, err := svc.Redeem(ctx, model.KindWord, expired, "D1")
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("identity mismatch", func(t *testing.T) {
		mStore, svc := newAccessFixture()
		res := issue(t, mStore, svc, "D1")

		_, _, err := svc.Redeem(ctx, model.KindWord, res.Token, "D2")
		assert.ErrorIs(t, err, ErrForbidden)
		assert.NotErrorIs(t, err, ErrUnauthenticated)
		mStore.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("blob gone at stream-open time", func(t *testing.T) {
		mStore, svc := newAccessFixture()
		res := issue(t, mStore, svc, "D1")

		mStore.On("Get", ctx, storage.BucketWord, "D1").
			Return(nil, storage.ObjectInfo{}, storage.ErrObjectNotFound)

		_, _, err := svc.Redeem(ctx, model.KindWord, res.Token, "D1")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrUnauthenticated)
	})
}

// forgeToken builds a token signed with the given secret whose grant expires
// ttl from now (negative ttl yields an already-expired token).
func forgeToken(t *testing.T, secret string, ttl time.Duration, storageID string) string {
	t.Helper()
	codec := token.NewCodec([]byte(secret))
	claims := &token.Claims{
		Document: token.Document{
			FileType:    "docx",
			Key:         "doc_forged",
			Title:       "report.docx",
			URL:         FetchURL("http://localhost:8080", model.KindWord, storageID),
			Permissions: token.Permissions{Edit: true, Review: true},
		},
		DocumentType:     "word",
		RegisteredClaims: token.NewRegisteredClaims(time.Now().Add(-time.Hour), time.Hour+ttl),
	}
	signed, err := codec.Encode(claims)
	require.NoError(t, err)
	return signed
}

func TestStorageIDFromFetchURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "word url", url: "http://localhost:8080/documents/word/65f1/content", want: "65f1"},
		{name: "excel url", url: "https://docs.example.com/documents/excel/abc/content", want: "abc"},
		{name: "no content suffix", url: "http://localhost:8080/documents/word/65f1", wantErr: true},
		{name: "too short", url: "http://localhost:8080/content", wantErr: true},
		{name: "unparseable", url: "://bad", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := storageIDFromFetchURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"docflow/internal/model"
	"docflow/internal/storage"
	"docflow/internal/token"
)

// GrantResult is what an issuance call returns: the caller-visible document
// descriptor and the signed token. The descriptor carries no secret material;
// the token is the credential.
type GrantResult struct {
	Document token.Document `json:"document"`
	Token    string         `json:"token"`
}

// AccessService issues short-lived document-access grants and redeems them
// against the blob store.
type AccessService interface {
	// IssueGrant builds a grant for the stored document identified by
	// storageID in the kind's bucket. Fails with ErrNotFound when no such
	// document exists. Repeated calls produce distinct but equally valid grants.
	IssueGrant(ctx context.Context, kind model.DocumentKind, storageID string) (*GrantResult, error)

	// Redeem validates bearerToken, cross-checks it against storageID, and on
	// success opens a read stream for the document. The caller owns the
	// returned stream and must close it on every exit path.
	//
	// Failure order: missing/invalid/expired token -> ErrUnauthenticated;
	// token valid but for a different document -> ErrForbidden; blob gone at
	// stream-open time -> ErrNotFound.
	Redeem(ctx context.Context, kind model.DocumentKind, bearerToken, storageID string) (io.ReadCloser, storage.ObjectInfo, error)
}

// accessService is a concrete implementation of AccessService. All
// dependencies are injected at construction; redemption touches no shared
// mutable state, so the service is safe for concurrent use.
type accessService struct {
	store   storage.Storage
	codec   *token.Codec
	baseURL string
	ttl     time.Duration
}

// NewAccessService constructs a new AccessService. baseURL is the externally
// reachable server URL embedded into grant fetch URLs; ttl bounds every
// grant's validity (expiresAt = issuedAt + ttl).
func NewAccessService(store storage.Storage, codec *token.Codec, baseURL string, ttl time.Duration) AccessService {
	return &accessService{
		store:   store,
		codec:   codec,
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     ttl,
	}
}

func bucketFor(kind model.DocumentKind) (storage.Bucket, error) {
	switch kind {
	case model.KindWord:
		return storage.BucketWord, nil
	case model.KindExcel:
		return storage.BucketExcel, nil
	default:
		return "", ErrInvalidKind
	}
}

// newDocumentKey generates the per-grant random handle. Grants expire within
// the TTL, so uniqueness only has to hold across outstanding grants.
func newDocumentKey() string {
	return "doc_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// FetchURL builds the document-fetch URL that embeds the storage id, so
// redemption can resolve the blob without re-deriving it from the grant key.
func FetchURL(baseURL string, kind model.DocumentKind, storageID string) string {
	return fmt.Sprintf("%s/documents/%s/%s/content", strings.TrimRight(baseURL, "/"), kind, storageID)
}

func (s *accessService) IssueGrant(ctx context.Context, kind model.DocumentKind, storageID string) (*GrantResult, error) {
	if storageID == "" {
		return nil, ErrIDRequired
	}
	bucket, err := bucketFor(kind)
	if err != nil {
		return nil, err
	}

	info, err := s.store.Stat(ctx, bucket, storageID)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("stat document: %w", err)
	}

	claims := &token.Claims{
		Document: token.Document{
			FileType:    kind.FileType(),
			Key:         newDocumentKey(),
			Title:       info.Filename(),
			URL:         FetchURL(s.baseURL, kind, storageID),
			Permissions: token.Permissions{Edit: true, Review: true},
		},
		DocumentType: kind.EditorType(),
		EditorConfig: token.EditorConfig{
			Mode: "edit",
			User: token.EditorUser{ID: "user123", Name: "User"},
		},
		RegisteredClaims: token.NewRegisteredClaims(time.Now(), s.ttl),
	}

	signed, err := s.codec.Encode(claims)
	if err != nil {
		return nil, fmt.Errorf("encode grant: %w", err)
	}

	return &GrantResult{Document: claims.Document, Token: signed}, nil
}

func (s *accessService) Redeem(ctx context.Context, kind model.DocumentKind, bearerToken, storageID string) (io.ReadCloser, storage.ObjectInfo, error) {
	bucket, err := bucketFor(kind)
	if err != nil {
		return nil, storage.ObjectInfo{}, err
	}
	if bearerToken == "" {
		return nil, storage.ObjectInfo{}, fmt.Errorf("%w: no token provided", ErrUnauthenticated)
	}

	// All decode failures collapse into one external category; the wrapped
	// cause stays available for server-side logs.
	claims, err := s.codec.Decode(bearerToken)
	if err != nil {
		return nil, storage.ObjectInfo{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	// The storage id embedded in the grant's fetch URL is the canonical
	// identity; the grant key is a decoupling handle and never compared to it.
	grantedID, err := storageIDFromFetchURL(claims.Document.URL)
	if err != nil {
		return nil, storage.ObjectInfo{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if grantedID != storageID {
		return nil, storage.ObjectInfo{}, ErrForbidden
	}

	// The blob can vanish between issuance and redemption; that is a separate
	// failure domain from credential checks and surfaces at stream-open time.
	rc, info, err := s.store.Get(ctx, bucket, storageID)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, ErrNotFound
		}
		return nil, storage.ObjectInfo{}, fmt.Errorf("open document stream: %w", err)
	}
	return rc, info, nil
}

// storageIDFromFetchURL extracts the storage id embedded at issuance time from
// a grant fetch URL of the form .../documents/<kind>/<id>/content.
func storageIDFromFetchURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("bad fetch url: %v", err)
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) < 2 || segs[len(segs)-1] != "content" {
		return "", fmt.Errorf("bad fetch url path %q", u.Path)
	}
	return segs[len(segs)-2], nil
}

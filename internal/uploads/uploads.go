// Package uploads issues signed Cloud Storage URLs that let clients upload
// profile images directly to the bucket.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	credentials "cloud.google.com/go/iam/credentials/apiv1"
	credentialspb "cloud.google.com/go/iam/credentials/apiv1/credentialspb"
	"cloud.google.com/go/storage"

	"tennis-space/backend/internal/domain/apperr"
)

const (
	defaultExpiry = 15 * time.Minute
	maxExpiry     = time.Hour
)

var ErrNotConfigured = errors.New("profile image uploads are not configured")

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// SignedURL is a one-shot PUT target.
type SignedURL struct {
	URL         string `json:"url"`
	Method      string `json:"method"`
	ObjectPath  string `json:"objectPath"`
	ContentType string `json:"contentType"`
	ExpiresAt   int64  `json:"expiresAt"`
}

// SignFunc signs the V4 string-to-sign on behalf of the service account.
type SignFunc func(ctx context.Context, serviceAccount string, payload []byte) ([]byte, error)

type Signer struct {
	bucket         string
	serviceAccount string
	sign           SignFunc
	now            func() time.Time
}

func NewSigner(bucket, serviceAccount string, sign SignFunc) *Signer {
	return &Signer{bucket: bucket, serviceAccount: serviceAccount, sign: sign, now: time.Now}
}

// IAMSignFunc signs through the IAM Credentials API, so no private key has to
// be deployed with the service.
func IAMSignFunc(iam *credentials.IamCredentialsClient) SignFunc {
	if iam == nil {
		return nil
	}
	return func(ctx context.Context, serviceAccount string, payload []byte) ([]byte, error) {
		resp, err := iam.SignBlob(ctx, &credentialspb.SignBlobRequest{
			Name:    fmt.Sprintf("projects/-/serviceAccounts/%s", serviceAccount),
			Payload: payload,
		})
		if err != nil {
			return nil, err
		}
		return resp.SignedBlob, nil
	}
}

// ProfileImageURL returns a signed PUT URL for users/{uid}/profile/<name>.
func (s *Signer) ProfileImageURL(ctx context.Context, uid, contentType string, expires time.Duration) (*SignedURL, error) {
	if s == nil || s.bucket == "" || s.serviceAccount == "" || s.sign == nil {
		return nil, ErrNotConfigured
	}
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return nil, apperr.Newf(apperr.ErrValidation, "unsupported content type %q", contentType)
	}
	object, err := ProfileObjectPath(uid, s.now(), ext)
	if err != nil {
		return nil, err
	}
	if expires <= 0 || expires > maxExpiry {
		expires = defaultExpiry
	}
	exp := s.now().Add(expires)

	url, err := storage.SignedURL(s.bucket, object, &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         "PUT",
		Expires:        exp,
		ContentType:    contentType,
		GoogleAccessID: s.serviceAccount,
		SignBytes: func(b []byte) ([]byte, error) {
			return s.sign(ctx, s.serviceAccount, b)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign url (check service account + permissions): %w", err)
	}
	return &SignedURL{
		URL:         url,
		Method:      "PUT",
		ObjectPath:  object,
		ContentType: contentType,
		ExpiresAt:   exp.Unix(),
	}, nil
}

// ProfileObjectPath names a new profile image object for uid.
func ProfileObjectPath(uid string, at time.Time, ext string) (string, error) {
	if uid == "" || strings.ContainsAny(uid, "/\\") || uid == "." || uid == ".." {
		return "", apperr.Newf(apperr.ErrValidation, "invalid user id %q", uid)
	}
	name := fmt.Sprintf("avatar-%d%s", at.UnixMilli(), ext)
	return path.Join("users", uid, "profile", name), nil
}

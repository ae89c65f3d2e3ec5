package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/imrishuroy/go-cod-storefront/internal/aws"
)

// S3 stores assets in a bucket fronted by a CDN. The object key is the
// public id.
type S3 struct {
	Client  aws.S3API
	Bucket  string
	Folder  string
	CDNBase string
	newID   func() string
}

func NewS3(client aws.S3API, bucket, folder, cdnBase string) *S3 {
	return &S3{
		Client:  client,
		Bucket:  bucket,
		Folder:  strings.Trim(folder, "/"),
		CDNBase: strings.TrimRight(cdnBase, "/"),
		newID:   uuid.NewString,
	}
}

func (u *S3) Upload(ctx context.Context, filename, contentType string, body io.Reader) (Asset, error) {
	key := u.newID() + extension(filename)
	if u.Folder != "" {
		key = u.Folder + "/" + key
	}
	_, err := u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       &u.Bucket,
		Key:          &key,
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return Asset{}, fmt.Errorf("put object: %w", err)
	}
	return Asset{URL: u.CDNBase + "/" + key, PublicID: key}, nil
}

func (u *S3) Delete(ctx context.Context, publicID string) error {
	if _, err := u.Client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &u.Bucket, Key: &publicID}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

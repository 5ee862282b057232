package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/BruksfildServices01/ratemycafe/internal/gateway"
)

type S3Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	PublicURL string
}

func NewS3Client(opts S3Options) *s3.Client {
	return s3.New(s3.Options{
		Region:       opts.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		BaseEndpoint: endpoint(opts.Endpoint),
		UsePathStyle: true,
	})
}

func endpoint(e string) *string {
	if e == "" {
		return nil
	}
	return aws.String(e)
}

type S3Bucket struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3Bucket(client *s3.Client, bucket, publicURL string) *S3Bucket {
	return &S3Bucket{client: client, bucket: bucket, publicURL: publicURL}
}

func (b *S3Bucket) Name() string { return b.bucket }

func (b *S3Bucket) List(ctx context.Context, folder string) ([]Object, error) {
	prefix := strings.Trim(folder, "/") + "/"

	var out []Object
	p := s3.NewListObjectsV2Paginator(b.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(b.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, gateway.Wrap("list "+b.bucket+"/"+prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			name := strings.TrimPrefix(key, prefix)
			if name == "" {
				continue
			}
			out = append(out, Object{Name: name, Key: key, Size: aws.ToInt64(obj.Size)})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (b *S3Bucket) Upload(ctx context.Context, objectPath string, body io.Reader, size int64, contentType string) error {
	in := &s3.PutObjectInput{
		Bucket:       aws.String(b.bucket),
		Key:          aws.String(objectPath),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=3600"),
		IfNoneMatch:  aws.String("*"),
	}
	if size > 0 {
		in.ContentLength = aws.Int64(size)
	}

	if _, err := b.client.PutObject(ctx, in); err != nil {
		return gateway.Wrap(fmt.Sprintf("upload %s/%s", b.bucket, objectPath), err)
	}
	return nil
}

func (b *S3Bucket) Remove(ctx context.Context, objectPaths ...string) error {
	if len(objectPaths) == 0 {
		return nil
	}

	ids := make([]types.ObjectIdentifier, 0, len(objectPaths))
	for _, p := range objectPaths {
		ids = append(ids, types.ObjectIdentifier{Key: aws.String(p)})
	}

	res, err := b.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(b.bucket),
		Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return gateway.Wrap("remove from "+b.bucket, err)
	}
	if len(res.Errors) > 0 {
		e := res.Errors[0]
		return gateway.Wrap("remove "+aws.ToString(e.Key), &smithy.GenericAPIError{Code: aws.ToString(e.Code), Message: aws.ToString(e.Message)})
	}
	return nil
}

func (b *S3Bucket) PublicURL(objectPath string) string {
	return PublicURL(b.publicURL, b.bucket, objectPath)
}

var _ Bucket = (*S3Bucket)(nil)

// Package storage reads the yearly Oracle's Elixir match CSVs from object
// storage. This is the only external boundary that blocks on the network;
// the downloads run concurrently but complete before the cleaning pipeline
// starts.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"

	"oecli/internal/config"
	"oecli/internal/oracleselixir"
)

// objectKeyPattern is the upstream naming scheme for the yearly files.
const objectKeyPattern = "%d_LoL_esports_match_data_from_OraclesElixir.csv"

// maxConcurrentDownloads bounds the parallel year fetches.
const maxConcurrentDownloads = 3

// ObjectGetter is the slice of the S3 API the client needs; tests provide
// a stub.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Client fetches and decodes match data from a bucket.
type Client struct {
	s3     ObjectGetter
	bucket string
	logger *slog.Logger
}

// New builds a client from configuration. Static credentials take
// precedence when present; otherwise the default AWS credential chain
// applies.
func New(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessID, cfg.AccessSecret, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return NewWithGetter(s3.NewFromConfig(awsCfg), cfg.Bucket, logger), nil
}

// NewWithGetter builds a client over an existing object getter.
func NewWithGetter(getter ObjectGetter, bucket string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{s3: getter, bucket: bucket, logger: logger}
}

// FetchYear downloads and decodes one yearly file.
func (c *Client) FetchYear(ctx context.Context, year int) ([]oracleselixir.Row, error) {
	key := fmt.Sprintf(objectKeyPattern, year)
	start := time.Now()

	c.logger.InfoContext(ctx, "fetching match data",
		"bucket", c.bucket,
		"key", key,
	)

	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s/%s: %w", c.bucket, key, err)
	}
	defer out.Body.Close()

	rows, err := oracleselixir.DecodeCSV(out.Body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}

	c.logger.InfoContext(ctx, "fetched match data",
		"key", key,
		"rows", len(rows),
		"duration", time.Since(start),
	)

	return rows, nil
}

// FetchYears downloads every requested year and concatenates the rows in
// the order the years were given.
func (c *Client) FetchYears(ctx context.Context, years []int) ([]oracleselixir.Row, error) {
	if len(years) == 0 {
		return nil, fmt.Errorf("no years requested")
	}

	perYear := make([][]oracleselixir.Row, len(years))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDownloads)

	for i, year := range years {
		g.Go(func() error {
			rows, err := c.FetchYear(gctx, year)
			if err != nil {
				return err
			}
			perYear[i] = rows
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []oracleselixir.Row
	for _, rows := range perYear {
		all = append(all, rows...)
	}

	return all, nil
}

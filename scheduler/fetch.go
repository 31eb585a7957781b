package scheduler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"batch-transcribe-api/utils"
)

// Fetcher materializes a remote source as a local ephemeral file and
// returns its path. The scheduler owns the returned file.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (string, error)
}

// RemoteFetcher downloads http(s) sources directly and s3:// sources
// through the shared S3 client. Each download gets a uniquely named
// temp file, so duplicate URIs in one request yield distinct files.
type RemoteFetcher struct {
	client *http.Client
	logger *zap.Logger
}

func NewRemoteFetcher(logger *zap.Logger) *RemoteFetcher {
	return &RemoteFetcher{
		client: &http.Client{Timeout: 5 * time.Minute},
		logger: logger,
	}
}

func (f *RemoteFetcher) Fetch(ctx context.Context, uri string) (string, error) {
	name := fmt.Sprintf("audio-%s.wav", strings.ReplaceAll(uuid.NewString(), "-", ""))
	dest := filepath.Join(os.TempDir(), name)

	var err error
	if strings.HasPrefix(uri, "s3://") {
		err = f.fetchS3(ctx, uri, dest)
	} else {
		err = f.fetchHTTP(ctx, uri, dest)
	}
	if err != nil {
		// drop any partial download
		_ = os.Remove(dest)
		return "", err
	}

	f.logger.Debug("Fetched remote source",
		zap.String("uri", uri),
		zap.String("local_path", dest))
	return dest, nil
}

func (f *RemoteFetcher) fetchHTTP(ctx context.Context, uri, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create local file: %w", err)
	}

	_, err = io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}

func (f *RemoteFetcher) fetchS3(ctx context.Context, uri, dest string) error {
	bucket, key, err := utils.ParseS3URI(uri)
	if err != nil {
		return err
	}
	return utils.DownloadS3ObjectToFile(ctx, bucket, key, dest)
}

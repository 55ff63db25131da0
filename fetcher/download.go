package fetcher

import (
	"context"
	"io"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/pkg/errors"
)

// DownloadToFile streams url into path. The file is created (or truncated)
// before the request is sent. Once a 200 response arrives the body has
// BodyTimeout to finish; otherwise the transfer is aborted and a
// *DownloadTimeoutError is returned. A failed call may leave a partial file
// behind.
func (c *Client) DownloadToFile(ctx context.Context, url, path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create file \"%s\"", path)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close file \"%s\"", path)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to build request for \"%s\"", url)
	}
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := c.fileClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "error while getting resource \"%s\"", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &HTTPStatusError{URL: url, StatusCode: resp.StatusCode}
	}

	var timedOut int32
	timer := c.clock.AfterFunc(c.bodyTimeout, func() {
		atomic.StoreInt32(&timedOut, 1)
		cancel()
	})
	_, err = io.Copy(file, resp.Body)
	timer.Stop()

	if err != nil {
		if atomic.LoadInt32(&timedOut) == 1 {
			return &DownloadTimeoutError{URL: url, Timeout: c.bodyTimeout}
		}
		return errors.Wrapf(err, "failed to write \"%s\" from \"%s\"", path, url)
	}
	return nil
}

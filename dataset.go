package main

import (
	"archive/tar"
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
)

// downloadFile fetches url into filename unless the file already exists.
// Existence is the only check; no checksum validation.
func downloadFile(ctx context.Context, url string, filename string) error {
	_, err := os.Stat(filename)
	if err == nil {
		Logger.Debugf("file %v already exists", filename)
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	Logger.Infof("download %v to %v", url, filename)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	response, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	if response.StatusCode != 200 {
		return fmt.Errorf("unexpected status code %v for %v", response.StatusCode, url)
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := io.Copy(file, response.Body); err != nil {
		return err
	}
	return file.Sync()
}

// ensureShards downloads every missing shard and returns the summed size
// of the cached files.
func ensureShards(ctx context.Context, name string, urls []string, files []string) (int64, error) {
	total := int64(0)
	for i, url := range urls {
		if err := downloadFile(ctx, url, files[i]); err != nil {
			return 0, fmt.Errorf("%w: dataset %v shard %v: %v", ErrProvision, name, url, err)
		}
		stat, err := os.Stat(files[i])
		if err != nil {
			return 0, fmt.Errorf("%w: dataset %v: %v", ErrProvision, name, err)
		}
		total += stat.Size()
	}
	Logger.Infof("dataset %v cached, %v on disk", name, humanize.Bytes(uint64(total)))
	return total, nil
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	g.Reader.Close()
	return g.file.Close()
}

func openGzip(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	reader, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &gzipFile{Reader: reader, file: file}, nil
}

// shardStream concatenates a list of gzip shards, opening them lazily one
// at a time.
type shardStream struct {
	paths   []string
	current io.ReadCloser
}

func (s *shardStream) Read(p []byte) (int, error) {
	for {
		if s.current == nil {
			if len(s.paths) == 0 {
				return 0, io.EOF
			}
			reader, err := openGzip(s.paths[0])
			if err != nil {
				return 0, err
			}
			s.paths = s.paths[1:]
			s.current = reader
		}
		n, err := s.current.Read(p)
		if err == io.EOF {
			if closeErr := s.current.Close(); closeErr != nil {
				return n, closeErr
			}
			s.current = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (s *shardStream) Close() error {
	if s.current == nil {
		return nil
	}
	err := s.current.Close()
	s.current = nil
	s.paths = nil
	return err
}

// tarballStream walks the .json members of a gzip tarball in archive
// order, exposing their concatenated contents.
type tarballStream struct {
	archive io.ReadCloser
	tar     *tar.Reader
	inFile  bool
}

func openTarball(path string) (io.ReadCloser, error) {
	archive, err := openGzip(path)
	if err != nil {
		return nil, err
	}
	return &tarballStream{archive: archive, tar: tar.NewReader(archive)}, nil
}

func (t *tarballStream) Read(p []byte) (int, error) {
	for {
		if !t.inFile {
			header, err := t.tar.Next()
			if err != nil {
				return 0, err
			}
			if header.Typeflag != tar.TypeReg || !strings.HasSuffix(header.Name, ".json") {
				continue
			}
			t.inFile = true
		}
		n, err := t.tar.Read(p)
		if err == io.EOF {
			t.inFile = false
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (t *tarballStream) Close() error {
	return t.archive.Close()
}

// transformStream rewrites each record line through transform, preserving
// the newline-delimited framing. A transform failure fails the whole
// stream: the reader observes a provisioning error.
func transformStream(raw io.ReadCloser, transform recordTransform) io.ReadCloser {
	pr, pw := io.Pipe()
	go func() {
		defer raw.Close()
		scanner := bufio.NewScanner(raw)
		scanner.Buffer(make([]byte, 0, 64*1024), 32*1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			normalized, err := transform(line)
			if err != nil {
				pw.CloseWithError(fmt.Errorf("%w: %v", ErrProvision, err))
				return
			}
			if _, err := pw.Write(append(normalized, '\n')); err != nil {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			pw.CloseWithError(fmt.Errorf("%w: %v", ErrProvision, err))
			return
		}
		pw.Close()
	}()
	return pr
}

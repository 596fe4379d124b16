package index

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ptlint/ptlint/internal/models"
	"github.com/ptlint/ptlint/internal/ports"
	"github.com/sirupsen/logrus"
	"github.com/ulikunitz/xz"
)

// fieldCount is the number of pipe-separated fields in an INDEX line. The
// format is described at https://wiki.freebsd.org/Ports/INDEX
const fieldCount = 13

// Parse reads an INDEX file and returns a store with one record per valid
// line, plus the parse-time notifications (skipped lines, duplicate
// overwrites). An unreadable or empty index is a fatal error.
func Parse(path string) (*ports.Store, []ports.Notification, error) {
	f, err := Open(path)
	if err != nil {
		return nil, nil, &models.LintError{
			Type: models.ErrIndexLoad,
			Err:  fmt.Errorf("failed to open index %s: %w", path, err),
		}
	}
	defer f.Close()

	store := ports.NewStore()
	var notes []ports.Notification

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) != fieldCount {
			logrus.Debugf("Index line %q has %d fields instead of the expected %d, line skipped", line, len(fields), fieldCount)
			notes = append(notes, ports.Notification{
				Severity: ports.SeverityDebug,
				Port:     fields[0],
				Issue:    "Malformed index line",
				Message:  fmt.Sprintf("%d fields instead of the expected %d", len(fields), fieldCount),
			})
			continue
		}

		rec := &ports.Record{
			Name:       fields[0],
			Origin:     fields[1],
			Prefix:     fields[2],
			Comment:    fields[3],
			DescrFile:  fields[4],
			Maintainer: ports.NormalizeMaintainer(fields[5]),
			Categories: strings.Fields(fields[6]),
			WWW:        fields[9],
			Depends: ports.Depends{
				Extract: strings.Fields(fields[7]),
				Patch:   strings.Fields(fields[8]),
				Fetch:   strings.Fields(fields[10]),
				Build:   strings.Fields(fields[11]),
				Run:     strings.Fields(fields[12]),
			},
		}
		if store.Add(rec) {
			logrus.Debugf("Duplicate index entry for %s, earlier record overwritten", rec.Name)
			notes = append(notes, ports.Notification{
				Severity:   ports.SeverityDebug,
				Port:       rec.Name,
				Maintainer: rec.Maintainer,
				Issue:      "Duplicate index entry",
				Message:    "earlier record overwritten, last occurrence wins",
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, &models.LintError{
			Type: models.ErrIndexLoad,
			Err:  fmt.Errorf("failed to read index %s: %w", path, err),
		}
	}

	if store.Len() == 0 {
		return nil, nil, &models.LintError{
			Type: models.ErrIndexLoad,
			Err:  fmt.Errorf("index %s contains no package entries", path),
		}
	}

	logrus.Infof("Loaded %d ports from the index file", store.Len())
	return store, notes, nil
}

// Open opens an index file, transparently decompressing .gz, .xz and .zst
// variants based on the file extension.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch filepath.Ext(path) {
	case ".gz":
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &decompressReader{Reader: gr, file: f, closer: gr}, nil
	case ".xz":
		xr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &decompressReader{Reader: xr, file: f}, nil
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &decompressReader{Reader: zr.IOReadCloser(), file: f}, nil
	default:
		return f, nil
	}
}

// decompressReader pairs a decoder with its underlying file so both get
// closed.
type decompressReader struct {
	io.Reader
	file   *os.File
	closer io.Closer
}

func (d *decompressReader) Close() error {
	if d.closer != nil {
		d.closer.Close()
	}
	return d.file.Close()
}

// Locate finds the INDEX file under a ports directory when no explicit path
// is given. It picks the highest-numbered INDEX-N, considering compressed
// variants.
func Locate(portsDir string) (string, error) {
	entries, err := os.ReadDir(portsDir)
	if err != nil {
		return "", fmt.Errorf("failed to read ports directory %s: %w", portsDir, err)
	}

	best := ""
	bestVersion := -1
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		base := strings.TrimSuffix(strings.TrimSuffix(strings.TrimSuffix(name, ".gz"), ".xz"), ".zst")
		if !strings.HasPrefix(base, "INDEX-") {
			continue
		}
		version, err := strconv.Atoi(strings.TrimPrefix(base, "INDEX-"))
		if err != nil {
			continue
		}
		// Prefer the uncompressed file among equal versions
		if version > bestVersion || (version == bestVersion && base == name) {
			best = filepath.Join(portsDir, name)
			bestVersion = version
		}
	}
	if best == "" {
		return "", fmt.Errorf("no INDEX-N file found in %s", portsDir)
	}
	return best, nil
}

// Package transcript persists generative-call transcripts to disk. It is a
// best-effort side channel: callers log failures and move on, a broken sink
// must never affect a call's result.
package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// FileSink writes two artifacts per call under a date-partitioned directory:
// <dir>/<YYYY-MM-DD>/<processor>-<time>.md with the extracted text and a
// matching .json with the raw provider response.
type FileSink struct {
	dir    string
	now    func() time.Time
	logger *logrus.Logger
}

func NewFileSink(dir string, logger *logrus.Logger) *FileSink {
	return &FileSink{dir: dir, now: time.Now, logger: logger}
}

func (s *FileSink) Record(processor, text string, raw []byte) error {
	now := s.now()
	day := now.Format("2006-01-02")
	key := fmt.Sprintf("%s-%s", processor, now.Format("15-04-05.000000000"))

	dayDir := filepath.Join(s.dir, day)
	if err := os.MkdirAll(dayDir, 0o750); err != nil {
		return fmt.Errorf("creating transcript directory: %w", err)
	}

	textPath := filepath.Join(dayDir, key+".md")
	if err := os.WriteFile(textPath, []byte(text), 0o640); err != nil {
		return fmt.Errorf("writing transcript text: %w", err)
	}

	rawPath := filepath.Join(dayDir, key+".json")
	if err := os.WriteFile(rawPath, raw, 0o640); err != nil {
		return fmt.Errorf("writing transcript response: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"processor": processor,
		"path":      textPath,
	}).Debug("transcript recorded")
	return nil
}

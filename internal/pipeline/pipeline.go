// Package pipeline runs the read → parse → aggregate → classify steps over
// a list of log files.
package pipeline

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"go-sshlens/internal/aggregator"
	"go-sshlens/internal/detector"
	"go-sshlens/internal/normalizer"
	"go-sshlens/pkg/types"
)

// maxLineSize bounds the bytes kept for one line. Longer lines are
// discarded and counted in Diagnostics.OversizedLines.
const maxLineSize = 1024 * 1024

// Options control a single run.
type Options struct {
	Year      int
	Threshold int

	// SkipUnreadable turns open/read failures into skipped files instead
	// of aborting the run.
	SkipUnreadable bool
}

type openFunc func(path string) (io.ReadCloser, error)

func openFile(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Run processes paths sequentially, in order, and returns the classified
// result. Each file is closed before the next one is opened. A file only
// contributes to the result once it has been read to the end.
func Run(paths []string, opts Options, log *zap.Logger) (*types.Result, error) {
	return run(paths, opts, log, openFile)
}

func run(paths []string, opts Options, log *zap.Logger, open openFunc) (*types.Result, error) {
	if log == nil {
		log = zap.NewNop()
	}

	parser := normalizer.NewParser(opts.Year)
	agg := aggregator.New()
	var diag types.Diagnostics

	for _, path := range paths {
		fs, err := scanFile(path, open, parser, log)
		if err != nil {
			if !opts.SkipUnreadable {
				return nil, err
			}
			log.Warn("skipping unreadable file", zap.String("path", path), zap.Error(err))
			diag.SkippedFiles = append(diag.SkippedFiles, types.SkippedFile{Path: path, Error: err.Error()})
			continue
		}
		fs.mergeInto(agg, &diag)
		diag.FilesRead++
	}

	res := detector.NewSSHBruteForceDetector(opts.Threshold).Classify(agg)
	res.Diagnostics = diag

	log.Info("analysis complete",
		zap.Int("files", diag.FilesRead),
		zap.Int("skipped_files", len(diag.SkippedFiles)),
		zap.Int("lines", diag.LinesRead),
		zap.Int("matched", diag.LinesMatched),
		zap.Int("timestamp_errors", diag.TimestampErrors),
		zap.Int("oversized_lines", diag.OversizedLines),
		zap.Int("domains", len(res.Domains)),
		zap.Int("total_hackers", res.TotalHackers),
	)
	return res, nil
}

func scanFile(path string, open openFunc, parser *normalizer.Parser, log *zap.Logger) (*FileScan, error) {
	fp, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fp.Close()

	log.Debug("reading log file", zap.String("path", path))
	fs, err := Scan(fp, parser, log)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return fs, nil
}

// FileScan holds what one input produced. Nothing reaches the aggregator
// until the whole input has been read.
type FileScan struct {
	Events []normalizer.Event
	Diag   types.Diagnostics
}

func (fs *FileScan) mergeInto(agg *aggregator.Aggregator, diag *types.Diagnostics) {
	for _, ev := range fs.Events {
		agg.Ingest(ev)
	}
	diag.LinesRead += fs.Diag.LinesRead
	diag.LinesMatched += fs.Diag.LinesMatched
	diag.TimestampErrors += fs.Diag.TimestampErrors
	diag.MalformedMatches += fs.Diag.MalformedMatches
	diag.OversizedLines += fs.Diag.OversizedLines
}

// Scan parses every line of r. Lines that match but carry an unparseable
// timestamp are skipped and tallied, as are lines longer than the line
// limit. Only read errors from r are returned.
func Scan(r io.Reader, parser *normalizer.Parser, log *zap.Logger) (*FileScan, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fs := &FileScan{}

	err := eachLine(r, func(line []byte, oversized bool) {
		fs.Diag.LinesRead++
		if oversized {
			fs.Diag.OversizedLines++
			log.Warn("skipping oversized line", zap.Int("limit", maxLineSize))
			return
		}

		ev, err := parser.ParseLine(string(line))
		if err != nil {
			var tsErr *normalizer.TimestampError
			switch {
			case errors.Is(err, normalizer.ErrNoMatch):
			case errors.As(err, &tsErr):
				fs.Diag.TimestampErrors++
				log.Warn("skipping line with bad timestamp", zap.String("timestamp", tsErr.Raw), zap.Error(tsErr.Err))
			default:
				fs.Diag.MalformedMatches++
				log.Warn("skipping malformed line", zap.Error(err))
			}
			return
		}

		fs.Diag.LinesMatched++
		fs.Events = append(fs.Events, ev)
	})
	if err != nil {
		return nil, err
	}
	return fs, nil
}

// eachLine calls fn for every newline-terminated line of r, and for a
// trailing unterminated one. The line passed to fn has its "\n" or "\r\n"
// stripped and is only valid during the call. Lines over maxLineSize are
// drained without being buffered and reported with oversized set.
func eachLine(r io.Reader, fn func(line []byte, oversized bool)) error {
	br := bufio.NewReaderSize(r, 64*1024)
	var (
		line    []byte
		tooLong bool
	)
	for {
		chunk, err := br.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			if !tooLong {
				if len(line)+len(chunk) > maxLineSize {
					tooLong = true
					line = line[:0]
				} else {
					line = append(line, chunk...)
				}
			}
			continue
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		if errors.Is(err, io.EOF) && len(chunk) == 0 && len(line) == 0 && !tooLong {
			return nil
		}
		if !tooLong {
			line = append(line, chunk...)
			line = bytes.TrimSuffix(line, []byte("\n"))
			line = bytes.TrimSuffix(line, []byte("\r"))
			tooLong = len(line) > maxLineSize
		}
		if tooLong {
			fn(nil, true)
		} else {
			fn(line, false)
		}
		line = line[:0]
		tooLong = false

		if err != nil {
			return nil
		}
	}
}

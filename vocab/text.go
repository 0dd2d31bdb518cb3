package vocab

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const maxLineSize = 1 << 20

// TextProvider reads the fastText ".vec" text format: an optional header line
// "<count> <dim>" followed by one "<token> <v1> ... <vD>" record per line.
// Lines with fewer than two fields or unparsable numbers are skipped.
type TextProvider struct {
	name   string
	open   func() (io.ReadCloser, error)
	logger *slog.Logger
}

// NewFileProvider returns a TextProvider reading the file at path.
func NewFileProvider(path string, opts ...Option) *TextProvider {
	return newTextProvider(path, func() (io.ReadCloser, error) { return os.Open(path) }, opts)
}

// NewReaderProvider returns a TextProvider reading r. The reader is consumed
// by the first call to Records.
func NewReaderProvider(r io.Reader, opts ...Option) *TextProvider {
	return newTextProvider("reader", func() (io.ReadCloser, error) { return io.NopCloser(r), nil }, opts)
}

func newTextProvider(name string, open func() (io.ReadCloser, error), opts []Option) *TextProvider {
	o := newOptions(opts)
	return &TextProvider{name: name, open: open, logger: o.logger}
}

// Records implements Provider.
func (p *TextProvider) Records(ctx context.Context, fn func(token string, vec []float32) error) error {
	rc, err := p.open()
	if err != nil {
		return fmt.Errorf("vocab: open %s: %w", p.name, err)
	}
	defer rc.Close()

	br := bufio.NewReaderSize(rc, 64*1024)
	lineNo := 0
	malformed := 0
	for {
		line, oversize, err := readLine(br)
		if len(line) == 0 && !oversize && err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("vocab: read %s line %d: %w", p.name, lineNo+1, err)
		}
		lineNo++
		if lineNo%4096 == 0 {
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
		}
		if oversize {
			malformed++
		} else if rerr := p.record(lineNo, line, fn, &malformed); rerr != nil {
			return rerr
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("vocab: read %s line %d: %w", p.name, lineNo+1, err)
		}
	}
	if malformed > 0 {
		p.logger.Warn("vocabulary contains malformed records", "source", p.name, "skipped", malformed)
	}
	return nil
}

func (p *TextProvider) record(lineNo int, line []byte, fn func(token string, vec []float32) error, malformed *int) error {
	fields := strings.Fields(string(line))
	if lineNo == 1 && isHeader(fields) {
		return nil
	}
	if len(fields) < 2 {
		return nil
	}
	vec, ok := parseVector(fields[1:])
	if !ok {
		*malformed++
		return nil
	}
	return fn(fields[0], vec)
}

// readLine returns the next line including its terminator. Lines longer than
// maxLineSize are consumed entirely and reported as oversize. The returned
// slice is only valid until the next read.
func readLine(br *bufio.Reader) ([]byte, bool, error) {
	line, err := br.ReadSlice('\n')
	if err != bufio.ErrBufferFull {
		return line, false, err
	}
	buf := append([]byte(nil), line...)
	oversize := false
	for err == bufio.ErrBufferFull {
		line, err = br.ReadSlice('\n')
		if oversize || len(buf)+len(line) > maxLineSize {
			oversize = true
			buf = buf[:0]
			continue
		}
		buf = append(buf, line...)
	}
	return buf, oversize, err
}

func isHeader(fields []string) bool {
	if len(fields) != 2 {
		return false
	}
	for _, f := range fields {
		if _, err := strconv.Atoi(f); err != nil {
			return false
		}
	}
	return true
}

func parseVector(fields []string) ([]float32, bool) {
	vec := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, false
		}
		vec[i] = float32(v)
	}
	return vec, true
}

func writeText(bw *bufio.Writer, token string, vec []float32) error {
	if _, err := bw.WriteString(token); err != nil {
		return err
	}
	var buf [32]byte
	for _, v := range vec {
		if err := bw.WriteByte(' '); err != nil {
			return err
		}
		if _, err := bw.Write(strconv.AppendFloat(buf[:0], float64(v), 'g', -1, 32)); err != nil {
			return err
		}
	}
	return bw.WriteByte('\n')
}

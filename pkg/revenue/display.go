package revenue

import (
	"fmt"
	"io"
	"os"
	"time"

	"pos-register/pkg/errlog"
	"pos-register/pkg/model"

	"github.com/pkg/errors"
)

const (
	DefaultFileName = "totalRevenue.txt"
	TimeLayout      = "2006-01-02 15:04:05"
)

// ConsoleDisplay prints one line per completed sale.
type ConsoleDisplay struct {
	out io.Writer
}

var _ Display = &ConsoleDisplay{}

func NewConsoleDisplay(out io.Writer) *ConsoleDisplay {
	return &ConsoleDisplay{out: out}
}

func (d *ConsoleDisplay) ShowTotalRevenue(total model.Amount) error {
	_, err := fmt.Fprintf(d.out, "Total revenue: %s\n", total.Display())
	return errors.Wrap(err, "failed to show total revenue on console")
}

func (d *ConsoleDisplay) HandleError(err error) {
	fmt.Fprintf(d.out, "Could not show total revenue: %v\n", err)
}

// FileDisplay appends a timestamped line per completed sale. When a line cannot
// be written, a failure line is attempted instead and the error goes to the
// exception log.
type FileDisplay struct {
	out      io.Writer
	closer   io.Closer
	errorLog errlog.ExceptionLogger
	now      func() time.Time
}

var _ Display = &FileDisplay{}

// OpenFileDisplay appends to the file at path, creating it if needed.
func OpenFileDisplay(path string, errorLog errlog.ExceptionLogger) (*FileDisplay, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open revenue file %s", path)
	}
	display := NewFileDisplay(file, errorLog)
	display.closer = file
	return display, nil
}

func NewFileDisplay(out io.Writer, errorLog errlog.ExceptionLogger) *FileDisplay {
	return &FileDisplay{out: out, errorLog: errorLog, now: time.Now}
}

func (d *FileDisplay) ShowTotalRevenue(total model.Amount) error {
	_, err := fmt.Fprintf(d.out, "Total revenue at %s is: %s\n", d.now().Format(TimeLayout), total.Display())
	return errors.Wrap(err, "failed to write total revenue")
}

func (d *FileDisplay) HandleError(err error) {
	// The failure line may not be writable either.
	fmt.Fprintf(d.out, "Failed to update total revenue: %s\n", d.now().Format(TimeLayout))
	d.errorLog.LogException(err)
}

func (d *FileDisplay) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}

// The package logger defines a simple logger with INFO, WARN and ERROR prints.
package logger

import (
	"io"
	"log"
	"os"
)

type Aggregate struct {
	InfoLogger  *log.Logger
	WarnLogger  *log.Logger
	ErrorLogger *log.Logger
}

// New() returns an initialized Logger
func New(out io.Writer) *Aggregate {
	infoLogger := log.New(out, "INFO: ", log.LstdFlags)
	warnLogger := log.New(out, "WARN: ", log.LstdFlags)
	errorLogger := log.New(out, "ERROR: ", log.LstdFlags)

	return &Aggregate{
		InfoLogger:  infoLogger,
		WarnLogger:  warnLogger,
		ErrorLogger: errorLogger,
	}
}

// Info() prints an INFO log. A nil logger prints nothing.
func (l *Aggregate) Info(s string, v ...interface{}) {
	if l == nil {
		return
	}
	l.InfoLogger.Printf(s, v...)
}

// Warn() prints an WARN log. A nil logger prints nothing.
func (l *Aggregate) Warn(s string, v ...interface{}) {
	if l == nil {
		return
	}
	l.WarnLogger.Printf(s, v...)
}

// Error() prints an ERROR log. A nil logger prints nothing.
func (l *Aggregate) Error(s string, v ...interface{}) {
	if l == nil {
		return
	}
	l.ErrorLogger.Printf(s, v...)
}

// Init() initialise the logger and the file it prints to. An empty filePath
// means os.Stderr, which is never closed.
func Init(filePath string) (*Aggregate, io.WriteCloser, error) {
	if filePath == "" {
		return New(os.Stderr), nopCloser{os.Stderr}, nil
	}

	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return nil, nil, err
	}
	return New(file), file, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

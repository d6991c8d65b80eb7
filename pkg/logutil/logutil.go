// Package logutil provides logging utilities.
//
// Loggers are discarded by default, since the terminal is taken over by the
// reader; the -log flag redirects all of them to a file.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	out     = io.Discard
	file    *os.File // Opened by SetOutputFile.
	loggers []*log.Logger
	lock    sync.Mutex
)

// GetLogger gets a logger with a prefix.
func GetLogger(prefix string) *log.Logger {
	lock.Lock()
	defer lock.Unlock()
	logger := log.New(out, prefix, log.LstdFlags|log.Lmicroseconds)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the new io.Writer. A file previously opened by SetOutputFile is closed.
func SetOutput(newout io.Writer) {
	lock.Lock()
	defer lock.Unlock()
	setOutput(newout, nil)
}

func setOutput(newout io.Writer, newfile *os.File) {
	if file != nil {
		file.Close()
	}
	out, file = newout, newfile
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger
// to the named file. If the file already exists, it is appended to. If fname
// is empty, logging output is discarded.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	lock.Lock()
	defer lock.Unlock()
	setOutput(f, f)
	return nil
}

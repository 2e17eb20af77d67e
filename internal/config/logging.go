package config

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the logger commands hand to their collaborators.
// The prefix is conventionally bracketed, e.g. "[sync] ". With log.file
// unset the logger writes to stderr; with it set, output also goes to a
// size-rotated file.
func (s *Settings) NewLogger(prefix string) *log.Logger {
	var w io.Writer = os.Stderr
	if s.Log.File != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   s.Log.File,
			MaxSize:    s.Log.MaxSizeMB,
			MaxBackups: s.Log.MaxBackups,
		})
	}
	return log.New(w, prefix, log.LstdFlags)
}

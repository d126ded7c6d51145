// Copyright 2024 Jij Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logger provides a configurable logger for the module, based on zerolog.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	w := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	logger = zerolog.New(w).With().Timestamp().Logger()
	if os.Getenv("OMMX_LOGGER") == "false" {
		logger = zerolog.Nop()
	}
}

// Logger returns the module logger.
func Logger() zerolog.Logger {
	return logger
}

// Set allows a caller to replace the module logger.
func Set(l zerolog.Logger) {
	logger = l
}

// Disable silences all log output from the module.
func Disable() {
	logger = zerolog.New(io.Discard)
}

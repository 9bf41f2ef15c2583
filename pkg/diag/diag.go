// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package diag carries the build-time debug flag and the dump helpers
// gated on it (spec §4.2, §7): computation.dump / dump_schedule /
// dump_iteration_domain in the original are all wrapped in
// "if (ENABLE_DEBUG)" (coli_core.cpp lines 167-251); Enabled is that
// flag's Go equivalent, checked once per call rather than compiled out.
package diag

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Enabled gates every Dump* call. False by default, matching a release
// build with ENABLE_DEBUG unset; a caller flips it on to get the
// diagnostic trace the original always compiled in under -DENABLE_DEBUG.
var Enabled = false

var log = func() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)

	return l
}()

// Printf emits a line through logrus when Enabled, wrapped to the
// terminal width when one can be determined (falls back to 100 columns
// for non-terminal output, e.g. when captured in a test or a log file).
func Printf(format string, args ...any) {
	if !Enabled {
		return
	}

	log.Debugf("%s", wrap(sprintf(format, args...), width()))
}

// Countf is Printf for the "N things" summary lines the dump helpers
// produce, humanizing the count the way a CLI progress line would
// (go-corset's own debug-stats formatting convention).
func Countf(n int, noun, format string, args ...any) {
	if !Enabled {
		return
	}

	prefix := humanize.Comma(int64(n)) + " " + noun + ": "
	log.Debugf("%s%s", prefix, sprintf(format, args...))
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}

	sprintfFn := fmt.Sprintf

	return sprintfFn(format, args...)
}

func width() int {
	w, _, err := term.GetSize(1)
	if err != nil || w <= 0 {
		return 100
	}

	return w
}

// wrap breaks s into lines no wider than w, on word boundaries, so a long
// schedule or iteration-domain presentation doesn't spill past the
// terminal when dumped.
func wrap(s string, w int) string {
	if w <= 0 {
		return s
	}

	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}

	var b strings.Builder

	lineLen := 0

	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > w {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}

		b.WriteString(word)
		lineLen += len(word)
	}

	return b.String()
}

// Copyright (C) The Inch Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package inch

import (
	"fmt"
	"io"
	"os"

	"git.arvados.org/arvados.git/lib/cmd"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	handler = cmd.Multi(map[string]cmd.Handler{
		"version":   cmd.Version,
		"-version":  cmd.Version,
		"--version": cmd.Version,

		"matrix":   &matrixCmd{},
		"identify": &identifyCmd{},
		"pca":      &pcaCmd{},
	})
)

func Main() {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		logrus.StandardLogger().Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	}
	os.Exit(handler.RunCommand(os.Args[0], os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// reportError writes a one-line diagnostic for err. mode is "auto",
// "always" or "never"; "auto" colors the line only when stderr is a
// terminal.
func reportError(stderr io.Writer, mode string, err error) {
	c := color.New(color.FgRed, color.Bold)
	if useColor(stderr, mode) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	c.Fprintf(stderr, "[ERROR]: %s\n", err)
}

func useColor(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func validColorMode(mode string) error {
	switch mode {
	case "auto", "always", "never":
		return nil
	}
	return fmt.Errorf("invalid color mode %q (choices: auto, always, never)", mode)
}

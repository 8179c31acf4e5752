// Copyright (C) The Inch Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package inch

import (
	"flag"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

type matrixCmd struct {
	analysisArgs
}

func (cmd *matrixCmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	code, err := cmd.run(prog, args, stdout, stderr)
	if err != nil {
		reportError(stderr, cmd.color, err)
	}
	return code
}

func (cmd *matrixCmd) run(prog string, args []string, stdout, stderr io.Writer) (int, error) {
	cfg, err := loadConfig()
	if err != nil {
		return 2, err
	}
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: %s [options] FOUNDERS.vcf\n", prog)
		flags.PrintDefaults()
	}
	cmd.analysisArgs.Flags(flags, cfg, true)
	formatStr := flags.String("format", "text", "output `format`: text or npy")
	labelsFile := flags.String("labels", "", "with -format=npy, write row labels to `file`")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		return 0, nil
	} else if err != nil {
		return 2, nil
	} else if flags.NArg() != 1 {
		flags.Usage()
		return 2, nil
	}
	founders := flags.Arg(0)
	if err = cmd.Setup(); err != nil {
		return 2, err
	}
	format, err := parseOutputFormat(*formatStr)
	if err != nil {
		return 2, err
	}
	if err = checkLabelsFile(*labelsFile); err != nil {
		return 2, err
	}
	if err = cmd.CheckPaths(founders); err != nil {
		return 1, err
	}
	region, err := cmd.Region()
	if err != nil {
		return 2, err
	}
	enc, err := cmd.Encoding()
	if err != nil {
		return 2, err
	}
	specs, err := cmd.GroupSpecs()
	if err != nil {
		return 1, err
	}

	m, err := DistanceMatrix(founders, region, specs, enc)
	if err != nil {
		return 1, err
	}
	rows, cols := m.Dims()
	log.Printf("writing %d x %d distance matrix", rows, cols)
	if format == formatNumpy {
		err = writeTo(cmd.output, stdout, func(w io.Writer) error { return writeMatrixNumpy(w, m) })
		if err == nil && *labelsFile != "" {
			err = writeLabels(*labelsFile, stdout, m.Rows())
		}
	} else {
		err = writeTo(cmd.output, stdout, func(w io.Writer) error { return writeMatrixText(w, m) })
	}
	if err != nil {
		return 1, err
	}
	return 0, nil
}

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

type pcaCmd struct {
	analysisArgs
}

func (cmd *pcaCmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	code, err := cmd.run(prog, args, stdout, stderr)
	if err != nil {
		reportError(stderr, cmd.color, err)
	}
	return code
}

func (cmd *pcaCmd) run(prog string, args []string, stdout, stderr io.Writer) (int, error) {
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
	// groups cannot be used with PCA, so no -g here
	cmd.analysisArgs.Flags(flags, cfg, false)
	components := flags.Int("n", 2, "number of principal `components`")
	formatStr := flags.String("format", "text", "output `format`: text or npy")
	labelsFile := flags.String("labels", "", "with -format=npy, write sample IDs to `file`")
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

	res, err := RunPCA(founders, region, *components, enc)
	if err != nil {
		return 1, err
	}
	if format == formatNumpy {
		log.Printf("explained variance: %v", res.Variances)
		err = writeTo(cmd.output, stdout, func(w io.Writer) error { return writeMatrixNumpy(w, res.Weights) })
		if err == nil && *labelsFile != "" {
			err = writeLabels(*labelsFile, stdout, res.Weights.Rows())
		}
	} else {
		err = writeTo(cmd.output, stdout, func(w io.Writer) error { return writePCAText(w, res) })
	}
	if err != nil {
		return 1, err
	}
	return 0, nil
}

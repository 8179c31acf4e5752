package inch

import (
	"errors"
	"flag"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

type identifyCmd struct {
	analysisArgs
}

func (cmd *identifyCmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	code, err := cmd.run(prog, args, stdout, stderr)
	if err != nil {
		reportError(stderr, cmd.color, err)
	}
	return code
}

func (cmd *identifyCmd) run(prog string, args []string, stdout, stderr io.Writer) (int, error) {
	cfg, err := loadConfig()
	if err != nil {
		return 2, err
	}
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: %s [options] -d DESCENDENTS.vcf FOUNDERS.vcf\n", prog)
		flags.PrintDefaults()
	}
	cmd.analysisArgs.Flags(flags, cfg, true)
	descendents := flags.String("d", "", "VCF `file` with descendent genotypes")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		return 0, nil
	} else if err != nil {
		return 2, nil
	} else if flags.NArg() != 1 {
		flags.Usage()
		return 2, nil
	} else if *descendents == "" {
		return 2, errors.New("cannot identify founders without -d argument")
	}
	founders := flags.Arg(0)
	if err = cmd.Setup(); err != nil {
		return 2, err
	}
	if err = cmd.CheckPaths(founders, *descendents); err != nil {
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

	matches, err := IdentifyFounders(founders, *descendents, region, specs, enc)
	if err != nil {
		return 1, err
	}
	log.Printf("writing %d assignments", len(matches))
	err = writeTo(cmd.output, stdout, func(w io.Writer) error { return writeAssignment(w, matches) })
	if err != nil {
		return 1, err
	}
	return 0, nil
}

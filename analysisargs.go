// Copyright (C) The Inch Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package inch

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// groupList collects repeated -g flags.
type groupList []string

func (g *groupList) String() string { return strings.Join(*g, " ") }

func (g *groupList) Set(s string) error {
	*g = append(*g, s)
	return nil
}

// analysisArgs are the flags shared by the analysis subcommands.
type analysisArgs struct {
	region     string
	groups     groupList
	groupsFile string
	output     string
	encoding   string
	loglevel   string
	color      string
}

// Flags registers the shared flags, taking defaults from cfg.
func (a *analysisArgs) Flags(flags *flag.FlagSet, cfg Config, withGroups bool) {
	a.groups = nil
	flags.StringVar(&a.region, "c", "", "chromosome or region (`CHR[:START-END]`) to use from the VCF files; write {CHR} if the name contains \":\"")
	if withGroups {
		flags.Var(&a.groups, "g", "founder `GROUP` as comma-separated IDs (repeatable)")
		flags.StringVar(&a.groupsFile, "groups-file", "", "YAML `file` listing founder groups")
	}
	flags.StringVar(&a.output, "o", "-", "output `file`")
	flags.StringVar(&a.encoding, "encoding", cfg.Encoding, "allele encoding: default or star")
	flags.StringVar(&a.loglevel, "loglevel", cfg.LogLevel, "logging threshold (trace, debug, info, warn, error, fatal, or panic)")
	flags.StringVar(&a.color, "color", cfg.Color, "color error messages: auto, always, or never")
}

// Setup applies the log level and validates the flags that do not
// depend on input data.
func (a *analysisArgs) Setup() error {
	lvl, err := log.ParseLevel(a.loglevel)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	if err := validColorMode(a.color); err != nil {
		return err
	}
	_, err = EncodingByName(a.encoding)
	return err
}

func (a *analysisArgs) Region() (Region, error) {
	return ParseRegion(a.region)
}

func (a *analysisArgs) Encoding() (Encoding, error) {
	return EncodingByName(a.encoding)
}

// GroupSpecs returns the -g values followed by the groups listed in
// -groups-file, if any.
func (a *analysisArgs) GroupSpecs() ([]string, error) {
	specs := append([]string(nil), a.groups...)
	if a.groupsFile != "" {
		more, err := LoadGroupsFile(a.groupsFile)
		if err != nil {
			return nil, err
		}
		specs = append(specs, more...)
	}
	return specs, nil
}

// CheckPaths fails early if an input file or the output directory
// does not exist.
func (a *analysisArgs) CheckPaths(inputs ...string) error {
	for _, fnm := range inputs {
		if _, err := os.Stat(fnm); err != nil {
			return fmt.Errorf("%s does not exist", fnm)
		}
	}
	if a.output != "-" {
		dir := filepath.Dir(a.output)
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			return fmt.Errorf("directory for %s does not exist", a.output)
		}
	}
	return nil
}

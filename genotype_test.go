// Copyright (C) The Inch Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package inch

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gopkg.in/check.v1"
)

type genotypeSuite struct{}

var _ = check.Suite(&genotypeSuite{})

// codes returns the allele codes of g, one row per position.
func codes(g *GenotypeMatrix) [][]int64 {
	out := make([][]int64, g.NumPositions())
	for p := range out {
		out[p] = make([]int64, g.NumSamples())
		for s := range out[p] {
			out[p][s] = g.Call(p, s).Code()
		}
	}
	return out
}

func (s *genotypeSuite) TestEncodeFounders(c *check.C) {
	g, err := LoadGenotypes("testdata/founders.vcf", Region{}, DefaultEncoding)
	c.Assert(err, check.IsNil)
	c.Check(g.Chrom, check.Equals, "1")
	c.Check(g.Positions(), check.DeepEquals, []int{100, 200, 300, 400})
	c.Check(g.Samples(), check.DeepEquals, []string{"F1", "F2", "F3"})
	c.Check(codes(g), check.DeepEquals, [][]int64{
		{1, 1, 1},
		{2, 2, 4},
		{3, 3, 1},
		{4, 21, 21},
	})
}

func (s *genotypeSuite) TestMissingAndDeletion(c *check.C) {
	g, err := LoadGenotypes("testdata/multichr.vcf", Region{Chrom: "Y"}, DefaultEncoding)
	c.Assert(err, check.IsNil)
	c.Check(g.Positions(), check.DeepEquals, []int{100, 250, 300})
	// Y:250 T C,* with GT 2 0 1 .
	c.Check(g.Call(1, 0), check.Equals, Present(DeletionCode))
	c.Check(g.Call(1, 1), check.Equals, Present(4))
	c.Check(g.Call(1, 2), check.Equals, Present(2))
	c.Check(g.Call(1, 3).IsMissing(), check.Equals, true)
	c.Check(g.Call(1, 3).Code(), check.Equals, int64(-5))
	c.Check(g.Call(1, 3).Matches(g.Call(1, 3)), check.Equals, true)
	c.Check(g.Call(1, 3).Matches(Missing(missingSentinel(2))), check.Equals, false)
	c.Check(g.Call(1, 3).Matches(Present(-5)), check.Equals, false)
	c.Check(g.Call(1, 0).Matches(Present(DeletionCode)), check.Equals, true)

	g, err = LoadGenotypes("testdata/multichr.vcf", Region{Chrom: "1"}, DefaultEncoding)
	c.Assert(err, check.IsNil)
	c.Check(g.Call(1, 2), check.Equals, Missing(-4))
}

func (s *genotypeSuite) TestNonHaploid(c *check.C) {
	hook := test.NewGlobal()
	defer hook.Reset()
	g, err := LoadGenotypes("testdata/diploid.vcf", Region{}, DefaultEncoding)
	c.Assert(err, check.IsNil)
	c.Check(codes(g)[0], check.DeepEquals, []int64{1, 3})
	c.Check(g.Call(1, 0), check.Equals, Present(4))
	c.Check(g.Call(1, 1).IsMissing(), check.Equals, true)

	var warned *logrus.Entry
	for i := range hook.Entries {
		if hook.Entries[i].Level == logrus.WarnLevel {
			warned = &hook.Entries[i]
		}
	}
	c.Assert(warned, check.NotNil)
	c.Check(warned.Message, check.Equals, "non-haploid genotypes detected, first allele used")
	c.Check(warned.Data["samples"], check.Equals, "S1,S2")
}

func (s *genotypeSuite) TestEncodeErrors(c *check.C) {
	for _, trial := range []struct {
		line string
		err  error
	}{
		{"1\t1\t.\tA\tC\t.\t.\t.\tDP:GT\t3:0", ErrInvalidFormat},
		{"1\t1\t.\tA\tC\t.\t.\t.\tGQ\t0", ErrInvalidFormat},
		{"1\t1\t.\tN\tC\t.\t.\t.\tGT\t0", ErrInvalidAllele},
		{"1\t1\t.\tA\tC,<DEL>\t.\t.\t.\tGT\t0", ErrInvalidAllele},
		{"1\t1\t.\tA\tC\t.\t.\t.\tGT\tx", ErrInvalidGenotypeCode},
		{"1\t1\t.\tA\tC\t.\t.\t.\tGT\t-1", ErrInvalidGenotypeCode},
		{"1\t1\t.\tA\tC\t.\t.\t.\tGT\t2", ErrInvalidGenotypeCode},
		{"1\t1\t.\tA\t.\t.\t.\t.\tGT\t1", ErrInvalidGenotypeCode},
	} {
		fnm := writeFile(c, vcfHeader+"\tS1\n"+trial.line+"\n")
		_, err := LoadGenotypes(fnm, Region{}, DefaultEncoding)
		c.Check(errors.Is(err, trial.err), check.Equals, true, check.Commentf("%q: %v", trial.line, err))
	}
}

func (s *genotypeSuite) TestNewGenotypeMatrix(c *check.C) {
	_, err := NewGenotypeMatrix("1", []int{1, 2}, []string{"A"}, [][]Call{{Present(1)}})
	c.Check(err, check.NotNil)
	_, err = NewGenotypeMatrix("1", []int{1}, []string{"A", "B"}, [][]Call{{Present(1)}})
	c.Check(err, check.NotNil)
	g, err := NewGenotypeMatrix("1", []int{1}, []string{"A", "B"}, [][]Call{{Present(1), Missing(-3)}})
	c.Assert(err, check.IsNil)
	c.Check(g.Call(0, 1).IsMissing(), check.Equals, true)
}

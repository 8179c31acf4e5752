package inch

import (
	"gopkg.in/check.v1"
)

type labeledSuite struct{}

var _ = check.Suite(&labeledSuite{})

func (s *labeledSuite) TestIndexing(c *check.C) {
	m, err := newLabeledMatrix([]string{"r1", "r2"}, []string{"a", "b", "c"})
	c.Assert(err, check.IsNil)
	m.set(1, 2, 0.5)
	c.Check(m.At(1, 2), check.Equals, 0.5)
	v, ok := m.Get("r2", "c")
	c.Check(ok, check.Equals, true)
	c.Check(v, check.Equals, 0.5)
	_, ok = m.Get("r3", "c")
	c.Check(ok, check.Equals, false)
	_, ok = m.Get("r1", "z")
	c.Check(ok, check.Equals, false)
	j, ok := m.ColIndex("b")
	c.Check(ok, check.Equals, true)
	c.Check(j, check.Equals, 1)
	c.Check(m.Float64s(), check.DeepEquals, []float64{0, 0, 0, 0, 0, 0.5})

	// returned label slices are copies
	rows := m.Rows()
	rows[0] = "changed"
	c.Check(m.Rows()[0], check.Equals, "r1")
}

func (s *labeledSuite) TestBadLabels(c *check.C) {
	_, err := newLabeledMatrix([]string{"x", "x"}, []string{"a"})
	c.Check(err, check.ErrorMatches, `duplicate row label "x"`)
	_, err = newLabeledMatrix([]string{"x"}, []string{"a", "a"})
	c.Check(err, check.ErrorMatches, `duplicate column label "a"`)
	_, err = newLabeledMatrix(nil, []string{"a"})
	c.Check(err, check.NotNil)
}

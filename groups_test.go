package inch

import (
	"errors"
	"io/ioutil"

	"gopkg.in/check.v1"
)

type groupsSuite struct{}

var _ = check.Suite(&groupsSuite{})

func (s *groupsSuite) TestResolve(c *check.C) {
	ids := []string{"F1", "F2", "F3", "F4", "F5"}
	p, err := ResolveGroups(ids, []string{"F4,F2", "F5"})
	c.Assert(err, check.IsNil)
	c.Check(p, check.DeepEquals, Partition{{"F4", "F2"}, {"F5"}, {"F1"}, {"F3"}})
	c.Check(p.Labels(), check.DeepEquals, []string{"F4,F2", "F5", "F1", "F3"})
	c.Check(p.LabelOf()["F2"], check.Equals, "F4,F2")

	// every ID appears exactly once
	count := map[string]int{}
	for _, group := range p {
		for _, id := range group {
			count[id]++
		}
	}
	c.Check(count, check.HasLen, len(ids))
	for _, id := range ids {
		c.Check(count[id], check.Equals, 1)
	}
}

func (s *groupsSuite) TestNoSpecs(c *check.C) {
	ids := []string{"B", "A"}
	p, err := ResolveGroups(ids, nil)
	c.Assert(err, check.IsNil)
	c.Check(p, check.DeepEquals, Singletons(ids))
}

func (s *groupsSuite) TestBadGroups(c *check.C) {
	ids := []string{"F1", "F2", "F3"}
	_, err := ResolveGroups(ids, []string{"F1,F2", "F2,F3"})
	c.Check(errors.Is(err, ErrDuplicateGroupMember), check.Equals, true)
	_, err = ResolveGroups(ids, []string{"F1,F1"})
	c.Check(errors.Is(err, ErrDuplicateGroupMember), check.Equals, true)
	_, err = ResolveGroups(ids, []string{"F1,F9"})
	c.Check(errors.Is(err, ErrUnknownGroupMember), check.Equals, true)
}

func (s *groupsSuite) TestLoadGroupsFile(c *check.C) {
	specs, err := LoadGroupsFile("testdata/groups.yaml")
	c.Assert(err, check.IsNil)
	c.Check(specs, check.DeepEquals, []string{"F1,F2", "F3"})

	fnm := c.MkDir() + "/groups.yaml"
	err = ioutil.WriteFile(fnm, []byte("- [1, 2]\n- \"3,4\"\n"), 0644)
	c.Assert(err, check.IsNil)
	specs, err = LoadGroupsFile(fnm)
	c.Assert(err, check.IsNil)
	c.Check(specs, check.DeepEquals, []string{"1,2", "3,4"})

	err = ioutil.WriteFile(fnm, []byte("groups: {a: b}\n"), 0644)
	c.Assert(err, check.IsNil)
	_, err = LoadGroupsFile(fnm)
	c.Check(err, check.NotNil)
}

package inch

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// Partition is a list of disjoint, non-empty groups of sample IDs
// covering a whole ID set.
type Partition [][]string

// Label returns the canonical label of group i: its members joined
// by commas, in order.
func (p Partition) Label(i int) string { return strings.Join(p[i], ",") }

// Labels returns every group's label, in order.
func (p Partition) Labels() []string {
	labels := make([]string, len(p))
	for i := range p {
		labels[i] = p.Label(i)
	}
	return labels
}

// LabelOf returns a map from each member ID to its group's label.
func (p Partition) LabelOf() map[string]string {
	m := map[string]string{}
	for i, group := range p {
		label := p.Label(i)
		for _, id := range group {
			m[id] = label
		}
	}
	return m
}

// Singletons returns the partition with one group per ID.
func Singletons(ids []string) Partition {
	p := make(Partition, len(ids))
	for i, id := range ids {
		p[i] = []string{id}
	}
	return p
}

// ResolveGroups expands group specs (each a comma-separated list of
// IDs) into a complete partition of ids. IDs not named in any spec
// become singleton groups, appended in ids order.
func ResolveGroups(ids []string, specs []string) (Partition, error) {
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	used := map[string]bool{}
	var p Partition
	for _, spec := range specs {
		var group []string
		for _, id := range strings.Split(spec, ",") {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if used[id] {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateGroupMember, id)
			}
			if !known[id] {
				return nil, fmt.Errorf("%w: %q", ErrUnknownGroupMember, id)
			}
			used[id] = true
			group = append(group, id)
		}
		if len(group) > 0 {
			p = append(p, group)
		}
	}
	for _, id := range ids {
		if !used[id] {
			p = append(p, []string{id})
		}
	}
	return p, nil
}

// LoadGroupsFile reads group specs from a YAML file. The document is
// a list; each item is either a list of IDs or a comma-separated
// string of IDs.
//
//	- [F1, F2]
//	- F3,F4
func LoadGroupsFile(fnm string) ([]string, error) {
	buf, err := os.ReadFile(fnm)
	if err != nil {
		return nil, err
	}
	var doc []interface{}
	err = yaml.Unmarshal(buf, &doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fnm, err)
	}
	specs := make([]string, 0, len(doc))
	for i, item := range doc {
		switch item := item.(type) {
		case []interface{}:
			ids := make([]string, len(item))
			for j, id := range item {
				ids[j] = fmt.Sprint(id)
			}
			specs = append(specs, strings.Join(ids, ","))
		case string:
			specs = append(specs, item)
		case nil:
			return nil, fmt.Errorf("%s: group %d is empty", fnm, i+1)
		default:
			specs = append(specs, fmt.Sprint(item))
		}
	}
	return specs, nil
}

// Package catalog provides the searchable ICD-10 code index used to tag
// quotation and invoice line items.
package catalog

import (
	"regexp"
	"strings"
)

// Node is one entry in the hierarchical ICD-10 dataset. Chapters and code
// ranges carry children; clinical codes are usually leaves.
type Node struct {
	Code     string `json:"code"`
	Desc     string `json:"desc"`
	DescFull string `json:"desc_full,omitempty"`
	Children []Node `json:"children"`
}

// Entry is a flattened, searchable catalog entry.
type Entry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	FullPath    string `json:"fullPath"`
}

// clinicalCode matches specific clinical codes like S78 or S78.1, as opposed
// to chapter and range headings like "S70-S79".
var clinicalCode = regexp.MustCompile(`^[A-Z]\d{2}(\.\d+)?$`)

// Flatten walks the hierarchy in pre-order and returns the searchable
// entries. A node is included when it is a leaf, or when its code is a
// specific clinical code even though it still has children. The full path
// is the chain of short descriptions from the root down to the node.
func Flatten(nodes []Node) []Entry {
	var entries []Entry

	var traverse func(nodes []Node, parentPath string)
	traverse = func(nodes []Node, parentPath string) {
		for _, n := range nodes {
			path := n.Desc
			if parentPath != "" {
				path = parentPath + " > " + n.Desc
			}

			description := n.Desc
			if n.DescFull != "" {
				description = n.DescFull
			}

			if len(n.Children) == 0 || clinicalCode.MatchString(n.Code) {
				entries = append(entries, Entry{
					Code:        n.Code,
					Description: description,
					FullPath:    path,
				})
			}

			if len(n.Children) > 0 {
				traverse(n.Children, path)
			}
		}
	}

	traverse(nodes, "")

	return entries
}

// matches reports whether the entry contains the lower-cased term in its
// code, description or full path.
func (e Entry) matches(term string) bool {
	return strings.Contains(strings.ToLower(e.Code), term) ||
		strings.Contains(strings.ToLower(e.Description), term) ||
		strings.Contains(strings.ToLower(e.FullPath), term)
}

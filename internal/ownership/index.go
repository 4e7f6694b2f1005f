package ownership

import (
	"fmt"
	"sort"

	"fortio.org/safecast"

	"ownlint/internal/decl"
)

type NodeID uint32

// Index assigns dense IDs to the reference-type declarations of one run.
// Value types are not nodes; they act as transparent conduits and are
// flattened away during graph construction.
type Index struct {
	NameToID map[string]NodeID
	IDToName []string
}

// BuildIndex collects unique reference-type names, sorts them and hands out
// IDs in order, so IDs are stable for identical input.
func BuildIndex(decls []decl.Decl) Index {
	uniq := make(map[string]struct{}, len(decls))
	for i := range decls {
		if decls[i].IsReference() && decls[i].Name != "" {
			uniq[decls[i].Name] = struct{}{}
		}
	}

	names := make([]string, 0, len(uniq))
	for name := range uniq {
		names = append(names, name)
	}
	sort.Strings(names)

	nameToID := make(map[string]NodeID, len(names))
	for i, name := range names {
		id, err := safecast.Conv[NodeID](i)
		if err != nil {
			panic(fmt.Errorf("node id overflow: %w", err))
		}
		nameToID[name] = id
	}

	return Index{
		NameToID: nameToID,
		IDToName: names,
	}
}

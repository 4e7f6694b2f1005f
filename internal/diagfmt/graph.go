package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"ownlint/internal/ownership"
)

// GraphNodeJSON is one reference type in a graph dump.
type GraphNodeJSON struct {
	Name      string   `json:"name"`
	Annotated bool     `json:"annotated"`
	Owns      []string `json:"owns,omitempty"`
}

// GraphClusterJSON is one mutual-ownership cluster (SCC of size > 1).
type GraphClusterJSON struct {
	Members []string `json:"members"`
}

// GraphOutput is the root structure of a JSON graph dump.
type GraphOutput struct {
	Nodes    []GraphNodeJSON    `json:"nodes"`
	Clusters []GraphClusterJSON `json:"clusters,omitempty"`
}

// BuildGraphOutput shapes a validation result's graph for serialisation.
func BuildGraphOutput(res *ownership.Result) GraphOutput {
	idx := res.Graph.Idx
	out := GraphOutput{Nodes: make([]GraphNodeJSON, 0, len(idx.IDToName))}
	for i, name := range idx.IDToName {
		node := GraphNodeJSON{
			Name:      name,
			Annotated: res.Graph.Annotated[i],
		}
		for _, to := range res.Graph.Edges[i] {
			node.Owns = append(node.Owns, idx.IDToName[int(to)])
		}
		out.Nodes = append(out.Nodes, node)
	}
	for _, comp := range res.SCC.Comps {
		if len(comp) < 2 {
			continue
		}
		cluster := GraphClusterJSON{Members: make([]string, 0, len(comp))}
		for _, id := range comp {
			cluster.Members = append(cluster.Members, idx.IDToName[int(id)])
		}
		out.Clusters = append(out.Clusters, cluster)
	}
	return out
}

// GraphJSON writes the ownership graph as indented JSON.
func GraphJSON(w io.Writer, res *ownership.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildGraphOutput(res))
}

// GraphText writes a line-oriented dump of the ownership graph:
// one node per line with its outgoing edges, then the declared clusters.
func GraphText(w io.Writer, res *ownership.Result, opts GraphOpts) {
	out := BuildGraphOutput(res)
	nameStyle := color.New(color.Bold)
	dimStyle := color.New(color.Faint)
	if !opts.Color {
		nameStyle.DisableColor()
		dimStyle.DisableColor()
	}

	for _, node := range out.Nodes {
		suffix := ""
		if !node.Annotated {
			suffix = dimStyle.Sprint(" (unannotated)")
		}
		if len(node.Owns) == 0 {
			fmt.Fprintf(w, "%s%s\n", nameStyle.Sprint(node.Name), suffix)
			continue
		}
		fmt.Fprintf(w, "%s%s -> %s\n", nameStyle.Sprint(node.Name), suffix, strings.Join(node.Owns, ", "))
	}
	for _, cluster := range out.Clusters {
		fmt.Fprintf(w, "cluster: %s\n", strings.Join(cluster.Members, " <-> "))
	}
}

package pipeline

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/matzehuels/sankeyflow/pkg/cache"
	"github.com/matzehuels/sankeyflow/pkg/flow"
	"github.com/matzehuels/sankeyflow/pkg/flow/transform"
	sfio "github.com/matzehuels/sankeyflow/pkg/io"
)

func newResult() *Result {
	return &Result{RunID: uuid.NewString(), Graph: flow.NewGraph(), Layers: transform.LayerResult{MaxDepth: -1}}
}

// TableHash returns a content hash of t. Cells hash by kind and text, so
// the number 5 and the string "5" hash differently, as do an absent cell
// and an empty string.
func TableHash(t flow.Table) string {
	canon := make(map[string][]string, len(t))
	for name, col := range t {
		enc := make([]string, len(col))
		for i, c := range col {
			enc[i] = c.Kind().String() + ":" + c.Text()
		}
		canon[name] = enc
	}
	data, _ := json.Marshal(canon) // map keys encode sorted
	return cache.Hash(data)
}

func graphHash(g *flow.Graph) string {
	data, err := marshalGraph(g)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

func marshalGraph(g *flow.Graph) ([]byte, error) {
	return sfio.MarshalGraph(g)
}

// Command update-golden recomputes the "want" value of every golden case from
// the current pipeline output. Comments and layout of the file are kept.
//
//	go run ./scripts/update-golden
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstrap/pkg/pipeline"
	"github.com/goliatone/go-formstrap/pkg/testsupport"
)

func main() {
	var (
		path  = flag.String("cases", "pkg/testsupport/testdata/cases.yaml", "golden cases file")
		check = flag.Bool("check", false, "fail instead of writing when a case is stale")
	)
	flag.Parse()

	data, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read cases: %v\n", err)
		os.Exit(1)
	}

	updated, stale, err := refresh(data, pipeline.New())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to refresh cases: %v\n", err)
		os.Exit(1)
	}
	if len(stale) == 0 {
		fmt.Println("golden cases up to date")
		return
	}
	for _, name := range stale {
		fmt.Printf("stale: %s\n", name)
	}
	if *check {
		os.Exit(1)
	}
	if err := os.WriteFile(*path, updated, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write cases: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("updated %d case(s) in %s\n", len(stale), *path)
}

// refresh rewrites the want node of every case whose pipeline output differs
// and returns the names of those cases.
func refresh(data []byte, p *pipeline.Pipeline) ([]byte, []string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("update-golden: parse: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.SequenceNode {
		return nil, nil, fmt.Errorf("update-golden: expected a list of cases")
	}

	var stale []string
	for _, item := range doc.Content[0].Content {
		var c testsupport.Case
		if err := item.Decode(&c); err != nil {
			return nil, nil, fmt.Errorf("update-golden: decode case: %w", err)
		}
		got := p.Apply(c.Fragment, c.Meta)
		if got == c.Want {
			continue
		}
		want := valueNode(item, "want")
		if want == nil {
			want = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str"}
			item.Content = append(item.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: "want"}, want)
		}
		want.Value = got
		stale = append(stale, c.Name)
	}
	if len(stale) == 0 {
		return data, nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, nil, fmt.Errorf("update-golden: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, nil, fmt.Errorf("update-golden: encode: %w", err)
	}
	return buf.Bytes(), stale, nil
}

func valueNode(mapping *yaml.Node, key string) *yaml.Node {
	if mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

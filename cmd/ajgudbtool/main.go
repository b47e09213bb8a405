/*
Copyright 2026 The AjguDB Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command ajgudbtool is a small operator CLI for an embedded graph:
// open a database, create a handful of entities, run a single-label
// count, and print it. Grounded on cmd/camdbinit's shape (flag-driven
// single-purpose tool, an exitf helper, subcommands dispatched by
// os.Args), adapted from a SQL schema initializer to a graph store
// opener.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pombredanne/ajgudb/entitystore"
	"github.com/pombredanne/ajgudb/graphdb"
	"github.com/pombredanne/ajgudb/pkg/jsonconfig"
	"github.com/pombredanne/ajgudb/traversal"
)

var (
	flagType      = flag.String("type", "leveldb", "storage backend: memory, leveldb, or kvfile")
	flagFile      = flag.String("file", "", "path to the database file or directory (ignored for -type=memory)")
	flagCacheSize = flag.Int("cachesize", 0, "leveldb block cache size in bytes (0 = backend default)")
	flagConfig    = flag.String("config", "", "path to a jsonconfig file describing the backend (overrides -type/-file/-cachesize; supports [\"_env\", \"${VAR}\"] expansion)")
)

func main() {
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	db, err := openDB()
	if err != nil {
		exitf("opening database: %v", err)
	}
	defer db.Close()

	switch cmd, rest := args[0], args[1:]; cmd {
	case "vertex-create":
		runVertexCreate(db, rest)
	case "vertex-get":
		runVertexGet(db, rest)
	case "link":
		runLink(db, rest)
	case "count-label":
		runCountLabel(db, rest)
	default:
		exitf("unknown subcommand %q", cmd)
	}
}

func openDB() (*graphdb.DB, error) {
	if *flagConfig != "" {
		cfg, err := jsonconfig.ReadFile(*flagConfig)
		if err != nil {
			return nil, fmt.Errorf("reading -config %s: %w", *flagConfig, err)
		}
		// kvengine.Open reads "type" itself; Validate afterward so an
		// unrecognized key is still reported even on a config that
		// otherwise opens fine.
		db, err := graphdb.Open(cfg)
		if err != nil {
			return nil, err
		}
		if verr := cfg.Validate(); verr != nil {
			db.Close()
			return nil, fmt.Errorf("-config %s: %w", *flagConfig, verr)
		}
		return db, nil
	}
	if *flagType == "memory" {
		return graphdb.OpenMemory(), nil
	}
	cfg := jsonconfig.Obj{"type": *flagType}
	if *flagFile != "" {
		cfg["file"] = *flagFile
	}
	if *flagCacheSize != 0 {
		cfg["cacheSize"] = float64(*flagCacheSize)
	}
	return graphdb.Open(cfg)
}

// runVertexCreate handles: ajgudbtool vertex-create <label> [k=v ...]
func runVertexCreate(db *graphdb.DB, args []string) {
	if len(args) == 0 {
		exitf("vertex-create: label required")
	}
	label := args[0]
	props, err := parseProperties(args[1:])
	if err != nil {
		exitf("vertex-create: %v", err)
	}
	v, err := db.Vertex.Create(label, props)
	if err != nil {
		exitf("vertex-create: %v", err)
	}
	fmt.Printf("%d\n", v.ID)
}

// runVertexGet handles: ajgudbtool vertex-get <id>
func runVertexGet(db *graphdb.DB, args []string) {
	if len(args) != 1 {
		exitf("vertex-get: exactly one id required")
	}
	id, err := parseID(args[0])
	if err != nil {
		exitf("vertex-get: %v", err)
	}
	v, err := db.Vertex.Get(id)
	if err != nil {
		exitf("vertex-get: %v", err)
	}
	printJSON(map[string]interface{}{
		"id":         v.ID,
		"label":      v.Label,
		"properties": v.Properties,
	})
}

// runLink handles: ajgudbtool link <start-id> <label> <end-id> [k=v ...]
func runLink(db *graphdb.DB, args []string) {
	if len(args) < 3 {
		exitf("link: start id, label, and end id required")
	}
	start, err := parseID(args[0])
	if err != nil {
		exitf("link: %v", err)
	}
	end, err := parseID(args[2])
	if err != nil {
		exitf("link: %v", err)
	}
	props, err := parseProperties(args[3:])
	if err != nil {
		exitf("link: %v", err)
	}
	a, err := db.Vertex.Get(start)
	if err != nil {
		exitf("link: start vertex: %v", err)
	}
	b, err := db.Vertex.Get(end)
	if err != nil {
		exitf("link: end vertex: %v", err)
	}
	e, err := a.Link(args[1], b, props)
	if err != nil {
		exitf("link: %v", err)
	}
	fmt.Printf("%d\n", e.ID)
}

// runCountLabel handles: ajgudbtool count-label <label>
func runCountLabel(db *graphdb.DB, args []string) {
	if len(args) != 1 {
		exitf("count-label: exactly one label required")
	}
	seq := traversal.New(traversal.Vertices(args[0])).Run(db, nil)
	n, err := traversal.Count(seq)
	if err != nil {
		exitf("count-label: %v", err)
	}
	fmt.Printf("%d\n", n)
}

func parseID(s string) (uint64, error) {
	var id uint64
	if _, err := fmt.Sscanf(s, "%d", &id); err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// parseProperties turns "key=value" arguments into a Properties map.
// Every value is stored as a string; callers needing typed properties
// should use the package API directly rather than this CLI.
func parseProperties(args []string) (entitystore.Properties, error) {
	if len(args) == 0 {
		return nil, nil
	}
	props := entitystore.Properties{}
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("malformed property %q, want key=value", arg)
		}
		props[k] = v
	}
	return props, nil
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		exitf("encoding output: %v", err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: ajgudbtool [flags] <subcommand> [args]

Subcommands:
  vertex-create <label> [k=v ...]   create a vertex, print its id
  vertex-get <id>                   print a vertex as JSON
  link <start-id> <label> <end-id> [k=v ...]   create an edge, print its id
  count-label <label>               count vertices with the given label

Flags:
`)
	flag.PrintDefaults()
}

func exitf(format string, args ...interface{}) {
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

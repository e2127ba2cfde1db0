// Command propdump prints the property grid of a scene node.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/johnwards/propgrid/internal/binding"
	"github.com/johnwards/propgrid/internal/config"
	"github.com/johnwards/propgrid/internal/database"
	"github.com/johnwards/propgrid/internal/render"
	"github.com/johnwards/propgrid/internal/store"
)

type options struct {
	db     string
	node   string
	hidden bool
	stored bool
}

func parseFlags(fs *flag.FlagSet, args []string) (options, error) {
	var o options
	fs.StringVar(&o.db, "db", config.Load().DBPath, "SQLite database path")
	fs.StringVar(&o.node, "node", "", "node ID; lists nodes when empty")
	fs.BoolVar(&o.hidden, "all", false, "include hidden properties")
	fs.BoolVar(&o.stored, "stored", false, "print the node's stored attribute JSON instead of the grid")
	err := fs.Parse(args)
	return o, err
}

func main() {
	o, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if err := run(context.Background(), os.Stdout, o); err != nil {
		slog.Error("propdump failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, o options) error {
	db, err := database.Open(o.db)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()
	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	s := store.New(db)
	if o.node == "" {
		nodes, err := s.Nodes.List(ctx, "")
		if err != nil {
			return err
		}
		for _, n := range nodes {
			fmt.Fprintf(w, "%-20s %-10s %s\n", n.ID, n.Kind, n.Name)
		}
		return nil
	}

	if o.stored {
		return dumpStored(ctx, w, s, o.node)
	}

	bd, err := binding.NewBinder(s, nil, nil).Bind(ctx, o.node)
	if err != nil {
		return err
	}
	out, err := render.Render(bd.Properties(), bd.Target(ctx), render.Options{ShowHidden: o.hidden})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s (%s)\n\n%s", bd.Node.Name, bd.Node.Kind, out)
	return nil
}

// dumpStored prints the raw stored values of a node, sorted by name.
func dumpStored(ctx context.Context, w io.Writer, s *store.Store, nodeID string) error {
	if _, err := s.Nodes.Get(ctx, nodeID); err != nil {
		return err
	}
	attrs, err := s.Attributes.All(ctx, nodeID)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s = %s\n", name, attrs[name])
	}
	return nil
}

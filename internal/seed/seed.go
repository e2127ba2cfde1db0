package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Seed loads the embedded catalog into the database. It is idempotent:
// existing rows are left untouched. Specs go in before the scene so the demo
// nodes have catalogs to bind against.
func Seed(ctx context.Context, db *sql.DB) error {
	c, err := Load()
	if err != nil {
		return err
	}
	if err := Specs(ctx, db, c); err != nil {
		return fmt.Errorf("seed specs: %w", err)
	}
	if err := Scene(ctx, db, c); err != nil {
		return fmt.Errorf("seed scene: %w", err)
	}
	return nil
}

func timestamp() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// Specs inserts the spec catalog and default property of every kind.
// A kind that already has specs keeps them.
func Specs(ctx context.Context, db *sql.DB, c *Catalog) error {
	for _, kind := range c.KindNames() {
		var n int
		if err := db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM property_specs WHERE kind = ?`, kind).Scan(&n); err != nil {
			return fmt.Errorf("count specs for %s: %w", kind, err)
		}
		if n == 0 {
			recs, err := c.Records(kind)
			if err != nil {
				return err
			}
			for _, r := range recs {
				var def any
				if r.DefaultValue != nil {
					def = string(r.DefaultValue)
				}
				_, err := db.ExecContext(ctx,
					`INSERT OR IGNORE INTO property_specs
					 (kind, position, name, type_name, category, description, editor,
					  expandable, read_only, hidden, disabled, refresh_properties, default_value)
					 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
					kind, r.Position, r.Name, r.TypeName, r.Category, r.Description, r.Editor,
					r.Expandable, r.ReadOnly, r.Hidden, r.Disabled, r.RefreshProperties, def)
				if err != nil {
					return fmt.Errorf("insert spec %s.%s: %w", kind, r.Name, err)
				}
			}
		}

		if dp := c.Kinds[kind].DefaultProperty; dp != "" {
			_, err := db.ExecContext(ctx,
				`INSERT OR IGNORE INTO kind_settings (kind, default_property) VALUES (?, ?)`, kind, dp)
			if err != nil {
				return fmt.Errorf("insert default property for %s: %w", kind, err)
			}
		}
	}
	return nil
}

// Scene inserts the demo nodes and their initial attribute values.
func Scene(ctx context.Context, db *sql.DB, c *Catalog) error {
	ts := timestamp()
	for _, n := range c.Scene {
		var parent any
		if n.Parent != "" {
			parent = n.Parent
		}
		res, err := db.ExecContext(ctx,
			`INSERT OR IGNORE INTO nodes (id, kind, name, parent_id, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			n.ID, n.Kind, n.Name, parent, ts, ts)
		if err != nil {
			return fmt.Errorf("insert node %s: %w", n.ID, err)
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			continue
		}

		for name, v := range n.Attributes {
			raw, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("node %s attribute %s: %w", n.ID, name, err)
			}
			if _, err := db.ExecContext(ctx,
				`INSERT INTO attribute_values (node_id, name, value, updated_at) VALUES (?, ?, ?, ?)`,
				n.ID, name, string(raw), ts); err != nil {
				return fmt.Errorf("insert attribute %s.%s: %w", n.ID, name, err)
			}
			if _, err := db.ExecContext(ctx,
				`INSERT INTO attribute_history (node_id, name, value, timestamp, source) VALUES (?, ?, ?, ?, 'SEED')`,
				n.ID, name, string(raw), ts); err != nil {
				return fmt.Errorf("insert history %s.%s: %w", n.ID, name, err)
			}
		}
	}
	return nil
}

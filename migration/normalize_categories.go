// Package migration holds one-shot data maintenance jobs. They run at boot
// behind an env flag and are idempotent: a second run finds nothing to do.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/imudaynigam/finance-tracker-techbridge/utils"
)

type categoryRow struct {
	id   string
	name string
}

// NormalizeCategories fixes category rows imported before names were
// lowercased on write. It lowercases and trims every name, then merges
// duplicates: transactions are repointed to the surviving row and the
// duplicates are deactivated under a mangled name so the unique constraint
// stays satisfiable.
func NormalizeCategories(db *sql.DB) error {
	ctx := context.Background()

	log.Println("🚀 Normalizing category names...")

	rows, err := db.QueryContext(ctx, `
		SELECT id, name
		FROM categories
		ORDER BY created_at ASC
	`)
	if err != nil {
		return fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	groups := make(map[string][]categoryRow)
	var order []string
	for rows.Next() {
		var c categoryRow
		if err := rows.Scan(&c.id, &c.name); err != nil {
			return fmt.Errorf("failed to scan category: %w", err)
		}
		normalized := strings.ToLower(strings.TrimSpace(c.name))
		if _, seen := groups[normalized]; !seen {
			order = append(order, normalized)
		}
		groups[normalized] = append(groups[normalized], c)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	// All updates happen in one transaction so a half-merged state never
	// becomes visible.
	var renamed, merged int
	err = utils.WithTransaction(db, func(tx *sql.Tx) error {
		for _, normalized := range order {
			group := groups[normalized]

			// The row already bearing the normalized name survives;
			// otherwise the oldest does.
			keeper := group[0]
			for _, c := range group {
				if c.name == normalized {
					keeper = c
					break
				}
			}

			for _, c := range group {
				if c.id == keeper.id {
					continue
				}
				if _, err := tx.ExecContext(ctx,
					"UPDATE transactions SET category_id = $1 WHERE category_id = $2",
					keeper.id, c.id); err != nil {
					return fmt.Errorf("failed to repoint transactions from %s: %w", c.id, err)
				}
				mangled := normalized + ":merged:" + c.id[:8]
				if len(mangled) > 100 {
					mangled = mangled[len(mangled)-100:]
				}
				if _, err := tx.ExecContext(ctx,
					"UPDATE categories SET name = $1, is_active = FALSE, updated_at = NOW() WHERE id = $2",
					mangled, c.id); err != nil {
					return fmt.Errorf("failed to deactivate duplicate %s: %w", c.id, err)
				}
				merged++
			}

			if keeper.name != normalized {
				if _, err := tx.ExecContext(ctx,
					"UPDATE categories SET name = $1, updated_at = NOW() WHERE id = $2",
					normalized, keeper.id); err != nil {
					return fmt.Errorf("failed to rename category %s: %w", keeper.id, err)
				}
				renamed++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if renamed == 0 && merged == 0 {
		log.Println("✅ Category names already normalized, nothing to do")
		return nil
	}

	log.Printf("✅ Category normalization done: %d renamed, %d duplicates merged", renamed, merged)
	return nil
}

package store

import (
	"fmt"
	"regexp"
	"strings"

	"boacompra-loader/models"
)

type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name can be spliced into SQL unquoted.
func ValidIdentifier(name string) bool {
	return identifier.MatchString(name)
}

// RecomputeTotalsSQL is the set-based order total update for the dialect.
func RecomputeTotalsSQL(d Dialect) string {
	sub := fmt.Sprintf(
		"SELECT id_pedido, SUM(vl_item_total) AS total FROM %s GROUP BY id_pedido",
		models.TableOrderItem,
	)
	if d == Postgres {
		return fmt.Sprintf(
			"UPDATE %s p SET vl_pedido_total = t.total FROM (%s) t WHERE p.id_pedido = t.id_pedido",
			models.TableOrder, sub,
		)
	}
	return fmt.Sprintf(
		"UPDATE %s p JOIN (%s) t ON p.id_pedido = t.id_pedido SET p.vl_pedido_total = t.total",
		models.TableOrder, sub,
	)
}

// CallSQL builds the CALL statement for a procedure with nargs input
// parameters followed by one OUT parameter. MySQL binds the OUT parameter to
// the session variable @out; PostgreSQL returns it as the result row.
func CallSQL(d Dialect, name string, nargs int) (string, error) {
	if !ValidIdentifier(name) {
		return "", fmt.Errorf("invalid procedure name %q", name)
	}
	placeholders := make([]string, 0, nargs+1)
	for i := 0; i < nargs; i++ {
		placeholders = append(placeholders, "?")
	}
	if d == Postgres {
		placeholders = append(placeholders, "NULL")
	} else {
		placeholders = append(placeholders, "@out")
	}
	return fmt.Sprintf("CALL %s(%s)", name, strings.Join(placeholders, ", ")), nil
}

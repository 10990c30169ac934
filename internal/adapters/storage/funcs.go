package storage

import (
	"database/sql/driver"
	"fmt"
	"strings"

	sqlite "modernc.org/sqlite"
)

// CaseFoldFunc is the SQL name of the Unicode lower-casing function
// registered on every connection. SQLite's own lower() and LIKE only fold
// ASCII, so "émile" would not find "Émile".
const CaseFoldFunc = "casefold"

func init() {
	if err := sqlite.RegisterDeterministicScalarFunction(CaseFoldFunc, 1, caseFold); err != nil {
		panic(fmt.Sprintf("register %s: %v", CaseFoldFunc, err))
	}
}

func caseFold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

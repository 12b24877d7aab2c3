package models

import (
	"math/big"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// NormalizeValue converts a value scanned by pgx into a JSON friendly Go value.
// Views return a mix of integer widths, numerics and uuids depending on how the
// column was computed; callers should see int64, float64 and strings instead.
func NormalizeValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case int:
		return int64(val)
	case float32:
		return float64(val)
	case pgtype.Numeric:
		return numericValue(val)
	case [16]byte:
		return uuid.UUID(val).String()
	default:
		return v
	}
}

// NormalizeRow normalizes every value of a scanned row in place and returns it.
func NormalizeRow(row map[string]any) map[string]any {
	for k, v := range row {
		row[k] = NormalizeValue(v)
	}
	return row
}

func numericValue(n pgtype.Numeric) any {
	if !n.Valid || n.NaN {
		return nil
	}
	if n.Exp >= 0 && n.InfinityModifier == pgtype.Finite {
		i := new(big.Int).Set(n.Int)
		if n.Exp > 0 {
			i.Mul(i, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n.Exp)), nil))
		}
		if i.IsInt64() {
			return i.Int64()
		}
	}
	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return nil
	}
	return f.Float64
}

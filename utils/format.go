package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const datePlaceholder = "—"

var currencyPrinter = message.NewPrinter(language.English)

// CoerceAmount converts a loosely-typed amount from the document store
// into a float64. Anything non-numeric, NaN, or infinite becomes 0 so
// downstream arithmetic never sees a poisoned value.
func CoerceAmount(v any) float64 {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return n
	case float32:
		return CoerceAmount(float64(n))
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		return CoerceAmount(n.String())
	case primitive.Decimal128:
		return CoerceAmount(n.String())
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return CoerceAmount(f)
	default:
		return 0
	}
}

// FormatCurrency renders an amount as a BDT string with thousands
// grouping, e.g. "৳1,200". It never fails: junk input formats as "৳0".
func FormatCurrency(v any) string {
	amount := math.Round(CoerceAmount(v))
	return currencyPrinter.Sprintf("৳%v", number.Decimal(amount, number.MaxFractionDigits(0)))
}

// NormalizeID flattens the id shapes the shared store may hand back
// (plain hex string, ObjectID, extended-JSON {"$oid": ...} wrapper)
// into a plain string. Nil and unrecognized shapes become "".
func NormalizeID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	case primitive.M:
		return oidField(id)
	case map[string]any:
		return oidField(id)
	case fmt.Stringer:
		return id.String()
	default:
		return ""
	}
}

func oidField(m map[string]any) string {
	if s, ok := m["$oid"].(string); ok {
		return s
	}
	return ""
}

// ToTime converts the timestamp shapes found in stored documents into
// a time.Time. The bool reports whether a usable value was present.
func ToTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case primitive.DateTime:
		return t.Time(), true
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case float64:
		// epoch milliseconds, the JS Date.now() convention
		return time.UnixMilli(int64(t)), true
	case int64:
		return time.UnixMilli(t), true
	default:
		return time.Time{}, false
	}
}

// FormatDate renders a long-form date like "2 January 2026", or an
// em-dash when the value is absent.
func FormatDate(v any) string {
	t, ok := ToTime(v)
	if !ok {
		return datePlaceholder
	}
	return t.Format("2 January 2006")
}

// FormatDateTime renders a compact date-time like "02 Jan 2026, 15:04"
// for receipt rows.
func FormatDateTime(v any) string {
	t, ok := ToTime(v)
	if !ok {
		return datePlaceholder
	}
	return t.Format("02 Jan 2006, 15:04")
}

package dealcloud

// Row is one record as returned by the entry-data rows endpoint with
// wrapIntoArrays=true: cells may be plain scalars, {"id","name"} objects, or
// single-element arrays of either.
type Row map[string]any

// EntryID returns the numeric record id, or 0 when absent.
func (r Row) EntryID() int {
	return asInt(r["EntryId"])
}

// Text returns the plain string form of a cell, unwrapping structured name
// cells and array wrapping. Returns "" when the cell is absent or has no
// textual form.
func (r Row) Text(field string) string {
	return cellText(r[field])
}

// RefID returns the numeric id of a reference cell, or 0 when absent.
func (r Row) RefID(field string) int {
	return cellID(r[field])
}

func cellText(v any) string {
	switch cell := v.(type) {
	case nil:
		return ""
	case string:
		return cell
	case map[string]any:
		if name, ok := cell["name"].(string); ok {
			return name
		}
		return ""
	case []any:
		if len(cell) == 0 {
			return ""
		}
		return cellText(cell[0])
	default:
		return ""
	}
}

func cellID(v any) int {
	switch cell := v.(type) {
	case map[string]any:
		return asInt(cell["id"])
	case []any:
		if len(cell) == 0 {
			return 0
		}
		return cellID(cell[0])
	default:
		return asInt(v)
	}
}

// asInt coerces the numeric shapes encoding/json produces into an int.
func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	default:
		return 0
	}
}

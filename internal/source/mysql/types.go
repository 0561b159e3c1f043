package mysql

import (
	"strings"

	"github.com/alexanderjulianmartinez/data-diff/internal/dataset"
)

// DTypeFor maps an INFORMATION_SCHEMA COLUMN_TYPE such as "int(10) unsigned"
// or "varchar(64)" to a dataset dtype. tinyint(1) is treated as bool.
func DTypeFor(columnType string) dataset.DType {
	ct := strings.ToLower(strings.TrimSpace(columnType))
	unsigned := strings.Contains(ct, "unsigned")
	base := ct
	if i := strings.IndexAny(ct, "( "); i >= 0 {
		base = ct[:i]
	}

	pick := func(signed, unsignedType dataset.DType) dataset.DType {
		if unsigned {
			return unsignedType
		}
		return signed
	}

	switch base {
	case "tinyint":
		if strings.HasPrefix(ct, "tinyint(1)") {
			return dataset.Bool
		}
		return pick(dataset.Int8, dataset.Uint8)
	case "bool", "boolean":
		return dataset.Bool
	case "smallint", "year":
		return pick(dataset.Int16, dataset.Uint16)
	case "mediumint", "int", "integer":
		return pick(dataset.Int32, dataset.Uint32)
	case "bigint":
		return pick(dataset.Int64, dataset.Uint64)
	case "float":
		return dataset.Float32
	case "double", "real", "decimal", "numeric":
		return dataset.Float64
	case "char", "varchar", "tinytext", "text", "mediumtext", "longtext", "enum", "set", "json", "time":
		return dataset.String
	case "binary", "varbinary", "tinyblob", "blob", "mediumblob", "longblob", "bit":
		return dataset.Binary
	case "datetime", "timestamp":
		return dataset.Timestamp
	case "date":
		return dataset.Date
	default:
		return dataset.Other
	}
}

// typeName keeps the declared COLUMN_TYPE for columns the dtype cannot
// describe, so that e.g. geometry and point are told apart.
func typeName(t dataset.DType, columnType string) string {
	if t != dataset.Other {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(columnType))
}

func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

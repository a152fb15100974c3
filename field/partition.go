package field

// PartitionValue is the tagged union allowed as a partition map value:
// i64, bool, string, or timestamp. Unlike Value, it has no null and no list.
type PartitionValue struct {
	Kind  Kind
	Int64 int64
	Bool  bool
	Str   string
	Time  Timestamp
}

// PartitionInt64 returns an i64 partition value.
func PartitionInt64(v int64) PartitionValue {
	return PartitionValue{Kind: KindInt64, Int64: v}
}

// PartitionBool returns a bool partition value.
func PartitionBool(v bool) PartitionValue {
	return PartitionValue{Kind: KindBool, Bool: v}
}

// PartitionString returns a string partition value.
func PartitionString(v string) PartitionValue {
	return PartitionValue{Kind: KindString, Str: v}
}

// PartitionTimestamp returns a timestamp partition value.
func PartitionTimestamp(v Timestamp) PartitionValue {
	return PartitionValue{Kind: KindTimestamp, Time: v}
}

// Partition is a map from partition column name to value, identifying one
// partition of a table.
type Partition map[string]PartitionValue

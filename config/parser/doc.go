// Package parser provides parse functions for common value types.
//
// Every function has the shape func(string) (T, error) and can be passed
// directly to filesource.NewRequired or filesource.NewOptional. Parsers are
// strict: input that does not describe a value of the target type is an
// error, never a zero value.
//
// Usage:
//
//	port := filesource.NewRequired[int]("/etc/app/port", parser.Int)
//	limit := filesource.NewOptional[uint64]("/etc/app/upload-limit", parser.ByteSize)
//	addr := filesource.NewRequired("/etc/app/bind", parser.Text[netip.Addr])
//
// Structured documents are handled by config/parser/yaml.
package parser

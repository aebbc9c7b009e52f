// Package serializer converts values to and from the byte payloads that are
// encrypted and persisted by the secret store.
//
// Two implementations are provided:
//
//   - BSON (default): values are wrapped in a single-field document so that
//     scalars such as strings can be stored at the top level;
//   - JSON: plain encoding/json, useful when the stored payloads must be
//     readable by other tooling once decrypted.
//
// Both round-trip strings and string slices, which is all the MFA store
// writes. Note that BSON stores time values with millisecond precision.
//
// # Usage
//
//	s := serializer.NewBSON()
//	data, err := s.Marshal("JBSWY3DPEHPK3PXP")
//
//	var secret string
//	err = s.Unmarshal(data, &secret)
package serializer

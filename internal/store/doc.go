// Package store reads and writes the serialized settings record at one fixed
// path. Writes go to a temporary file in the same directory which is then
// renamed over the target, so readers see either the old record or the new
// one and never a partial write.
package store

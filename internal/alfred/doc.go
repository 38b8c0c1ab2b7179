// Package alfred renders Script Filter output for the Alfred launcher. Alfred
// 3 and later read a JSON document from stdout; older hosts only understand
// the XML format, so the writer picks one based on the host version.
package alfred

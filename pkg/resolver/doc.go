// Package resolver locates the schema node addressed by a field path and
// derives field metadata from it. Every function here is pure and total:
// resolution runs on a hot re-render path where widgets routinely ask about
// paths that do not map onto the schema, so absence is a normal, cheap
// outcome rather than an error. Worst-case cost is linear in the path length.
package resolver

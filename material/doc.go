// Package material is the material database the shell engine queries by
// name. It ships the reference low-background materials of the assembly
// (ultra-pure and impure copper, low-background and impure lead) with their
// densities and trace-contaminant composition.
//
// Two implementations satisfy mass.DensityLookup:
//
//	Catalog:       in-memory, safe for concurrent readers
//	SQLiteCatalog: persisted in a single SQLite table (modernc.org/sqlite)
//
// Unknown names surface as ErrMaterialNotFound, which is the same sentinel
// as mass.ErrMaterialNotFound.
package material

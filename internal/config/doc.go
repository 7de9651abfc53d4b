// Package config provides configuration loading, validation, and
// route-entry compilation for routemux.
//
// Configuration is declared in YAML: a server section, logging and
// tracing sections, and a list of route definitions. Environment
// variable references (${VAR} and ${VAR:-default}) are substituted
// before parsing.
//
// Route definitions are validated early — duplicate (path, key) pairs
// and filename/contentDisposition conflicts are configuration errors —
// and then compiled into router entries with BuildTable. The route
// table is static for the process lifetime: the file watcher only
// revalidates changed configuration and reports that a restart is
// required, it never swaps the live table.
package config

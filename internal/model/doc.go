// Package model defines the typed records a student's dashboard is built from.
//
// Every list record embeds Base, which carries a unique string identifier and a
// creation timestamp. Day-granular values use Date, which serializes as
// YYYY-MM-DD so documents stay readable on disk.
package model

// Package unix implements the Unix-socket connector for the IPROTO
// client. Endpoints are socket paths; only the generic socket buffer
// options apply. See the base package for the shared upgrade logic.
package unix

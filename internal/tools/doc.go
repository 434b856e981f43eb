// Package tools holds the catalog of MCP tools exposed by vaults-mcp.
//
// Every tool maps its arguments onto one backend route, calls it through a
// Backend and renders the JSON reply as markdown text. A Registry is built
// once at startup and only read afterwards, so it is safe for concurrent
// calls.
//
// Handler failures never reach the protocol layer as errors. They come back
// as error results whose text is the tool's Failure prefix followed by the
// underlying error, and a panicking handler is reported as "Error: <value>".
//
// # Categories
//
// Tools are grouped into health, admin, conversation, copilot, security,
// export, metrics, payment, onboarding and governance. The grouping is used
// for listings only and has no effect on dispatch.
package tools
